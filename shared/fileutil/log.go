package fileutil

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "fileutil")
