package validators

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "validators")
