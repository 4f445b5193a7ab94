package vectors

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "vectors")
