package schema

import "github.com/sirupsen/logrus"

// log is the package logger; registration and warm-up are the only paths
// that write to it, never a comparison.
var log = logrus.WithField("prefix", "schema")
