package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

// Level mirrors logrus levels, lower is more severe.
type Level uint32

const (
	ErrorLevel Level = iota + 2
	WarnLevel
	InfoLevel
	DebugLevel
)

var disabled bool

func init() {
	// Module masks do the filtering, logrus must let everything through.
	logrus.SetLevel(logrus.DebugLevel)
}

// Disable turns off all logging, including warnings and errors.
func Disable() {
	disabled = true
	logrus.SetOutput(io.Discard)
}

// SetOutput redirects log output to w, without colors.
func SetOutput(w io.Writer) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	logrus.SetOutput(w)
}
