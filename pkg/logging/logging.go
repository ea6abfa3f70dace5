// Package logging builds the logrus loggers used by the c1parse tools
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	// ErrInvalidLevel is returned for a level logrus does not know.
	ErrInvalidLevel = errors.NewKind("invalid log level %q")
	// ErrInvalidFormat is returned for a format other than text or json.
	ErrInvalidFormat = errors.NewKind("invalid log format %q, expected text or json")
)

// ParseFormat returns the logrus formatter for a format name
func ParseFormat(format string) (logrus.Formatter, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return &logrus.TextFormatter{DisableTimestamp: true}, nil
	case FormatJSON:
		return &logrus.JSONFormatter{}, nil
	}
	return nil, ErrInvalidFormat.New(format)
}

// New creates a logger writing to w at the given level and format
func New(w io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, ErrInvalidLevel.New(level)
	}
	formatter, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(formatter)
	log.SetLevel(lvl)
	return log, nil
}
