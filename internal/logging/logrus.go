package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
)

// LogrusFormatter forwards logrus entries to the global zerolog logger
type LogrusFormatter struct{}

// Format renders a single log entry from logrus entry to zerolog. WithLevel
// never exits or panics, logrus does that itself after formatting.
func (f *LogrusFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	log.WithLevel(zerologLevel(entry.Level)).Fields(map[string]interface{}(entry.Data)).Msg(entry.Message)
	return nil, nil
}

func zerologLevel(level logrus.Level) zerolog.Level {
	switch level {
	case logrus.PanicLevel:
		return zerolog.PanicLevel
	case logrus.FatalLevel:
		return zerolog.FatalLevel
	case logrus.ErrorLevel:
		return zerolog.ErrorLevel
	case logrus.WarnLevel:
		return zerolog.WarnLevel
	case logrus.DebugLevel:
		return zerolog.DebugLevel
	case logrus.TraceLevel:
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}
