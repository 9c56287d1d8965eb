package logging

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/sirupsen/logrus"
)

// Options controls the global loggers
type Options struct {
	Level   string
	JSON    bool
	Caller  bool
	NoColor bool

	// Output defaults to stdout
	Output io.Writer
}

// Configure sets up the global zerolog logger and routes logrus, used by the
// converter package, through it. logrus gets the same threshold as zerolog.
func Configure(opts Options) error {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return errors.Wrapf(err, "unknown log level %q", opts.Level)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	w := out
	if !opts.JSON {
		// NO_COLOR support, see https://no-color.org/
		_, noColor := os.LookupEnv("NO_COLOR")
		w = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    noColor || opts.NoColor,
			TimeFormat: time.RFC1123,
		}
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	ctx := zerolog.New(w).With().Timestamp()
	if opts.Caller {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	zerolog.SetGlobalLevel(level)

	logrus.SetLevel(logrusLevel(level))
	logrus.SetFormatter(new(LogrusFormatter))
	return nil
}

// logrusLevel maps a zerolog threshold to logrus. Disabled and no level keep
// logrus at its quietest since zerolog drops the entries anyway.
func logrusLevel(level zerolog.Level) logrus.Level {
	switch level {
	case zerolog.TraceLevel:
		return logrus.TraceLevel
	case zerolog.DebugLevel:
		return logrus.DebugLevel
	case zerolog.InfoLevel:
		return logrus.InfoLevel
	case zerolog.WarnLevel:
		return logrus.WarnLevel
	case zerolog.ErrorLevel:
		return logrus.ErrorLevel
	case zerolog.FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.PanicLevel
	}
}
