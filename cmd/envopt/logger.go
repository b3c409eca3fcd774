package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/velmie/x/envopt"
)

const (
	formatConsole = "console"
	formatJSON    = "json"
)

type logOptions struct {
	Level  zerolog.Level
	Format string
}

var parseLogFormat = envopt.OneOf(envopt.String, formatConsole, formatJSON)

// logOptionsFromEnv reads LOG_LEVEL and LOG_FORMAT.
func logOptionsFromEnv() (logOptions, error) {
	src := envopt.Prefixed(envopt.DefaultSource, "LOG_")
	opts := logOptions{}

	err := envopt.Supply(
		envopt.Set(&opts.Level, envopt.Defaulted(src, "LEVEL", zerolog.ParseLevel, zerolog.InfoLevel)),
		envopt.Set(&opts.Format, envopt.Defaulted(src, "FORMAT", parseLogFormat, formatConsole)),
	)
	return opts, err
}

func newLogger(w io.Writer, opts logOptions) zerolog.Logger {
	if opts.Format == formatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(opts.Level).With().Timestamp().Logger()
}

// levelFlag and formatFlag adapt the same parsers to pflag.Value.
type levelFlag struct{ target *zerolog.Level }

func (f *levelFlag) String() string {
	if f.target == nil {
		return ""
	}
	return f.target.String()
}

func (f *levelFlag) Set(s string) error {
	v, err := zerolog.ParseLevel(s)
	if err != nil {
		return err
	}
	*f.target = v
	return nil
}

func (f *levelFlag) Type() string { return "level" }

type formatFlag struct{ target *string }

func (f *formatFlag) String() string {
	if f.target == nil {
		return ""
	}
	return *f.target
}

func (f *formatFlag) Set(s string) error {
	v, err := parseLogFormat(s)
	if err != nil {
		return err
	}
	*f.target = v
	return nil
}

func (f *formatFlag) Type() string { return "format" }
