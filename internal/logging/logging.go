// Package logging configures the process-wide zerolog logger for the
// acmatch command.
package logging

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

func init() {
	zerolog.MessageFieldName = "msg"
	zerolog.TimeFieldFormat = "2006-01-02 15:04:05.000"
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	// Keep only the package directory and file name in caller fields.
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		slice := strings.Split(file, "/")
		if len(slice) >= 2 {
			return slice[len(slice)-2] + "/" + slice[len(slice)-1] + ":" + strconv.Itoa(line)
		}
		return file + ":" + strconv.Itoa(line)
	}
}

// Setup replaces the global logger with one writing to w at the given level
// ("debug", "info", "warn", ...). Console output is used unless json is set.
func Setup(w io.Writer, level string, json bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	out := w
	if !json {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: zerolog.TimeFieldFormat}
	}
	log.Logger = zerolog.New(out).Level(lvl).With().Timestamp().Caller().Logger()
	return nil
}

// ParseLevel parses a level name. The empty string means warn.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "invalid log level %q", level)
	}
	return lvl, nil
}
