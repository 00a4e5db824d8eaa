// Package logging builds the zerolog logger used by the CLI and the pipeline.
// Debug, info and warn events go to the stdout writer; error and above go to
// the stderr writer.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"salesclean/internal/config"
)

// SpecificLevelWriter forwards only events whose level is in Levels.
type SpecificLevelWriter struct {
	io.Writer
	Levels []zerolog.Level
}

// WriteLevel implements zerolog.LevelWriter.
func (w SpecificLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	for _, l := range w.Levels {
		if l == level {
			return w.Write(p)
		}
	}
	return len(p), nil
}

var (
	lowLevels  = []zerolog.Level{zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel}
	highLevels = []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel}
)

// New returns a logger configured from cfg. An empty level means info and an
// empty format means console.
func New(cfg config.Log, stdout, stderr io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	var out, errOut io.Writer
	switch strings.ToLower(cfg.Format) {
	case "", "console":
		out = console(stdout, time.Kitchen)
		errOut = console(stderr, "")
	case "json":
		out, errOut = stdout, stderr
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q: want console or json", cfg.Format)
	}

	w := zerolog.MultiLevelWriter(
		SpecificLevelWriter{Writer: out, Levels: lowLevels},
		SpecificLevelWriter{Writer: errOut, Levels: highLevels},
	)
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

func console(w io.Writer, timeFormat string) zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat}
	if f, ok := w.(*os.File); !ok || !isTerminal(f) {
		cw.NoColor = true
	}
	if timeFormat == "" {
		cw.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	return cw
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
