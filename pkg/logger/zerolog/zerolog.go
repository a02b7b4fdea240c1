package zerolog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Config selects the output format of the logger
type Config struct {
	Level          string
	DateTimeLayout string
	Colored        bool
	JSON           bool
	Output         io.Writer // defaults to os.Stdout
}

// New builds a zerolog logger writing either JSON or the padded console format
func New(cfg Config) (*zerolog.Logger, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	if cfg.JSON {
		zl := zerolog.New(out).With().Timestamp().Logger()
		return &zl, nil
	}

	console := zerolog.ConsoleWriter{
		Out:             out,
		NoColor:         !cfg.Colored,
		TimeFormat:      cfg.DateTimeLayout,
		FormatLevel:     formatLevel(cfg.Colored),
		FormatMessage:   formatMessage,
		FormatCaller:    formatCaller,
		FormatTimestamp: formatTimestamp(cfg.DateTimeLayout),
	}

	zl := zerolog.New(console).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return &zl, nil
}

func formatLevel(colored bool) zerolog.Formatter {
	return func(i interface{}) string {
		level, _ := i.(string)

		label, color := "[UNK]", term.Whitef
		switch level {
		case zerolog.LevelTraceValue:
			label, color = "[TRC]", term.Cyanf
		case zerolog.LevelDebugValue:
			label, color = "[DBG]", term.Cyanf
		case zerolog.LevelInfoValue:
			label, color = "[INF]", term.Greenf
		case zerolog.LevelWarnValue:
			label, color = "[WAR]", term.Yellowf
		case zerolog.LevelErrorValue:
			label, color = "[ERR]", term.Redf
		case zerolog.LevelFatalValue:
			label, color = "[FTL]", term.Redf
		case zerolog.LevelPanicValue:
			label, color = "[PAN]", term.Redf
		}

		if !colored {
			return label
		}
		return color(label)
	}
}

func formatMessage(i interface{}) string {
	const maxSize = 60

	msg, ok := i.(string)
	if !ok || len(msg) == 0 {
		return ">"
	}

	if len(msg) < maxSize {
		msg += strings.Repeat(" ", maxSize-len(msg))
	}

	return "> " + msg
}

func formatCaller(i interface{}) string {
	const maxFileSize = 14

	fname, ok := i.(string)
	if !ok || len(fname) == 0 {
		return ""
	}

	file, line, found := strings.Cut(filepath.Base(fname), ":")
	if !found {
		return fname
	}

	if len(file) > maxFileSize {
		file = file[:maxFileSize]
	}

	return fmt.Sprintf("[%-*s:%4s]", maxFileSize, file, line)
}

func formatTimestamp(layout string) zerolog.Formatter {
	return func(i interface{}) string {
		strTime, ok := i.(string)
		if !ok {
			return fmt.Sprintf("[%v]", i)
		}

		if ts, err := time.ParseInLocation(zerolog.TimeFieldFormat, strTime, time.Local); err == nil {
			strTime = ts.In(time.Local).Format(layout)
		}

		return "[" + strTime + "]"
	}
}
