package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/m-mizutani/brewtap/pkg/domain/types"
)

const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
)

// Logger holds logger configuration
type Logger struct {
	Level string
	JSON  bool
	File  string

	// Output receives log lines; nil means stdout
	Output io.Writer
}

// Flags returns CLI flags for logger configuration
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars("BREWTAP_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Value:       false,
			Destination: &c.JSON,
			Sources:     cli.EnvVars("BREWTAP_LOG_JSON"),
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "Also write logs to this file (rotated)",
			Destination: &c.File,
			Sources:     cli.EnvVars("BREWTAP_LOG_FILE"),
		},
	}
}

// Configure configures and returns a logger. Every secret given is masked
// wherever it appears in a logged string.
func (c *Logger) Configure(secrets ...string) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, goerr.New("invalid log level",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("level", c.Level),
		)
	}

	maskOpts := []masq.Option{
		masq.WithFieldName("Token"),
		masq.WithFieldName("token"),
	}
	for _, secret := range secrets {
		if secret != "" {
			maskOpts = append(maskOpts, masq.WithContain(secret))
		}
	}
	replacer := masq.New(maskOpts...)

	var w io.Writer = os.Stdout
	if c.Output != nil {
		w = c.Output
	}
	if c.File != "" {
		w = io.MultiWriter(w, &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
		})
	}

	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replacer,
		})
	} else {
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithColor(c.File == ""),
			clog.WithReplaceAttr(replacer),
		)
	}

	return slog.New(handler), nil
}
