package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/validation/pkg/config"
	"github.com/dmitrymomot/validation/pkg/logger"
	"github.com/dmitrymomot/validation/pkg/report"
)

const name = "vcheck"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
)

// Settings holds defaults for the command line flags, read from the environment.
type Settings struct {
	LogLevel     string `env:"VCHECK_LOG_LEVEL" envDefault:"warn"`
	LogFormat    string `env:"VCHECK_LOG_FORMAT" envDefault:"text"`
	OutputFormat string `env:"VCHECK_OUTPUT_FORMAT" envDefault:"text"`
	Concurrency  int    `env:"VCHECK_CONCURRENCY" envDefault:"4"`
	CacheSize    int    `env:"VCHECK_CACHE_SIZE" envDefault:"1024"`
}

// DefaultSettings mirrors the envDefault tags of Settings.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:     "warn",
		LogFormat:    string(logger.FormatText),
		OutputFormat: string(report.FormatText),
		Concurrency:  4,
		CacheSize:    1024,
	}
}

// NewCommand builds the vcheck command tree with flag defaults taken from s.
func NewCommand(s Settings) *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "evaluate constraint declarations against values",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: s.LogLevel,
				Usage: "log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: s.LogFormat,
				Usage: "log format (text, json)",
			},
		},
		Commands: []*cli.Command{
			validateCmd(s),
			kindsCmd(),
		},
	}
}

// Execute runs vcheck with the process arguments and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var s Settings
	if err := config.Load(&s); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := NewCommand(s).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cmd *cli.Command) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(cmd.String("log-format"))
	if err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(errWriter(cmd)),
		logger.WithAttr(logger.Component(name)),
	), nil
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
