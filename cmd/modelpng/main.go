// cmd/modelpng/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/modelpng/internal/codec"
	"github.com/samcharles93/modelpng/internal/logger"
)

func main() {
	app := &cli.Command{
		Name:  "modelpng",
		Usage: "Embed and recover model files in PNG images",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug|info|warn|error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: text|json",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			encodeCmd(),
			decodeCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the command logger from flags, falling back to the
// config file for anything the caller did not set.
func newLogger(cmd *cli.Command, cfg Config) logger.Logger {
	level := cmd.String("log-level")
	if level == "" {
		level = cfg.LogLevel
	}
	format := cmd.String("log-format")
	if format == "" {
		format = cfg.LogFormat
	}
	if format == "json" {
		return logger.JSON(os.Stderr, logger.ParseLevel(level))
	}
	return logger.Text(os.Stderr, logger.ParseLevel(level))
}

// logProgress forwards codec stage events to the debug log.
type logProgress struct {
	log logger.Logger
}

func (p logProgress) Stage(stage codec.Stage) {
	p.log.Debug("stage", "stage", string(stage))
}

// resolveMethod picks the embedding method from the flag, then the
// config file, then the chunk default.
func resolveMethod(cmd *cli.Command, cfg Config) (codec.Method, error) {
	name := cmd.String("method")
	if name == "" {
		name = cfg.Method
	}
	if name == "" {
		name = "chunk"
	}
	return codec.ParseMethod(name)
}
