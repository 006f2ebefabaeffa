package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/modelpng/internal/codec"
	"github.com/samcharles93/modelpng/internal/payload"
)

func encodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "Embed a model file in a PNG image",
		ArgsUsage: "<model-file> <output.png>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "method",
				Aliases: []string{"m"},
				Usage:   "Embedding method: chunk|pixel",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected <model-file> <output.png>, got %d argument(s)", cmd.Args().Len())
			}
			inPath := cmd.Args().Get(0)
			outPath := cmd.Args().Get(1)

			cfg := LoadConfig()
			log := newLogger(cmd, cfg)
			method, err := resolveMethod(cmd, cfg)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("read model file: %w", err)
			}

			enc, err := codec.Encode(method, data, filepath.Base(inPath),
				codec.WithProgress(logProgress{log: log}))
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if dir := filepath.Dir(outPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			if err := writeFileAtomic(outPath, enc); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			log.Info("model encoded",
				"method", method.String(),
				"output", outPath,
				"original_size", len(data),
				"container_size", len(enc),
				"checksum", payload.Checksum(data),
			)
			return nil
		},
	}
}
