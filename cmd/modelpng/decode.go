package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/modelpng/internal/codec"
)

// decodeReport is the machine-readable summary emitted by --json.
type decodeReport struct {
	Output         string `json:"output"`
	Method         string `json:"method"`
	Name           string `json:"name,omitempty"`
	OriginalSize   uint64 `json:"original_size"`
	CompressedSize uint64 `json:"compressed_size"`
	Checksum       string `json:"checksum"`
}

func decodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Recover a model file from a PNG image",
		ArgsUsage: "<input.png> <output-model>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "method",
				Aliases: []string{"m"},
				Usage:   "Embedding method: chunk|pixel",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print a JSON report to stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected <input.png> <output-model>, got %d argument(s)", cmd.Args().Len())
			}
			inPath := cmd.Args().Get(0)
			outPath := cmd.Args().Get(1)

			cfg := LoadConfig()
			log := newLogger(cmd, cfg)
			method, err := resolveMethod(cmd, cfg)
			if err != nil {
				return err
			}

			png, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("read PNG: %w", err)
			}

			// The payload is fully reconstructed and validated in memory
			// before any output file exists.
			res, err := codec.Decode(method, png,
				codec.WithProgress(logProgress{log: log}))
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			if dir := filepath.Dir(outPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			if err := writeFileAtomic(outPath, res.Data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			log.Info("model decoded",
				"method", method.String(),
				"output", outPath,
				"name", res.Envelope.Name,
				"original_size", res.Envelope.OriginalSize,
				"compressed_size", res.Envelope.CompressedSize,
				"checksum", res.Checksum,
			)

			if cmd.Bool("json") {
				report := decodeReport{
					Output:         outPath,
					Method:         method.String(),
					Name:           res.Envelope.Name,
					OriginalSize:   res.Envelope.OriginalSize,
					CompressedSize: res.Envelope.CompressedSize,
					Checksum:       res.Checksum,
				}
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal report: %w", err)
				}
				fmt.Println(string(out))
			}
			return nil
		},
	}
}
