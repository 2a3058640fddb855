package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/starlight-ml/starlight/internal/logger"
	"github.com/starlight-ml/starlight/internal/model"
)

// forwardOutput is the --json form of a forward run.
type forwardOutput struct {
	Parameters  int         `json:"parameters"`
	Fingerprint string      `json:"fingerprint"`
	Shape       []int       `json:"shape"`
	Digest      string      `json:"digest"`
	Scores      [][]float32 `json:"scores"`
}

func forwardCmd(opts *globalOptions) *cli.Command {
	var (
		batch   int64
		token   int32
		asJSON  bool
		seqLen  int64
		summary bool
	)

	return &cli.Command{
		Name:  "forward",
		Usage: "Run one forward pass on a constant token batch",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "batch",
				Aliases:     []string{"b"},
				Usage:       "number of rows",
				Value:       1,
				Destination: &batch,
			},
			&cli.Int32Flag{
				Name:        "token",
				Usage:       "token id every position is filled with",
				Value:       1,
				Destination: &token,
			},
			&cli.Int64Flag{
				Name:        "seq-len",
				Usage:       "tokens per row (default: the configured n_seq)",
				Destination: &seqLen,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the result as JSON",
				Destination: &asJSON,
			},
			&cli.BoolFlag{
				Name:        "summary",
				Usage:       "omit the score vectors",
				Destination: &summary,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			out := cmd.Root().Writer

			if batch < 1 {
				return cli.Exit("--batch must be at least 1", 1)
			}
			rows := opts.cfg.Constant(int(batch), token)
			if cmd.IsSet("seq-len") {
				for i := range rows {
					rows[i] = resize(rows[i], int(seqLen), token)
				}
			}

			m := opts.buildModel(ctx, cmd)
			start := time.Now()
			res, err := m.Run(rows)
			if err != nil {
				if errors.Is(err, model.ErrSequenceLength) || errors.Is(err, model.ErrTokenRange) {
					return cli.Exit(err.Error(), 1)
				}
				return err
			}
			log.Info("forward done", "batch", batch, "took", time.Since(start))

			if summary {
				res.Scores = nil
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(forwardOutput{
					Parameters:  m.NumParameters(),
					Fingerprint: model.FormatHash(m.Fingerprint()),
					Shape:       res.Shape,
					Digest:      model.FormatHash(res.Digest),
					Scores:      res.Scores,
				})
			}

			_, _ = fmt.Fprintf(out, "Number of parameters: %d\n", m.NumParameters())
			_, _ = fmt.Fprintf(out, "Output shape: %v\n", []int(res.Shape))
			_, _ = fmt.Fprintf(out, "Digest: %s\n", model.FormatHash(res.Digest))
			for i, row := range res.Scores {
				_, _ = fmt.Fprintf(out, "[%d] %s\n", i, formatRow(row))
			}
			return nil
		},
	}
}

func resize(row []int32, n int, fill int32) []int32 {
	if n <= len(row) {
		return row[:max(n, 0)]
	}
	for len(row) < n {
		row = append(row, fill)
	}
	return row
}

func formatRow(row []float32) string {
	var sb strings.Builder
	for i, v := range row {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'g', 6, 32))
	}
	return sb.String()
}
