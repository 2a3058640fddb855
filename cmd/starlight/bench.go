package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starlight-ml/starlight/internal/logger"
	"github.com/starlight-ml/starlight/internal/model"
)

func benchCmd(opts *globalOptions) *cli.Command {
	var (
		warmupRuns int64
		benchRuns  int64
		batch      int64
	)

	return &cli.Command{
		Name:  "bench",
		Usage: "Time repeated forward passes and check the outputs agree",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "warmup",
				Usage:       "number of untimed warmup runs",
				Value:       1,
				Destination: &warmupRuns,
			},
			&cli.Int64Flag{
				Name:        "runs",
				Usage:       "number of timed runs",
				Value:       5,
				Destination: &benchRuns,
			},
			&cli.Int64Flag{
				Name:        "batch",
				Aliases:     []string{"b"},
				Usage:       "rows per forward pass",
				Value:       1,
				Destination: &batch,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			out := cmd.Root().Writer

			if benchRuns < 1 || batch < 1 {
				return cli.Exit("--runs and --batch must be at least 1", 1)
			}

			m := opts.buildModel(ctx, cmd)
			rows := opts.cfg.Constant(int(batch), 1)

			for i := int64(0); i < warmupRuns; i++ {
				if _, err := m.Run(rows); err != nil {
					return err
				}
			}

			bar := newBar(cmd.Root().ErrWriter, int(benchRuns), "Benchmarking")
			var (
				total, best, worst time.Duration
				first              uint64
			)
			for i := int64(0); i < benchRuns; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				start := time.Now()
				res, err := m.Run(rows)
				if err != nil {
					return err
				}
				took := time.Since(start)
				_ = bar.Add(1)

				total += took
				if i == 0 || took < best {
					best = took
				}
				worst = max(worst, took)

				if i == 0 {
					first = res.Digest
				} else if res.Digest != first {
					_ = bar.Finish()
					return cli.Exit(fmt.Sprintf("run %d digest %s differs from %s", i, model.FormatHash(res.Digest), model.FormatHash(first)), 1)
				}
			}
			_ = bar.Finish()
			_, _ = fmt.Fprintln(cmd.Root().ErrWriter)

			mean := total / time.Duration(benchRuns)
			log.Debug("bench finished", "runs", benchRuns, "mean", mean)

			_, _ = fmt.Fprintf(out, "runs:    %d (batch %d)\n", benchRuns, batch)
			_, _ = fmt.Fprintf(out, "mean:    %s\n", mean)
			_, _ = fmt.Fprintf(out, "min:     %s\n", best)
			_, _ = fmt.Fprintf(out, "max:     %s\n", worst)
			_, _ = fmt.Fprintf(out, "rows/s:  %.2f\n", float64(batch)/mean.Seconds())
			_, _ = fmt.Fprintf(out, "digest:  %s (identical across runs)\n", model.FormatHash(first))
			return nil
		},
	}
}
