package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/starlight-ml/starlight/internal/logger"
)

func paramsCmd(opts *globalOptions) *cli.Command {
	var verbose bool

	return &cli.Command{
		Name:  "params",
		Usage: "Build the model and print its parameter count",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "list every parameter tensor",
				Destination: &verbose,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			out := cmd.Root().Writer

			m := opts.buildModel(ctx, cmd)
			total := m.NumParameters()
			if want := opts.cfg.NumParameters(); total != want {
				log.Warn("parameter count disagrees with config", "model", total, "config", want)
			}

			if verbose {
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "NAME\tSHAPE\tCOUNT")
				for _, p := range m.Parameters() {
					_, _ = fmt.Fprintf(tw, "%s\t%v\t%d\n", p.Name(), p.Tensor().Shape(), p.NumElements())
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintf(out, "Number of parameters: %d\n", total)
			return err
		},
	}
}
