// Command starlight builds the Starlight model and runs it on dummy input.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	opts := &globalOptions{}
	return &cli.Command{
		Name:   "starlight",
		Usage:  "Pre-activation residual MLP driver",
		Flags:  opts.flags(),
		Before: opts.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			paramsCmd(opts),
			forwardCmd(opts),
			benchCmd(opts),
			serveCmd(opts),
			versionCmd(),
		},
	}
}
