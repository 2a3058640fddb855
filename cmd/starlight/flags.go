package main

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/starlight-ml/starlight/internal/backend/cpu"
	"github.com/starlight-ml/starlight/internal/logger"
	"github.com/starlight-ml/starlight/internal/model"
	"github.com/starlight-ml/starlight/internal/parallel"
)

// globalOptions holds the root flags shared by every command.
type globalOptions struct {
	configPath string
	seed       int64
	threads    int64
	logLevel   string
	logFormat  string
	debug      bool

	cfg model.Config
}

func (o *globalOptions) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "YAML model configuration (missing keys keep defaults)",
			Destination: &o.configPath,
		},
		&cli.Int64Flag{
			Name:        "seed",
			Usage:       "weight initialization seed",
			Value:       0,
			Destination: &o.seed,
		},
		&cli.Int64Flag{
			Name:        "threads",
			Usage:       "matmul worker goroutines (0 = one per CPU)",
			Value:       0,
			Destination: &o.threads,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &o.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (auto, pretty, text, json)",
			Value:       logger.FormatAuto,
			Destination: &o.logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &o.debug,
		},
	}
}

// before installs the logger into the context and resolves the model config.
func (o *globalOptions) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level, err := logger.ParseLevel(o.logLevel)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}
	if o.debug {
		level, _ = logger.ParseLevel("debug")
	}
	log, err := logger.NewFormat(o.logFormat, cmd.Root().ErrWriter, level)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	o.cfg = model.DefaultConfig()
	if o.configPath != "" {
		o.cfg, err = model.LoadConfig(o.configPath)
		if err != nil {
			return ctx, cli.Exit(err.Error(), 1)
		}
		log.Debug("loaded config", "path", o.configPath)
	}
	return logger.WithContext(ctx, log), nil
}

func (o *globalOptions) backend() *cpu.CPUBackend {
	par := parallel.DefaultConfig()
	if o.threads > 0 {
		par.Workers = int(o.threads)
	}
	return cpu.New(cpu.WithParallel(par))
}

// buildModel constructs the model, drawing a progress bar on stderr when it
// is a terminal.
func (o *globalOptions) buildModel(ctx context.Context, cmd *cli.Command) *model.Starlight[*cpu.CPUBackend] {
	log := logger.FromContext(ctx)
	log.Debug("building model", "layers", o.cfg.NLayer, "d_model", o.cfg.DModel, "seed", o.seed)

	opts := []model.Option{model.WithSeed(o.seed)}
	errOut := cmd.Root().ErrWriter
	if logger.IsTerminal(errOut) {
		bar := newBar(errOut, o.cfg.NLayer, "Building blocks")
		opts = append(opts, model.WithProgress(func(done, total int) {
			_ = bar.Add(1)
			if done == total {
				_ = bar.Finish()
				_, _ = fmt.Fprintln(errOut)
			}
		}))
	}
	return model.New(o.cfg, o.backend(), opts...)
}

func newBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
