// wowtool inspects World of Warcraft client assets: terrain tiles, map
// definitions, world map objects, client database tables and MPQ archives.
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Faultbox/wowfmt/internal/config"
	"github.com/Faultbox/wowfmt/internal/logger"
	"github.com/Faultbox/wowfmt/internal/output"
	"github.com/Faultbox/wowfmt/pkg/formats"
)

// state is shared by every command once the root Before hook has run.
type state struct {
	overrides config.Overrides
	cfg       *config.Config
}

// print renders a command result to stdout unless results are suppressed.
func (s *state) print(v any) error {
	if s.cfg.Output.NoResult {
		return nil
	}
	return output.Write(os.Stdout, v, output.Options{
		Format:  s.cfg.Output.Format,
		Compact: s.cfg.Output.Compact,
	})
}

// loadOptions builds the asset loader options from the configuration.
func (s *state) loadOptions() []formats.Option {
	return []formats.Option{
		formats.WithLogger(logger.Named("formats")),
		formats.WithGroupWorkers(s.cfg.Loader.GroupWorkers),
	}
}

func newApp() *cli.Command {
	st := &state{}
	o := &st.overrides

	return &cli.Command{
		Name:  "wowtool",
		Usage: "Inspect World of Warcraft client assets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to config file", Destination: &o.ConfigPath},
			&cli.StringFlag{Name: "format", Usage: "output format: json, yaml or cbor", Destination: &o.Format},
			&cli.BoolFlag{Name: "compact", Aliases: []string{"c"}, Usage: "single-line JSON output", Destination: &o.Compact},
			&cli.BoolFlag{Name: "no-result", Usage: "decode but do not print the result", Destination: &o.NoResult},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging", Destination: &o.Debug},
			&cli.StringFlag{Name: "log-file", Usage: "also write logs to this file", Destination: &o.LogFile},
			&cli.IntFlag{Name: "workers", Usage: "concurrent WMO group loads", Destination: &o.GroupWorkers},
			&cli.StringSliceFlag{Name: "archive-path", Usage: "archive or data directory to search (repeatable, later wins)", Destination: &o.Archives},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := config.Load(*o)
			if err != nil {
				return ctx, err
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return ctx, err
			}
			st.cfg = cfg
			logger.Debug("configuration loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			logger.Sync()
			return nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			viewCmd(st),
			dbcJoinCmd(st),
			mpqCmd(st),
			configCmd(st),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_ = output.WriteError(os.Stderr, err)
		os.Exit(1)
	}
}
