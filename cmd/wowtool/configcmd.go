package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Faultbox/wowfmt/internal/output"
)

func configCmd(st *state) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Write the current settings to a config file",
				ArgsUsage: "[path]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					var (
						path string
						err  error
					)
					if p := cmd.Args().First(); p != "" {
						path, err = p, st.cfg.SaveTo(p)
					} else {
						path, err = st.cfg.Save()
					}
					if err != nil {
						return err
					}
					return st.print(map[string]string{"config": path})
				},
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					// Always YAML, the config file's own format.
					return output.Write(os.Stdout, st.cfg, output.Options{Format: output.FormatYAML})
				},
			},
		},
	}
}
