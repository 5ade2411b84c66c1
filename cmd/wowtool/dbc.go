package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Faultbox/wowfmt/pkg/archive"
	"github.com/Faultbox/wowfmt/pkg/dbc"
)

// dbFilesDir is where the client keeps its tables inside an MPQ.
const dbFilesDir = "DBFilesClient"

func dbcJoinCmd(st *state) *cli.Command {
	var (
		dir   string
		join  string
		tabID int
	)

	return &cli.Command{
		Name:  "dbc-join",
		Usage: "Join related client tables into one document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "directory holding the .dbc files, or an MPQ", Destination: &dir, Required: true},
			&cli.StringFlag{Name: "join", Aliases: []string{"j"}, Usage: "join to run: talents", Destination: &join, Required: true},
			&cli.IntFlag{Name: "record", Aliases: []string{"r"}, Usage: "only this talent tab id", Value: -1, Destination: &tabID},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := archive.Open(dir)
			if err != nil {
				return err
			}
			defer a.Close()

			var src archive.Source = a
			if _, isDir := a.(*archive.Dir); !isDir {
				src = archive.Sub(a, dbFilesDir)
			}

			switch join {
			case "talents":
				var filter *uint32
				if tabID >= 0 {
					id := uint32(tabID)
					filter = &id
				}
				trees, err := dbc.JoinTalents(src, filter)
				if err != nil {
					return err
				}
				return st.print(trees)
			default:
				return fmt.Errorf("unknown join %q (available: talents)", join)
			}
		},
	}
}
