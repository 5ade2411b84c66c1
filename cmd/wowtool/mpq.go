package main

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/wowfmt/internal/logger"
	"github.com/Faultbox/wowfmt/pkg/archive"
)

// listing is the result of mpq view and mpq search.
type listing struct {
	Archive string   `json:"archive"`
	Count   int      `json:"count"`
	Files   []string `json:"files"`
}

// extraction is the result of mpq extract and mpq extract-tree.
type extraction struct {
	Archive string   `json:"archive"`
	Target  string   `json:"target"`
	Files   []string `json:"files"`
}

func mpqCmd(st *state) *cli.Command {
	var archivePath string
	archiveFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:        "archive",
			Aliases:     []string{"a"},
			Usage:       "MPQ archive (or data directory)",
			Destination: &archivePath,
			Required:    true,
		}
	}

	withArchive := func(fn func(a archive.Archive) error) error {
		a, err := archive.Open(archivePath)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(a)
	}

	var file, target, prefix, dest string

	return &cli.Command{
		Name:  "mpq",
		Usage: "List, search and extract archive contents",
		Commands: []*cli.Command{
			{
				Name:  "view",
				Usage: "List every file in the archive",
				Flags: []cli.Flag{archiveFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withArchive(func(a archive.Archive) error {
						files, err := a.List()
						if err != nil {
							return err
						}
						return st.print(listing{Archive: archivePath, Count: len(files), Files: files})
					})
				},
			},
			{
				Name:  "extract",
				Usage: "Extract one file",
				Flags: []cli.Flag{
					archiveFlag(),
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "internal path", Destination: &file, Required: true},
					&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Usage: "output path (default: file name in the current directory)", Destination: &target},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					out := target
					if out == "" {
						out = path.Base(strings.ReplaceAll(file, `\`, "/"))
					}
					return withArchive(func(a archive.Archive) error {
						if err := archive.Extract(a, file, out); err != nil {
							return err
						}
						logger.Info("extracted", zap.String("file", file), zap.String("target", out))
						return st.print(extraction{Archive: archivePath, Target: out, Files: []string{file}})
					})
				},
			},
			{
				Name:  "extract-tree",
				Usage: "Extract every file under a directory",
				Flags: []cli.Flag{
					archiveFlag(),
					&cli.StringFlag{Name: "tree", Aliases: []string{"t"}, Usage: "internal directory prefix", Destination: &prefix, Required: true},
					&cli.StringFlag{Name: "dest", Aliases: []string{"d"}, Usage: "destination directory", Value: ".", Destination: &dest},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withArchive(func(a archive.Archive) error {
						files, err := archive.ExtractTree(a, prefix, dest)
						if err != nil {
							return err
						}
						if len(files) == 0 {
							return fmt.Errorf("%w: nothing under %s", archive.ErrNotFound, prefix)
						}
						logger.Info("extracted tree", zap.String("prefix", prefix), zap.Int("files", len(files)))
						return st.print(extraction{Archive: archivePath, Target: filepath.Clean(dest), Files: files})
					})
				},
			},
			{
				Name:      "search",
				Usage:     "Find files by glob pattern or substring",
				ArgsUsage: "<pattern>",
				Flags:     []cli.Flag{archiveFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					pattern := cmd.Args().First()
					if pattern == "" {
						return errors.New("search needs a pattern")
					}
					return withArchive(func(a archive.Archive) error {
						files, err := archive.Search(a, pattern)
						if err != nil {
							return err
						}
						return st.print(listing{Archive: archivePath, Count: len(files), Files: files})
					})
				},
			},
		},
	}
}
