package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/wowfmt/internal/logger"
	"github.com/Faultbox/wowfmt/pkg/archive"
	"github.com/Faultbox/wowfmt/pkg/dbc"
	"github.com/Faultbox/wowfmt/pkg/formats"
)

var (
	errUnsupported = errors.New("unsupported file type")
	errNoSchema    = errors.New("no table schema registered")
)

func viewCmd(st *state) *cli.Command {
	var archivePath, file string

	return &cli.Command{
		Name:  "view",
		Usage: "Decode an asset and print it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "archive", Aliases: []string{"a"}, Usage: "MPQ archive or data directory holding the file", Destination: &archivePath},
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "file to decode (.adt, .wdt, .wmo, .dbc)", Destination: &file, Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			src, name, done, err := openSource(st, archivePath, file)
			if err != nil {
				return err
			}
			defer done()

			v, err := decode(src, name, st.loadOptions()...)
			if err != nil {
				return err
			}
			return st.print(v)
		},
	}
}

// openSource picks where file is read from: the named archive, the local
// disk, or the configured archive chain. The returned name is relative to
// the source.
func openSource(st *state, archivePath, file string) (archive.Source, string, func() error, error) {
	nop := func() error { return nil }

	if archivePath != "" {
		a, err := archive.Open(archivePath)
		if err != nil {
			return nil, "", nil, err
		}
		return a, file, a.Close, nil
	}

	if _, err := os.Stat(file); err == nil {
		return archive.NewDir(filepath.Dir(file)), filepath.Base(file), nop, nil
	} else if len(st.cfg.Archive.Paths) == 0 {
		return nil, "", nil, fmt.Errorf("reading %s: %w", file, err)
	}

	chain, err := archive.OpenAll(st.cfg.Archive.Paths...)
	if err != nil {
		return nil, "", nil, err
	}
	logger.Debug("searching configured archives", zap.Int("archives", chain.Len()))
	return chain, file, chain.Close, nil
}

// decode loads name from src with the decoder its extension selects.
// Tables are matched by file name against the registered schemas.
func decode(src archive.Source, name string, opts ...formats.Option) (any, error) {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))

	switch strings.ToLower(path.Ext(base)) {
	case ".adt":
		return formats.LoadADT(src, name, opts...)
	case ".wdt":
		return formats.LoadWDT(src, name, opts...)
	case ".wmo":
		wmo, err := formats.LoadWMO(src, name, opts...)
		if errors.Is(err, formats.ErrNotRootWMO) {
			// a group file on its own
			data, err := src.ReadFile(name)
			if err != nil {
				return nil, err
			}
			return formats.ParseWMOGroup(data)
		}
		return wmo, err
	case ".dbc":
		load, ok := dbc.Lookup(base)
		if !ok {
			return nil, fmt.Errorf("%w: %s (known: %s)", errNoSchema, base, strings.Join(dbc.Names(), ", "))
		}
		data, err := src.ReadFile(name)
		if err != nil {
			return nil, err
		}
		return load(data)
	}
	return nil, fmt.Errorf("%w: %s", errUnsupported, base)
}
