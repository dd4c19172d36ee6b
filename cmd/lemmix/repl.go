package main

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/lemmix/render"
	"github.com/revelaction/lemmix/repl"
	"github.com/revelaction/lemmix/storage"
	"github.com/revelaction/lemmix/storage/filesystem"
)

type ReplOptions struct {
	NoColor  bool
	NoPrefix bool
	Format   string
	DocPath  string

	// Labels of the docs loaded in memory, all if empty
	Labels []string
}

func replCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Analyze texts interactively",
		Flags: []cli.Flag{
			docPathFlag(),
			&cli.BoolFlag{Name: "no-color", Usage: "do not color the entities"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "do not prefix sentences with their id"},
			&cli.StringFlag{Name: "format", Value: render.Defaultformat, Usage: "one of " + strings.Join(render.SupportedFormats(), ", ")},
			&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "preload only the docs with this label (repeatable)"},
		},
		Action: func(cCtx *cli.Context) error {
			opts := ReplOptions{
				NoColor:  cCtx.Bool("no-color"),
				NoPrefix: cCtx.Bool("no-prefix"),
				Format:   cCtx.String("format"),
				DocPath:  e.docPath(cCtx),
				Labels:   cCtx.StringSlice("label"),
			}
			return replCommand(cCtx.Context, e, opts)
		},
	}
}

func replCommand(ctx context.Context, e *env, opts ReplOptions) error {
	an, err := e.analyzer(ctx)
	if err != nil {
		return err
	}

	dr, err := preloadDocs(opts.DocPath, opts.Labels)
	if err != nil {
		return err
	}

	r := render.NewRenderer()
	r.Out = e.ui.Out
	r.HasColor = !opts.NoColor
	r.HasPrefix = !opts.NoPrefix
	r.Format = opts.Format

	// now present the REPL
	return repl.NewHandler(an, dr, r).Run(ctx)
}

// preloadDocs loads the stored docs with a progress bar. A missing doc dir
// gives no store.
func preloadDocs(path string, labels []string) (storage.DocReader, error) {
	h, err := filesystem.NewDocStore(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(1) // Placeholder, updated in callback
	bar.AppendCompleted()
	bar.PrependElapsed()

	var currentName string
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return currentName
	})

	err = h.Preload(labels, func(current, total int, name string) {
		if bar.Total <= 1 {
			bar.Total = total
		}
		currentName = name
		bar.Set(current)
	})
	uiprogress.Stop()

	if err != nil {
		return nil, err
	}

	return h, nil
}
