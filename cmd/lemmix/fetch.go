package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

type FetchOptions struct {
	URL string
	Out string
}

func fetchCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a web page and store its text",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "output file (default <output-dir>/random_text.txt)"},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return errors.New("fetch command requires exactly one url")
			}

			opts := FetchOptions{URL: cCtx.Args().First(), Out: cCtx.String("out")}
			if opts.Out == "" {
				opts.Out = filepath.Join(e.cfg.OutputDir, "random_text.txt")
			}

			return fetchCommand(cCtx.Context, e, opts)
		},
	}
}

func fetchCommand(ctx context.Context, e *env, opts FetchOptions) error {
	text, err := e.fetcher().PageText(ctx, opts.URL)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(opts.Out), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(opts.Out, []byte(text), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "📄 %s (%d bytes)\n", opts.Out, len(text))
	return nil
}
