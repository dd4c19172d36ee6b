package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
)

// InputOptions is the source of the text of a command. Exactly one is set.
type InputOptions struct {
	Text string
	File string
	URL  string
}

var errNoInput = errors.New("one of --text, --file, --url or a text argument is required")

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: "text to analyze"},
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "read the text from a file"},
		&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "fetch the text of a web page"},
	}
}

// inputOptions reads the input flags. Positional arguments are joined as
// the text.
func inputOptions(cCtx *cli.Context) InputOptions {
	opts := InputOptions{
		Text: cCtx.String("text"),
		File: cCtx.String("file"),
		URL:  cCtx.String("url"),
	}

	if opts.Text == "" && cCtx.Args().Present() {
		opts.Text = strings.Join(cCtx.Args().Slice(), " ")
	}

	return opts
}

// readInput returns the text and a default file stem for it.
func (e *env) readInput(ctx context.Context, opts InputOptions) (string, string, error) {
	n := 0
	for _, s := range []string{opts.Text, opts.File, opts.URL} {
		if s != "" {
			n++
		}
	}

	switch {
	case n == 0:
		return "", "", errNoInput
	case n > 1:
		return "", "", errors.New("only one of --text, --file or --url can be given")
	}

	switch {
	case opts.File != "":
		content, err := os.ReadFile(opts.File)
		if err != nil {
			return "", "", err
		}
		base := filepath.Base(opts.File)
		return string(content), strings.TrimSuffix(base, filepath.Ext(base)), nil

	case opts.URL != "":
		text, err := e.fetcher().PageText(ctx, opts.URL)
		if err != nil {
			return "", "", err
		}
		return text, "page", nil
	}

	return opts.Text, "text", nil
}

func checkStem(stem string) error {
	if stem == "" || stem != filepath.Base(stem) || stem == "." || stem == ".." {
		return fmt.Errorf("invalid file stem %q", stem)
	}
	return nil
}
