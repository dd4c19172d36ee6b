package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/lemmix/analyze"
)

type DepgraphOptions struct {
	Input InputOptions
	Stem  string

	// NoPNG disables the PNG copy whatever the configuration says
	NoPNG bool
}

func depgraphCmd(e *env) *cli.Command {
	flags := append(inputFlags(),
		&cli.StringFlag{Name: "stem", Aliases: []string{"s"}, Value: "dependency", Usage: "name of the written files, without extension"},
		&cli.BoolFlag{Name: "no-png", Usage: "write the svg only"},
	)

	return &cli.Command{
		Name:      "depgraph",
		Usage:     "Write the dependency diagram of a text as svg and png",
		ArgsUsage: "[text]",
		Flags:     flags,
		Action: func(cCtx *cli.Context) error {
			opts := DepgraphOptions{
				Input: inputOptions(cCtx),
				Stem:  cCtx.String("stem"),
				NoPNG: cCtx.Bool("no-png"),
			}
			return depgraphCommand(cCtx.Context, e, opts)
		},
	}
}

func depgraphCommand(ctx context.Context, e *env, opts DepgraphOptions) error {
	text, _, err := e.readInput(ctx, opts.Input)
	if err != nil {
		return err
	}

	an, err := e.analyzer(ctx)
	if err != nil {
		return err
	}

	return visualize(ctx, e, an, text, opts)
}

// visualize writes the dependency diagram of text. A failed PNG conversion
// is reported but does not fail the command.
func visualize(ctx context.Context, e *env, an *analyze.Analyzer, text string, opts DepgraphOptions) error {
	if err := checkStem(opts.Stem); err != nil {
		return err
	}

	doc, err := an.Analyze(ctx, text, false)
	if err != nil {
		return err
	}

	fr, err := e.fileRenderer(e.cfg.Render.PNG && !opts.NoPNG)
	if err != nil {
		return err
	}

	art, err := fr.DependencyGraph(doc, opts.Stem)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "📄 %s\n", art.SVG)
	switch {
	case art.PNG != "":
		fmt.Fprintf(e.ui.Out, "📄 %s\n", art.PNG)
	case art.RasterErr != nil:
		fmt.Fprintf(e.ui.Out, "⚠  no png: %v\n", art.RasterErr)
	}

	return nil
}
