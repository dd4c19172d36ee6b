package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

const (
	demoDependencyText = "When you dive into the sea, you are diving into the origin of us all."

	demoInterview = `When Sebastian Thrun started working on self-driving cars at ` +
		`Google in 2007, few people outside of the company took him ` +
		`seriously. "I can tell you many senior CEOs of major American ` +
		`car companies would shake my hand and turn away because I was ` +
		`not worth talking to," said Sebastian Thrun, in an interview with` +
		` Times earlier this week.`

	demoTokenizeText = "Open your eyes, see that everything is connected to everything else!"
)

type DemoOptions struct {
	// Reviews is the CSV table scored last. A missing file skips the step.
	Reviews string

	NoProgress bool
}

func demoCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Run the dependency diagram, classification and review scoring on sample texts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "reviews", Value: filepath.Join("data", "tripadvisor_hotel_reviews.csv"), Usage: "CSV table of reviews"},
			&cli.BoolFlag{Name: "no-progress", Usage: "do not show the progress bar"},
		},
		Action: func(cCtx *cli.Context) error {
			opts := DemoOptions{
				Reviews:    cCtx.String("reviews"),
				NoProgress: cCtx.Bool("no-progress"),
			}
			return demoCommand(cCtx.Context, e, opts)
		},
	}
}

func demoCommand(ctx context.Context, e *env, opts DemoOptions) error {
	an, err := e.analyzer(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "🔧 tokens of %q\n", demoTokenizeText)
	if err := tokenizeCommand(ctx, e, InputOptions{Text: demoTokenizeText}); err != nil {
		return err
	}

	fmt.Fprintln(e.ui.Out, "🔧 dependency diagram")
	if err := visualize(ctx, e, an, demoDependencyText, DepgraphOptions{Stem: "dependency"}); err != nil {
		return err
	}

	fmt.Fprintln(e.ui.Out, "🔧 interview")
	if err := classify(ctx, e, an, demoInterview, "thurn_interview", AnalyzeOptions{}); err != nil {
		return err
	}

	if _, err := os.Stat(opts.Reviews); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(e.ui.Out, "⚠  %s not found, skipping reviews\n", opts.Reviews)
		return nil
	}

	fmt.Fprintln(e.ui.Out, "🔧 reviews")
	return reviewsCommand(ctx, e, an, ReviewsOptions{
		Path:       opts.Reviews,
		Out:        filepath.Join(e.cfg.OutputDir, "hotel_reviews.xlsx"),
		NoProgress: opts.NoProgress,
	})
}
