package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/lemmix/analyze"
	"github.com/revelaction/lemmix/render"
	"github.com/revelaction/lemmix/score"
	"github.com/revelaction/lemmix/table"
)

type ReviewsOptions struct {
	Path string

	// Out is the written table, .xlsx or .csv
	Out string

	NoProgress bool
}

func reviewsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "reviews",
		Usage:     "Score the sentiment of a CSV table of reviews and write it with the scores",
		ArgsUsage: "<reviews.csv>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "output table, .xlsx or .csv (default <output-dir>/hotel_reviews.xlsx)"},
			&cli.BoolFlag{Name: "no-progress", Usage: "do not show the progress bar"},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return errors.New("reviews command requires exactly one csv file")
			}

			opts := ReviewsOptions{
				Path:       cCtx.Args().First(),
				Out:        cCtx.String("out"),
				NoProgress: cCtx.Bool("no-progress"),
			}
			if opts.Out == "" {
				opts.Out = filepath.Join(e.cfg.OutputDir, "hotel_reviews.xlsx")
			}

			an, err := e.analyzer(cCtx.Context)
			if err != nil {
				return err
			}

			return reviewsCommand(cCtx.Context, e, an, opts)
		},
	}
}

func reviewsCommand(ctx context.Context, e *env, an *analyze.Analyzer, opts ReviewsOptions) error {
	tbl, err := table.Read(opts.Path)
	if err != nil {
		return err
	}

	scorer := score.New(an, e.cfg.CapRows, e.cfg.NegativityThreshold)
	scorer.Logger = e.logger

	if !opts.NoProgress {
		total := min(max(e.cfg.CapRows, 0), len(tbl.Rows))

		// Start progress indicator
		uiprogress.Start()
		bar := uiprogress.AddBar(max(total, 1))
		bar.AppendCompleted()
		bar.PrependElapsed()

		scorer.OnProgress = func(done, _ int) {
			bar.Set(done)
		}
		defer uiprogress.Stop()
	}

	res := scorer.Score(ctx, tbl.Rows)

	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintln(e.ui.Out, "average subjectivity:", res.Stats.MeanSubjectivity)
	fmt.Fprintln(e.ui.Out, "Number of Negatives:", res.Stats.Negatives)
	render.StatsTable(e.ui.Out, res.Stats)

	if err := os.MkdirAll(filepath.Dir(opts.Out), 0o755); err != nil {
		return err
	}

	if err := table.Write(opts.Out, tbl.Header, score.TableRows(res.Scored), res.Stats); err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "📄 %s\n", opts.Out)
	return nil
}
