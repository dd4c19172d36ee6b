package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

func sentimentCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "sentiment",
		Usage:     "Print the polarity and subjectivity of a text",
		ArgsUsage: "[text]",
		Flags:     inputFlags(),
		Action: func(cCtx *cli.Context) error {
			return sentimentCommand(cCtx.Context, e, inputOptions(cCtx))
		},
	}
}

func sentimentCommand(ctx context.Context, e *env, in InputOptions) error {
	text, _, err := e.readInput(ctx, in)
	if err != nil {
		return err
	}

	an, err := e.analyzer(ctx)
	if err != nil {
		return err
	}

	doc, err := an.Analyze(ctx, text, true)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "polarity %.4f, subjectivity %.4f\n", doc.Sentiment.Polarity, doc.Sentiment.Subjectivity)
	return nil
}
