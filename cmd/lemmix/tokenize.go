package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

func tokenizeCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "tokenize",
		Usage:     "Print one token per line",
		ArgsUsage: "[text]",
		Flags:     inputFlags(),
		Action: func(cCtx *cli.Context) error {
			return tokenizeCommand(cCtx.Context, e, inputOptions(cCtx))
		},
	}
}

func tokenizeCommand(ctx context.Context, e *env, in InputOptions) error {
	text, _, err := e.readInput(ctx, in)
	if err != nil {
		return err
	}

	an, err := e.analyzer(ctx)
	if err != nil {
		return err
	}

	doc, err := an.Analyze(ctx, text, false)
	if err != nil {
		return err
	}

	for _, t := range doc.Tokens {
		fmt.Fprintln(e.ui.Out, t.Text)
	}

	return nil
}
