package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp(ui).RunContext(ctx, os.Args)
	stop()

	if err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "lemmix: %v\n", err)
}

func newApp(ui UI) *cli.App {
	e := &env{ui: ui}

	return &cli.App{
		Name:                 "lemmix",
		Usage:                "annotate, render and score english text",
		HideVersion:          true,
		EnableBashCompletion: true,
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		Flags:                globalFlags(),
		Before:               e.setup,
		After:                e.close,
		// errors are printed by main
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			fetchCmd(e),
			tokenizeCmd(e),
			analyzeCmd(e),
			depgraphCmd(e),
			sentimentCmd(e),
			reviewsCmd(e),
			demoCmd(e),
			showCmd(e),
			docsCmd(e),
			labelsCmd(e),
			replCmd(e),
			versionCmd(e),
			bashCmd(e),
		},
	}
}
