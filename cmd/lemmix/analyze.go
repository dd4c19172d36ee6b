package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/lemmix/analyze"
	"github.com/revelaction/lemmix/render"
	sent "github.com/revelaction/lemmix/sentence"
	"github.com/revelaction/lemmix/stat"
	"github.com/revelaction/lemmix/storage/filesystem"
)

type AnalyzeOptions struct {
	Input InputOptions

	// Stem of the written files. Empty means derived from the input.
	Stem string

	// JSON prints the doc as JSON instead of the summary
	JSON bool

	// Tokens prints a table with every token
	Tokens bool

	// Save stores the doc as <stem>.json in the output dir
	Save   bool
	Labels []string
}

func analyzeCmd(e *env) *cli.Command {
	flags := append(inputFlags(),
		&cli.StringFlag{Name: "stem", Aliases: []string{"s"}, Usage: "name of the written files, without extension"},
		&cli.BoolFlag{Name: "json", Usage: "print the doc as JSON"},
		&cli.BoolFlag{Name: "tokens", Usage: "print every token"},
		&cli.BoolFlag{Name: "save", Usage: "store the doc as <stem>.json in the output dir"},
		&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "label of the stored doc (repeatable)"},
	)

	return &cli.Command{
		Name:      "analyze",
		Usage:     "Print noun phrases, sentences and entities, write the lemma dump and the entity page",
		ArgsUsage: "[text]",
		Flags:     flags,
		Action: func(cCtx *cli.Context) error {
			opts := AnalyzeOptions{
				Input:  inputOptions(cCtx),
				Stem:   cCtx.String("stem"),
				JSON:   cCtx.Bool("json"),
				Tokens: cCtx.Bool("tokens"),
				Save:   cCtx.Bool("save"),
				Labels: cCtx.StringSlice("label"),
			}
			return analyzeCommand(cCtx.Context, e, opts)
		},
	}
}

func analyzeCommand(ctx context.Context, e *env, opts AnalyzeOptions) error {
	text, stem, err := e.readInput(ctx, opts.Input)
	if err != nil {
		return err
	}

	if opts.Stem != "" {
		stem = opts.Stem
	}

	an, err := e.analyzer(ctx)
	if err != nil {
		return err
	}

	return classify(ctx, e, an, text, stem, opts)
}

// classify analyzes text, prints it and writes its lemma dump and entity
// page named after stem.
func classify(ctx context.Context, e *env, an *analyze.Analyzer, text, stem string, opts AnalyzeOptions) error {
	if err := checkStem(stem); err != nil {
		return err
	}

	doc, err := an.Analyze(ctx, text, false)
	if err != nil {
		return err
	}

	if opts.JSON {
		if err := render.NewJSONRenderer(e.ui.Out).Render(doc); err != nil {
			return err
		}
	} else {
		printSummary(e.ui, doc)
		if opts.Tokens {
			render.TokenTable(e.ui.Out, doc)
		}
	}

	fr, err := e.fileRenderer(false)
	if err != nil {
		return err
	}

	lemmaPath, err := fr.LemmaDump(doc, stem)
	if err != nil {
		return err
	}

	htmlPath, err := fr.EntityHighlights(doc, stem)
	if err != nil {
		return err
	}

	// the JSON output goes to stdout alone
	out := e.ui.Out
	if opts.JSON {
		out = e.ui.Err
	}

	fmt.Fprintf(out, "📄 %s\n📄 %s\n", lemmaPath, htmlPath)

	if !opts.Save {
		return nil
	}

	store, err := filesystem.NewDocStore(e.cfg.OutputDir)
	if err != nil {
		return err
	}

	doc.Title = stem
	doc.Labels = opts.Labels
	id, err := store.Write(doc)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "📖 %d %s.json\n", id, stem)
	return nil
}

func printSummary(ui UI, doc sent.Doc) {
	chunks := make([]string, 0, len(doc.NounChunks))
	for _, c := range doc.NounChunks {
		chunks = append(chunks, doc.SpanText(c))
	}
	fmt.Fprintf(ui.Out, "Noun phrases: [%s]\n", strings.Join(chunks, ", "))

	fmt.Fprintln(ui.Out, "Sentences:")
	r := render.NewRenderer()
	r.Out = ui.Out
	r.HasPrefix = true
	r.Doc(doc)

	if len(doc.Entities) > 0 {
		render.EntityTable(ui.Out, doc)
	}

	render.DocStatsTable(ui.Out, stat.Doc(doc))
}
