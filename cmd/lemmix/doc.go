package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/lemmix/render"
	sent "github.com/revelaction/lemmix/sentence"
	"github.com/revelaction/lemmix/stat"
	"github.com/revelaction/lemmix/storage"
	"github.com/revelaction/lemmix/storage/filesystem"
)

type DocOptions struct {
	Start   int
	Count   int
	Format  string
	Stats   bool
	Tokens  bool
	DocPath string
}

func docPathFlag() cli.Flag {
	return &cli.StringFlag{Name: "doc-path", Aliases: []string{"d"}, EnvVars: []string{"LEMMIX_DOC_PATH"}, Usage: "directory of stored docs (default <output-dir>)"}
}

func (e *env) docPath(cCtx *cli.Context) string {
	if p := cCtx.String("doc-path"); p != "" {
		return p
	}
	return e.cfg.OutputDir
}

func showCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a stored doc, by id or JSON file",
		ArgsUsage: "<id|file.json>",
		Flags: []cli.Flag{
			docPathFlag(),
			&cli.IntFlag{Name: "start", Usage: "index of the first sentence to show"},
			&cli.IntFlag{Name: "n", Value: -1, Usage: "number of sentences to show (-1 for all)"},
			&cli.StringFlag{Name: "format", Value: render.Defaultformat, Usage: "one of " + strings.Join(render.SupportedFormats(), ", ")},
			&cli.BoolFlag{Name: "stats", Usage: "print the doc counts"},
			&cli.BoolFlag{Name: "tokens", Usage: "print every token"},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return errors.New("show command requires exactly one argument")
			}

			opts := DocOptions{
				Start:   cCtx.Int("start"),
				Count:   cCtx.Int("n"),
				Format:  cCtx.String("format"),
				Stats:   cCtx.Bool("stats"),
				Tokens:  cCtx.Bool("tokens"),
				DocPath: e.docPath(cCtx),
			}

			if !slices.Contains(render.SupportedFormats(), opts.Format) {
				return fmt.Errorf("unknown format %q", opts.Format)
			}

			return showCommand(opts, cCtx.Args().First(), e.ui)
		},
	}
}

func showCommand(opts DocOptions, arg string, ui UI) error {
	doc, err := readDoc(opts.DocPath, arg)
	if err != nil {
		return err
	}

	renderDoc(doc, opts, ui)

	if opts.Tokens {
		render.TokenTable(ui.Out, doc)
	}

	if opts.Stats {
		render.DocStatsTable(ui.Out, stat.Doc(doc))
	}

	return nil
}

// readDoc reads arg as a JSON file if it exists, else as the id of a doc in
// the store at docPath.
func readDoc(docPath, arg string) (sent.Doc, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		doc, err := filesystem.ReadDoc(arg)
		if err != nil {
			absPath, _ := filepath.Abs(arg)
			return sent.Doc{}, fmt.Errorf("filesystem document %q: %w", absPath, err)
		}
		return doc, nil
	}

	id, err := strconv.Atoi(arg)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("no doc file or id %q", arg)
	}

	store, err := filesystem.NewDocStore(docPath)
	if err != nil {
		return sent.Doc{}, err
	}

	return store.Read(id)
}

func renderDoc(doc sent.Doc, opts DocOptions, ui UI) {
	start := max(opts.Start, 0)
	if start >= len(doc.Sentences) {
		return
	}

	sentences := doc.Sentences[start:]
	if opts.Count >= 0 && opts.Count < len(sentences) {
		sentences = sentences[:opts.Count]
	}

	r := render.NewRenderer()
	r.Out = ui.Out
	r.Format = opts.Format
	r.HasPrefix = true

	// keep the sentence ids of the full doc in the prefix
	view := doc
	view.Sentences = make([]sent.Span, start, start+len(sentences))
	view.Sentences = append(view.Sentences, sentences...)
	r.Doc(view)
}

func docsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "docs",
		Usage: "List the stored docs",
		Flags: []cli.Flag{
			docPathFlag(),
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "only docs with a label containing this string"},
		},
		Action: func(cCtx *cli.Context) error {
			store, err := filesystem.NewDocStore(e.docPath(cCtx))
			if err != nil {
				return err
			}
			return listDocs(store, cCtx.String("label"), e.ui)
		},
	}
}

func listDocs(repo storage.DocReader, labelMatch string, ui UI) error {
	docs, err := repo.List(labelMatch)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		labels := ""
		if len(doc.Labels) > 0 {
			labels = " [" + strings.Join(doc.Labels, ", ") + "]"
		}
		fmt.Fprintf(ui.Out, "📖 %d %s%s\n", doc.Id, doc.Title, labels)
	}
	return nil
}

func labelsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "labels",
		Usage:     "List the labels of the stored docs",
		ArgsUsage: "[match]",
		Flags:     []cli.Flag{docPathFlag()},
		Action: func(cCtx *cli.Context) error {
			store, err := filesystem.NewDocStore(e.docPath(cCtx))
			if err != nil {
				return err
			}
			return listLabels(store, cCtx.Args().First(), e.ui)
		},
	}
}

func listLabels(repo storage.DocReader, match string, ui UI) error {
	labels, err := repo.Labels(match)
	if err != nil {
		return err
	}

	if len(labels) > 0 {
		fmt.Fprintln(ui.Out, strings.Join(labels, ", "))
	}

	return nil
}
