// Package repl is an interactive prompt that analyzes the typed text and
// prints it with the terminal renderer.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/lemmix/analyze"
	"github.com/revelaction/lemmix/render"
	"github.com/revelaction/lemmix/storage"
)

const (
	completionThreshold = 2

	// commandPrefix is the character in the prompt that prefixes a command
	commandPrefix = ":"

	quit = "quit"
)

var commands = []prompt.Suggest{
	{Text: ":docs", Description: "list stored docs"},
	{Text: ":doc", Description: "show a stored doc: :doc <id>"},
	{Text: ":format", Description: "set the format: :format <name>"},
	{Text: quit, Description: "exit"},
}

type Handler struct {
	Analyzer *analyze.Analyzer

	// DocRepo is optional. Without it the :doc commands fail.
	DocRepo  storage.DocReader
	Renderer *render.Renderer

	// lemmas seen in the analyzed texts, for completion
	lemmas map[string]bool
}

func NewHandler(an *analyze.Analyzer, dr storage.DocReader, r *render.Renderer) *Handler {
	return &Handler{
		Analyzer: an,
		DocRepo:  dr,
		Renderer: r,
		lemmas:   map[string]bool{},
	}
}

func (h *Handler) out() io.Writer {
	return h.Renderer.Out
}

func (h *Handler) Run(ctx context.Context) error {

	fmt.Fprintln(h.out(), "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      ✍  ", h.completer,
			prompt.OptionTitle("lemmix repl"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.out(), "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintln(h.out(), "Prefix set to "+fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		if strings.TrimSpace(in) == quit {
			return nil
		}

		history = append(history, in)

		if err := h.Eval(ctx, in); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(h.out(), "Error: %v\n", err)
		}
	}
}

// Eval runs one line of input: a command, or a text to analyze.
func (h *Handler) Eval(ctx context.Context, in string) error {
	in = strings.TrimSpace(in)
	if in == "" {
		return nil
	}

	if strings.HasPrefix(in, commandPrefix) {
		return h.command(in)
	}

	doc, err := h.Analyzer.Analyze(ctx, in, true)
	if err != nil {
		return err
	}

	for _, t := range doc.Tokens {
		if len(t.Lemma) >= completionThreshold {
			h.lemmas[strings.ToLower(t.Lemma)] = true
		}
	}

	h.Renderer.Doc(doc)
	if doc.Sentiment != nil {
		fmt.Fprintf(h.out(), "🎭 polarity %.3f, subjectivity %.3f\n", doc.Sentiment.Polarity, doc.Sentiment.Subjectivity)
	}

	return nil
}

func (h *Handler) command(in string) error {
	fields := strings.Fields(in)

	switch fields[0] {
	case ":docs":
		if h.DocRepo == nil {
			return errors.New("no doc store")
		}
		docs, err := h.DocRepo.List("")
		if err != nil {
			return err
		}
		for _, doc := range docs {
			fmt.Fprintf(h.out(), "📖 %d %s\n", doc.Id, doc.Title)
		}
		return nil

	case ":doc":
		if h.DocRepo == nil {
			return errors.New("no doc store")
		}
		if len(fields) != 2 {
			return errors.New("usage: :doc <id>")
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid doc id %q", fields[1])
		}
		doc, err := h.DocRepo.Read(id)
		if err != nil {
			return err
		}
		h.Renderer.Doc(doc)
		return nil

	case ":format":
		if len(fields) != 2 {
			return fmt.Errorf("usage: :format <%s>", strings.Join(render.SupportedFormats(), "|"))
		}
		for _, f := range render.SupportedFormats() {
			if f == fields[1] {
				h.Renderer.Format = f
				fmt.Fprintln(h.out(), "Format set to: "+f)
				return nil
			}
		}
		return fmt.Errorf("unknown format %q", fields[1])
	}

	return fmt.Errorf("unknown command %q", fields[0])
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{}
	befCursor := in.TextBeforeCursor()

	if "" == befCursor {
		return s
	}

	if strings.HasPrefix(befCursor, commandPrefix) && !strings.Contains(befCursor, " ") {
		return prompt.FilterHasPrefix(commands, befCursor, false)
	}

	if strings.HasPrefix(befCursor, ":format ") {
		for _, f := range render.SupportedFormats() {
			s = append(s, prompt.Suggest{Text: f})
		}
		return prompt.FilterHasPrefix(s, in.GetWordBeforeCursor(), false)
	}

	return h.completeLemma(in.GetWordBeforeCursor())
}

// completeLemma suggests the lemmas already seen that start with word.
func (h *Handler) completeLemma(word string) []prompt.Suggest {
	s := []prompt.Suggest{}
	if len(word) < completionThreshold {
		return s
	}

	word = strings.ToLower(word)
	for l := range h.lemmas {
		if strings.HasPrefix(l, word) && l != word {
			s = append(s, prompt.Suggest{Text: l, Description: "lemma"})
		}
	}

	sort.Slice(s, func(i, j int) bool { return s[i].Text < s[j].Text })
	return s
}
