package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	sent "github.com/revelaction/lemmix/sentence"
)

const (
	Defaultformat = "all"
)

var (
	Yellow    = "\033[0;33m"
	White     = "\033[1;37m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

func SupportedFormats() []string {
	return []string{"all", "lemma", "ents", "chunks", "deps"}
}

// Renderer prints docs to a terminal.
type Renderer struct {
	HasColor bool

	HasPrefix bool

	// Format determines what is printed for each sentence
	//
	// all: the sentence text, entity tokens colored
	// lemma: the lemmas of the sentence
	// ents: the entities of the sentence, with their labels
	// chunks: the noun chunks of the sentence
	// deps: the tokens with their head and dependency label
	Format string

	Out io.Writer
}

func NewRenderer() *Renderer {
	return &Renderer{Format: Defaultformat, Out: os.Stdout}
}

// Doc prints every sentence of doc in the current format.
func (r *Renderer) Doc(doc sent.Doc) {
	entityTokens := doc.EntityTokens()

	for sid, s := range doc.Sentences {
		tokens := doc.SpanTokens(s)
		prefix := r.prefix(sid)

		var text string
		switch r.Format {
		case "lemma":
			text = r.lemma(tokens)
		case "ents":
			text = r.labeled(doc, doc.Entities, s)
		case "chunks":
			text = r.chunks(doc, s)
		case "deps":
			text = r.deps(doc, tokens)
		default:
			text = r.sentence(tokens, entityTokens)
		}

		if text == "" {
			continue
		}

		fmt.Fprintf(r.Out, "%s%s\n", prefix, strings.ReplaceAll(text, "\n", " "))
	}
}

// sentence rebuilds the original text of the tokens from their rune offsets.
func (r *Renderer) sentence(sentence, highlight []sent.Token) string {
	var str strings.Builder
	for i, token := range sentence {
		if i == 0 {
			str.WriteString(colorToken(token, highlight, r.HasColor))
			continue
		}

		// tokens sharing the offset of the previous one (multi token words)
		// are not printed again
		prev := sentence[i-1]
		if token.Idx <= prev.Idx {
			continue
		}

		if gap := token.Idx - prev.End(); gap > 0 {
			str.WriteString(strings.Repeat(" ", gap))
		}
		str.WriteString(colorToken(token, highlight, r.HasColor))
	}

	return str.String()
}

// lemma renders the lemma field of the tokens
func (r *Renderer) lemma(tokens []sent.Token) string {
	lemmas := []string{}
	for _, t := range tokens {
		lemmas = append(lemmas, t.Lemma)
	}

	return strings.Join(lemmas, " ")
}

// labeled renders the entities inside the sentence span s as "text LABEL"
// pairs.
func (r *Renderer) labeled(doc sent.Doc, ents []sent.Entity, s sent.Span) string {
	parts := []string{}
	for _, e := range ents {
		if e.Start < s.Start || e.End > s.End {
			continue
		}

		label := e.Label
		if r.HasColor {
			label = Yellow256 + label + Off
		}
		parts = append(parts, fmt.Sprintf("%s %s", doc.SpanText(e.Span), label))
	}

	return strings.Join(parts, " | ")
}

func (r *Renderer) chunks(doc sent.Doc, s sent.Span) string {
	parts := []string{}
	for _, c := range doc.NounChunks {
		if c.Start < s.Start || c.End > s.End {
			continue
		}
		parts = append(parts, doc.SpanText(c))
	}

	return strings.Join(parts, " | ")
}

// deps renders each token as text/dep→head
func (r *Renderer) deps(doc sent.Doc, tokens []sent.Token) string {
	parts := []string{}
	for _, t := range tokens {
		head := t.Text
		if t.Head >= 0 && t.Head < len(doc.Tokens) {
			head = doc.Tokens[t.Head].Text
		}

		dep := t.Dep
		if r.HasColor {
			dep = Grey256 + dep + Off
		}
		parts = append(parts, fmt.Sprintf("%s/%s→%s", t.Text, dep, head))
	}

	return strings.Join(parts, " ")
}

func colorToken(token sent.Token, highlight []sent.Token, hasColor bool) string {
	if !hasColor {
		return token.Text
	}

	for _, mt := range highlight {
		if mt.Id == token.Id {
			return Green256 + token.Text + Off
		}
	}

	return token.Text
}

func (r *Renderer) prefix(sentenceId int) string {
	if !r.HasPrefix {
		return ""
	}

	return fmt.Sprintf("%2d ✍  ", sentenceId)
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			switch i {
			case len(supported) - 1:
				r.Format = supported[0]
			default:
				r.Format = supported[i+1]
			}

			break
		}
	}
}

func (r *Renderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}
