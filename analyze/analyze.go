// Package analyze turns a text into an annotated sentence.Doc using an
// injected language capability.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	sent "github.com/revelaction/lemmix/sentence"
)

var (
	// ErrUnavailable is returned when no language capability can serve the
	// request.
	ErrUnavailable = errors.New("language capability unavailable")

	// ErrUndecodable is returned for input that is not valid UTF-8.
	ErrUndecodable = errors.New("text is not valid UTF-8")

	// ErrInvalidAnnotation is returned when the capability produced spans
	// that do not reference valid token ranges.
	ErrInvalidAnnotation = errors.New("invalid annotation")
)

// AnalysisError is returned by Analyze for any failure of the language
// capability.
type AnalysisError struct {
	Capability string
	Err        error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed (%s): %v", e.Capability, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Capability is the NLP engine. It performs tokenization, lemmatization,
// dependency parsing, named entity recognition and, when asked, sentiment
// scoring in a single pass.
type Capability interface {
	Name() string
	Annotate(ctx context.Context, text string, withSentiment bool) (*Annotation, error)
}

// Annotation is the raw structure produced by a Capability. It is also the
// wire format of the spaCy service.
type Annotation struct {
	Tokens     []sent.Token  `json:"tokens"`
	Sentences  []sent.Span   `json:"sentences"`
	NounChunks []sent.Span   `json:"noun_chunks"`
	Entities   []sent.Entity `json:"entities"`

	// Polarity and Subjectivity are set only for sentiment requests.
	Polarity     *float64 `json:"polarity,omitempty"`
	Subjectivity *float64 `json:"subjectivity,omitempty"`
}

type Analyzer struct {
	capability Capability
	logger     *logrus.Logger
}

type Option func(*Analyzer)

func WithLogger(logger *logrus.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New returns an Analyzer backed by c. A nil capability is accepted; every
// Analyze call then fails with ErrUnavailable.
func New(c Capability, opts ...Option) *Analyzer {
	a := &Analyzer{
		capability: c,
		logger:     logrus.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CapabilityName returns the name of the injected capability, or "none".
func (a *Analyzer) CapabilityName() string {
	if a.capability == nil {
		return "none"
	}
	return a.capability.Name()
}

// Analyze builds a Doc from text. The empty string yields a Doc without
// tokens. Sentiment is attached only when withSentiment is true.
func (a *Analyzer) Analyze(ctx context.Context, text string, withSentiment bool) (sent.Doc, error) {
	name := a.CapabilityName()
	if a.capability == nil {
		return sent.Doc{}, &AnalysisError{Capability: name, Err: ErrUnavailable}
	}

	if !utf8.ValidString(text) {
		return sent.Doc{}, &AnalysisError{Capability: name, Err: ErrUndecodable}
	}

	text = norm.NFC.String(text)

	doc := sent.Doc{
		Text:       text,
		Tokens:     []sent.Token{},
		Sentences:  []sent.Span{},
		NounChunks: []sent.Span{},
		Entities:   []sent.Entity{},
	}

	if text == "" {
		if withSentiment {
			doc.Sentiment = &sent.Sentiment{}
		}
		return doc, nil
	}

	ann, err := a.capability.Annotate(ctx, text, withSentiment)
	if err != nil {
		return sent.Doc{}, &AnalysisError{Capability: name, Err: err}
	}
	if ann == nil {
		return sent.Doc{}, &AnalysisError{Capability: name, Err: fmt.Errorf("%w: empty annotation", ErrInvalidAnnotation)}
	}

	if err := fill(&doc, ann, withSentiment); err != nil {
		return sent.Doc{}, &AnalysisError{Capability: name, Err: err}
	}

	a.logger.WithFields(logrus.Fields{
		"capability": name,
		"tokens":     len(doc.Tokens),
		"sentences":  len(doc.Sentences),
		"entities":   len(doc.Entities),
	}).Debug("text analyzed")

	return doc, nil
}

// fill copies the annotation into doc, deriving token positions and
// sentence membership from the sentence spans.
func fill(doc *sent.Doc, ann *Annotation, withSentiment bool) error {
	n := len(ann.Tokens)

	doc.Tokens = make([]sent.Token, n)
	copy(doc.Tokens, ann.Tokens)

	doc.Sentences = append(doc.Sentences, ann.Sentences...)
	if len(doc.Sentences) == 0 && n > 0 {
		doc.Sentences = []sent.Span{{Start: 0, End: n}}
	}

	doc.NounChunks = append(doc.NounChunks, ann.NounChunks...)
	sort.SliceStable(doc.NounChunks, func(i, j int) bool {
		return doc.NounChunks[i].Start < doc.NounChunks[j].Start
	})

	doc.Entities = append(doc.Entities, ann.Entities...)
	sort.SliceStable(doc.Entities, func(i, j int) bool {
		return doc.Entities[i].Start < doc.Entities[j].Start
	})

	for i := range doc.Tokens {
		doc.Tokens[i].Id = i
	}

	for sid, s := range doc.Sentences {
		if s.Start < 0 || s.End > n || s.Start >= s.End {
			return fmt.Errorf("%w: sentence %d [%d,%d)", ErrInvalidAnnotation, sid, s.Start, s.End)
		}
		for i := s.Start; i < s.End; i++ {
			doc.Tokens[i].SentenceId = sid
			doc.Tokens[i].Index = i - s.Start
		}
	}

	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAnnotation, err)
	}

	if withSentiment {
		s := sent.Sentiment{}
		if ann.Polarity != nil {
			s.Polarity = clamp(*ann.Polarity, -1, 1)
		}
		if ann.Subjectivity != nil {
			s.Subjectivity = clamp(*ann.Subjectivity, 0, 1)
		}
		doc.Sentiment = &s
	}

	return nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
