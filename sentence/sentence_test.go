package sentence

import (
	"errors"
	"testing"
)

func testDoc() Doc {
	return Doc{
		Text: "Cats sleep. Dogs bark!",
		Tokens: []Token{
			{Id: 0, Head: 1, Idx: 0, Text: "Cats", Lemma: "cat"},
			{Id: 1, Head: 1, Idx: 5, Text: "sleep", Lemma: "sleep"},
			{Id: 2, Head: 1, Idx: 10, Text: ".", Lemma: "."},
			{Id: 3, Head: 4, Idx: 12, Text: "Dogs", Lemma: "dog"},
			{Id: 4, Head: 4, Idx: 17, Text: "bark", Lemma: "bark"},
			{Id: 5, Head: 4, Idx: 21, Text: "!", Lemma: "!"},
		},
		Sentences:  []Span{{0, 3}, {3, 6}},
		NounChunks: []Span{{0, 1}, {3, 4}},
		Entities:   []Entity{{Span: Span{3, 4}, Label: "ANIMAL"}},
	}
}

func TestValidate(t *testing.T) {
	if err := testDoc().Validate(); err != nil {
		t.Fatalf("expected valid doc, got %v", err)
	}

	if err := (Doc{}).Validate(); err != nil {
		t.Fatalf("expected empty doc to be valid, got %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Doc)
		want   error
	}{
		{"gap", func(d *Doc) { d.Sentences = []Span{{0, 2}, {3, 6}} }, ErrSentenceGap},
		{"overlap", func(d *Doc) { d.Sentences = []Span{{0, 4}, {3, 6}} }, ErrSentenceGap},
		{"short", func(d *Doc) { d.Sentences = []Span{{0, 3}} }, ErrSentenceGap},
		{"entity", func(d *Doc) { d.Entities[0].End = 9 }, ErrSpanRange},
		{"chunk", func(d *Doc) { d.NounChunks[1] = Span{4, 4} }, ErrSpanRange},
		{"head", func(d *Doc) { d.Tokens[2].Head = 6 }, ErrHeadRange},
		{"id", func(d *Doc) { d.Tokens[2].Id = 7 }, ErrTokenPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDoc()
			tt.mutate(&d)
			if err := d.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSpanText(t *testing.T) {
	d := testDoc()
	if got := d.SpanText(d.Sentences[1]); got != "Dogs bark!" {
		t.Errorf("expected %q, got %q", "Dogs bark!", got)
	}

	d.Text = ""
	if got := d.SpanText(Span{0, 2}); got != "Cats sleep" {
		t.Errorf("expected rebuilt text %q, got %q", "Cats sleep", got)
	}
}

func TestSentenceTokens(t *testing.T) {
	sents := testDoc().SentenceTokens()
	if len(sents) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sents))
	}
	if sents[1][0].Text != "Dogs" {
		t.Errorf("expected second sentence to start with Dogs, got %q", sents[1][0].Text)
	}
}
