package render

import (
	"bytes"
	"encoding/json"
	"testing"

	sent "github.com/revelaction/lemmix/sentence"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(sent.Doc{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc sent.Doc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(doc.Tokens) != 0 {
		t.Fatalf("expected 0 tokens, got %d", len(doc.Tokens))
	}
}

func TestJSONRendererRenderDoc(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(testDoc()); err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc sent.Doc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(doc.Tokens) != 6 {
		t.Fatalf("expected 6 tokens, got %d", len(doc.Tokens))
	}

	if doc.Tokens[1].Lemma != "build" {
		t.Errorf("expected lemma build, got %q", doc.Tokens[1].Lemma)
	}

	if len(doc.Entities) != 2 || doc.Entities[1].Label != "GPE" {
		t.Errorf("unexpected entities %+v", doc.Entities)
	}

	if doc.Sentiment != nil {
		t.Errorf("expected no sentiment")
	}

	// field names of the doc export format
	for _, key := range []string{`"sent"`, `"idx"`, `"lemma"`, `"noun_chunks"`} {
		if !bytes.Contains(buf.Bytes(), []byte(key)) {
			t.Errorf("expected key %s in output", key)
		}
	}
}
