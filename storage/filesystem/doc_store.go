package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	sent "github.com/revelaction/lemmix/sentence"
	"github.com/revelaction/lemmix/storage"
)

const ext = ".json"

// DocStore keeps analyzed docs as one JSON file per doc in a directory.
// The Id of a doc is its position in the sorted file list, its Title the
// file name.
type DocStore struct {
	docDir string

	// In-memory cache, metadata only until loaded
	docs   []sent.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. The directory must exist.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	s := &DocStore{docDir: docDir}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ext {
			continue
		}
		s.docs = append(s.docs, sent.Doc{Id: len(s.docs), Title: file.Name()})
		s.loaded = append(s.loaded, false)
	}

	return s, nil
}

// load reads the doc with position id from disk once.
func (s *DocStore) load(id int) error {
	if s.loaded[id] {
		return nil
	}

	meta := s.docs[id]
	doc, err := ReadDoc(filepath.Join(s.docDir, meta.Title))
	if err != nil {
		return err
	}

	doc.Id = meta.Id
	doc.Title = meta.Title
	s.docs[id] = doc
	s.loaded[id] = true
	return nil
}

// Preload loads into memory the docs having at least one of labels, or all
// docs if labels is empty. cb is called before each file is read.
func (s *DocStore) Preload(labels []string, cb func(current, total int, name string)) error {
	total := len(s.docs)
	for i := range s.docs {
		if cb != nil {
			cb(i+1, total, s.docs[i].Title)
		}

		if err := s.load(i); err != nil {
			return err
		}
	}

	if len(labels) == 0 {
		return nil
	}

	// unload the docs not matching, keeping their metadata
	for i, doc := range s.docs {
		if !hasAnyLabel(doc, labels) {
			s.docs[i] = sent.Doc{Id: doc.Id, Title: doc.Title, Labels: doc.Labels}
			s.loaded[i] = false
		}
	}

	return nil
}

func hasAnyLabel(doc sent.Doc, labels []string) bool {
	for _, l := range labels {
		if slices.Contains(doc.Labels, l) {
			return true
		}
	}
	return false
}

// List reads every doc for its labels, but returns metadata only.
func (s *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	out := []sent.Doc{}
	for i := range s.docs {
		if err := s.load(i); err != nil {
			return nil, err
		}

		doc := s.docs[i]
		if labelMatch != "" && !slices.ContainsFunc(doc.Labels, func(l string) bool {
			return strings.Contains(l, labelMatch)
		}) {
			continue
		}

		out = append(out, sent.Doc{Id: doc.Id, Title: doc.Title, Labels: doc.Labels})
	}

	return out, nil
}

func (s *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(s.docs) {
		return sent.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}

	if err := s.load(id); err != nil {
		return sent.Doc{}, err
	}

	return s.docs[id], nil
}

func (s *DocStore) Labels(pattern string) ([]string, error) {
	seen := map[string]bool{}
	for i := range s.docs {
		if err := s.load(i); err != nil {
			return nil, err
		}
		for _, l := range s.docs[i].Labels {
			if pattern == "" || strings.Contains(l, pattern) {
				seen[l] = true
			}
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels, nil
}

// Write stores doc as <Title>.json, or doc_<n>.json when it has no title. An
// existing file of the same name is replaced.
func (s *DocStore) Write(doc sent.Doc) (int, error) {
	name := doc.Title
	if name == "" {
		name = fmt.Sprintf("doc_%d", len(s.docs))
	}
	if filepath.Ext(name) != ext {
		name += ext
	}
	name = filepath.Base(name)

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("JSON encoding error: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.docDir, name), content, 0o644); err != nil {
		return 0, fmt.Errorf("IO error: %w", err)
	}

	id := slices.IndexFunc(s.docs, func(d sent.Doc) bool { return d.Title == name })
	if id < 0 {
		id = len(s.docs)
		s.docs = append(s.docs, sent.Doc{})
		s.loaded = append(s.loaded, false)
	}

	doc.Id = id
	doc.Title = name
	s.docs[id] = doc
	s.loaded[id] = true

	return id, nil
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
