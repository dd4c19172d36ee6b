package render

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/lemmix/sentence"
)

type failingRasterizer struct{}

func (failingRasterizer) Rasterize([]byte) ([]byte, error) {
	return nil, errors.New("no rasterizer")
}

type recordingRasterizer struct {
	got []byte
}

func (r *recordingRasterizer) Rasterize(data []byte) ([]byte, error) {
	r.got = append([]byte(nil), data...)
	return []byte("png"), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestDependencyGraphSVGOnly(t *testing.T) {
	dir := t.TempDir()
	f := NewFileRenderer(dir)

	// left over from a run with rasterization enabled
	require.NoError(t, os.WriteFile(filepath.Join(dir, "graph.png"), []byte("old"), 0o644))

	art, err := f.DependencyGraph(testDoc(), "graph")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "graph.svg"), art.SVG)
	assert.Empty(t, art.PNG)
	assert.NoError(t, art.RasterErr)
	assert.False(t, exists(filepath.Join(dir, "graph.png")))

	data, err := os.ReadFile(art.SVG)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "nsubj")
	assert.Contains(t, string(data), "</svg>")
}

func TestDependencyGraphRasterFailure(t *testing.T) {
	dir := t.TempDir()
	logger, hook := test.NewNullLogger()

	// a png from an earlier run must not survive
	stale := filepath.Join(dir, "graph.png")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	f := NewFileRenderer(dir, WithRasterizer(failingRasterizer{}), WithLogger(logger))
	art, err := f.DependencyGraph(testDoc(), "graph")
	require.NoError(t, err)

	var rerr *RenderError
	require.ErrorAs(t, art.RasterErr, &rerr)
	assert.Equal(t, stale, rerr.Path)
	assert.Empty(t, art.PNG)
	assert.False(t, exists(stale))

	var want bytes.Buffer
	WriteDependencySVG(&want, testDoc())
	got, err := os.ReadFile(art.SVG)
	require.NoError(t, err)
	assert.Equal(t, want.Bytes(), got)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestDependencyGraphRasterReadsWrittenSVG(t *testing.T) {
	dir := t.TempDir()
	rec := &recordingRasterizer{}

	art, err := NewFileRenderer(dir, WithRasterizer(rec)).DependencyGraph(testDoc(), "graph")
	require.NoError(t, err)

	svgBytes, err := os.ReadFile(art.SVG)
	require.NoError(t, err)
	assert.Equal(t, svgBytes, rec.got)

	pngBytes, err := os.ReadFile(art.PNG)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), pngBytes)
}

func TestDependencyGraphUnwritableDir(t *testing.T) {
	f := NewFileRenderer(filepath.Join(t.TempDir(), "missing"))
	_, err := f.DependencyGraph(testDoc(), "graph")
	assert.Error(t, err)
}

func TestOksvgRasterizer(t *testing.T) {
	var buf bytes.Buffer
	WriteDependencySVG(&buf, testDoc())

	data, err := OksvgRasterizer{}.Rasterize(buf.Bytes())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2*offsetX+5*wordDistance, img.Bounds().Dx())
}

func TestDependencyGraphEmptyDoc(t *testing.T) {
	dir := t.TempDir()
	art, err := NewFileRenderer(dir).DependencyGraph(sent.Doc{}, "empty")
	require.NoError(t, err)

	data, err := os.ReadFile(art.SVG)
	require.NoError(t, err)
	assert.Contains(t, string(data), "</svg>")
}

func TestLemmaDump(t *testing.T) {
	doc := testDoc()
	doc.Tokens[4].Lemma = "Paris city"
	doc.Tokens[2].Lemma = ""

	dir := t.TempDir()
	p, err := NewFileRenderer(dir).LemmaDump(doc, "doc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doc_lemma.txt"), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)

	fields := strings.Split(string(data), " ")
	assert.Len(t, fields, len(doc.Tokens))
	assert.Equal(t, "Google build cars in Paris_city .", string(data))
}

func TestEntityHighlights(t *testing.T) {
	text := "Tom & <Jerry> met Google."
	doc := sent.Doc{
		Text: text,
		Tokens: []sent.Token{
			{Id: 0, Idx: 0, Text: "Tom"},
			{Id: 1, Idx: 4, Text: "&"},
			{Id: 2, Idx: 6, Text: "<"},
			{Id: 3, Idx: 7, Text: "Jerry"},
			{Id: 4, Idx: 12, Text: ">"},
			{Id: 5, Idx: 14, Text: "met"},
			{Id: 6, Idx: 18, Text: "Google"},
			{Id: 7, Idx: 24, Text: "."},
		},
		Sentences: []sent.Span{{Start: 0, End: 8}},
		Entities: []sent.Entity{
			{Span: sent.Span{Start: 0, End: 1}, Label: "PERSON"},
			{Span: sent.Span{Start: 6, End: 7}, Label: "WORK_OF_ART"},
		},
	}

	dir := t.TempDir()
	p, err := NewFileRenderer(dir).EntityHighlights(doc, "my_doc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "my_doc.html"), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "<title>My Doc</title>")
	assert.Contains(t, out, "&amp; &lt;Jerry&gt; met ")
	assert.NotContains(t, out, "<Jerry>")
	assert.Contains(t, out, ">PERSON</span></mark>")
	assert.Contains(t, out, ">WORK_OF_ART</span></mark>")
	assert.Contains(t, out, "#aa9cfc")
}
