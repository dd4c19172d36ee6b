package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	sent "github.com/revelaction/lemmix/sentence"
)

const filePerm = 0o644

// RenderError is a failure to produce an optional artifact, f.ex. the PNG
// copy of the dependency diagram. The other artifacts are still written.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Artifacts are the files written by DependencyGraph.
type Artifacts struct {
	SVG string

	// PNG is empty when rasterization is disabled or failed
	PNG string

	// RasterErr is the rasterization failure, if any
	RasterErr error
}

// FileRenderer writes doc artifacts to Dir, named after a file stem.
type FileRenderer struct {
	Dir string

	// Rasterizer converts the dependency diagram to PNG. Nil disables the
	// PNG copy.
	Rasterizer Rasterizer

	logger *logrus.Logger
}

type Option func(*FileRenderer)

func WithLogger(logger *logrus.Logger) Option {
	return func(f *FileRenderer) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func WithRasterizer(r Rasterizer) Option {
	return func(f *FileRenderer) {
		f.Rasterizer = r
	}
}

func NewFileRenderer(dir string, opts ...Option) *FileRenderer {
	f := &FileRenderer{Dir: dir, logger: logrus.New()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FileRenderer) path(name string) string {
	return filepath.Join(f.Dir, name)
}

// DependencyGraph writes the dependency diagram of doc to <stem>.svg and, if
// a rasterizer is set, a PNG copy to <stem>.png. The PNG is made from the
// SVG bytes read back from disk. Its failure is logged and recorded in
// Artifacts.RasterErr; the SVG is kept and no PNG is left behind.
func (f *FileRenderer) DependencyGraph(doc sent.Doc, stem string) (Artifacts, error) {
	var buf bytes.Buffer
	WriteDependencySVG(&buf, doc)

	svgPath := f.path(stem + ".svg")
	if err := os.WriteFile(svgPath, buf.Bytes(), filePerm); err != nil {
		return Artifacts{}, err
	}

	art := Artifacts{SVG: svgPath}
	if f.Rasterizer == nil {
		f.removeStale(f.path(stem + ".png"))
		return art, nil
	}

	pngPath := f.path(stem + ".png")
	if err := f.rasterize(svgPath, pngPath); err != nil {
		rerr := &RenderError{Path: pngPath, Err: err}
		f.logger.WithError(err).WithField("path", pngPath).Warn("png conversion failed, keeping svg only")
		art.RasterErr = rerr
		return art, nil
	}

	art.PNG = pngPath
	return art, nil
}

func (f *FileRenderer) rasterize(svgPath, pngPath string) error {
	data, err := os.ReadFile(svgPath)
	if err != nil {
		f.removeStale(pngPath)
		return err
	}

	img, err := f.Rasterizer.Rasterize(data)
	if err != nil {
		f.removeStale(pngPath)
		return err
	}

	if err := os.WriteFile(pngPath, img, filePerm); err != nil {
		f.removeStale(pngPath)
		return err
	}

	return nil
}

func (f *FileRenderer) removeStale(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		f.logger.WithError(err).WithField("path", path).Debug("could not remove stale png")
	}
}

// EntityHighlights writes the entity highlighted HTML page of doc to
// <stem>.html.
func (f *FileRenderer) EntityHighlights(doc sent.Doc, stem string) (string, error) {
	var buf bytes.Buffer
	if err := WriteEntityHTML(&buf, doc, stem); err != nil {
		return "", err
	}

	p := f.path(stem + ".html")
	return p, os.WriteFile(p, buf.Bytes(), filePerm)
}

// LemmaDump writes the space joined lemmas of doc to <stem>_lemma.txt.
func (f *FileRenderer) LemmaDump(doc sent.Doc, stem string) (string, error) {
	p := f.path(stem + "_lemma.txt")
	return p, os.WriteFile(p, []byte(LemmaText(doc)), filePerm)
}
