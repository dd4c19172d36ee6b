package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/revelaction/lemmix/analyze"
	"github.com/revelaction/lemmix/capability/lexicon"
	"github.com/revelaction/lemmix/capability/prose"
	"github.com/revelaction/lemmix/capability/spacy"
	"github.com/revelaction/lemmix/config"
	"github.com/revelaction/lemmix/fetch"
	"github.com/revelaction/lemmix/render"
)

// env holds what the commands share: the streams, the loaded configuration
// and the logger.
type env struct {
	ui     UI
	cfg    *config.Config
	logger *logrus.Logger

	// logFile is set when logging goes to a rotated file
	logFile io.Closer
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file (default ./lemmix.yaml)"},
		&cli.StringFlag{Name: "capability", Usage: "language capability: lexicon, prose or spacy"},
		&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "directory of the written files"},
		&cli.IntFlag{Name: "cap", Usage: "maximum number of review rows scored"},
		&cli.Float64Flag{Name: "threshold", Usage: "polarity below which a review is negative"},
		&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error"},
	}
}

// setup loads the configuration, applies the flag overrides and creates the
// logger.
func (e *env) setup(cCtx *cli.Context) error {
	cfg, err := config.Load(cCtx.String("config"))
	if err != nil {
		return err
	}

	if cCtx.IsSet("capability") {
		cfg.Capability = cCtx.String("capability")
	}
	if cCtx.IsSet("output-dir") {
		cfg.OutputDir = cCtx.String("output-dir")
	}
	if cCtx.IsSet("cap") {
		cfg.CapRows = cCtx.Int("cap")
	}
	if cCtx.IsSet("threshold") {
		cfg.NegativityThreshold = cCtx.Float64("threshold")
	}
	if cCtx.IsSet("log-level") {
		cfg.Log.Level = cCtx.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg.Log, e.ui.Err)
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.logger = logger
	e.logFile = closer
	return nil
}

func (e *env) close(*cli.Context) error {
	if e.logFile != nil {
		return e.logFile.Close()
	}
	return nil
}

// newLogger returns a text logger writing to w, or to a rotated file when
// lc.File is set.
func newLogger(lc config.LogConfig, w io.Writer) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(w)

	if lc.File == "" {
		return logger, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("could not create log dir: %w", err)
	}

	fileLogger := &lumberjack.Logger{
		Filename:   lc.File,
		MaxSize:    lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
	}
	logger.SetOutput(fileLogger)

	return logger, fileLogger, nil
}

func newCapability(cfg *config.Config, logger *logrus.Logger) (analyze.Capability, error) {
	switch cfg.Capability {
	case lexicon.Name:
		return lexicon.New()
	case prose.Name:
		return prose.New()
	case spacy.Name:
		c := spacy.New(&spacy.Config{BaseURL: cfg.Spacy.BaseURL, Timeout: cfg.Spacy.Timeout}, spacy.WithLogger(logger))
		return c, nil
	}

	return nil, fmt.Errorf("unknown capability %q", cfg.Capability)
}

// pinger is a capability backed by a service that can be health checked.
type pinger interface {
	Ping(ctx context.Context) error
}

// analyzer creates the configured capability. A service capability that is
// not reachable is reported but still returned: the analysis errors carry
// the failure.
func (e *env) analyzer(ctx context.Context) (*analyze.Analyzer, error) {
	c, err := newCapability(e.cfg, e.logger)
	if err != nil {
		return nil, err
	}

	if p, ok := c.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			e.logger.WithError(err).WithField("capability", c.Name()).Warn("capability service is not reachable")
		}
	}

	return analyze.New(c, analyze.WithLogger(e.logger)), nil
}

// fileRenderer returns a renderer writing to the output dir, which is
// created if needed.
func (e *env) fileRenderer(png bool) (*render.FileRenderer, error) {
	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}

	opts := []render.Option{render.WithLogger(e.logger)}
	if png {
		opts = append(opts, render.WithRasterizer(render.OksvgRasterizer{}))
	}

	return render.NewFileRenderer(e.cfg.OutputDir, opts...), nil
}

func (e *env) fetcher() *fetch.Fetcher {
	return fetch.New(fetch.Config{
		Timeout:   e.cfg.Fetch.Timeout,
		UserAgent: e.cfg.Fetch.UserAgent,
	}, fetch.WithLogger(e.logger))
}
