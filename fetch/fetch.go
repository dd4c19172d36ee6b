// Package fetch downloads web pages and extracts their readable text.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// elements without readable content
const stripSelector = "script, style, aside"

var reBreaks = regexp.MustCompile(`[\n\t]+`)

// FetchError is a network or HTTP failure. StatusCode is zero for transport
// errors.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Config struct {
	Timeout   time.Duration
	UserAgent string
}

func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		UserAgent: "lemmix/1.0",
	}
}

type Fetcher struct {
	http   *resty.Client
	logger *logrus.Logger
}

type Option func(*Fetcher)

func WithLogger(logger *logrus.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func New(cfg Config, opts ...Option) *Fetcher {
	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	f := &Fetcher{http: client, logger: logrus.New()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// PageText fetches url and returns its text without scripts, styles and
// asides. Runs of newlines and tabs become a single space.
func (f *Fetcher) PageText(ctx context.Context, url string) (string, error) {
	res, err := f.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	f.logger.WithFields(logrus.Fields{
		"url":    url,
		"status": res.StatusCode(),
		"bytes":  len(res.Body()),
	}).Debug("page fetched")

	if res.IsError() {
		return "", &FetchError{URL: url, StatusCode: res.StatusCode(), Err: fmt.Errorf("%s", res.Status())}
	}

	text, err := Text(res.Body())
	if err != nil {
		return "", &FetchError{URL: url, StatusCode: res.StatusCode(), Err: err}
	}

	return text, nil
}

// Text extracts the readable text of an HTML page.
func Text(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find(stripSelector).Remove()

	parts := reBreaks.Split(doc.Text(), -1)
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}
