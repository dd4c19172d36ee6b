// Package spacy is a language capability served by an external spaCy
// service over HTTP.
package spacy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/revelaction/lemmix/analyze"
)

const Name = "spacy"

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:8000/api",
		Timeout: 30 * time.Second,
	}
}

// APIError is returned when the service answers with an error status.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spacy service error (status code: %d): %s - %s", e.StatusCode, e.Message, e.Detail)
}

type request struct {
	Text      string `json:"text"`
	Sentiment bool   `json:"sentiment"`
}

type Client struct {
	http   *resty.Client
	logger *logrus.Logger
}

type Option func(*Client)

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(cfg *Config, opts ...Option) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/"))
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "lemmix/1.0")

	c := &Client{http: client, logger: logrus.New()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string {
	return Name
}

// Annotate posts text to the service and returns its annotation. Transport
// failures are reported as analyze.ErrUnavailable.
func (c *Client) Annotate(ctx context.Context, text string, withSentiment bool) (*analyze.Annotation, error) {
	var ann analyze.Annotation
	var apiErr APIError

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(request{Text: text, Sentiment: withSentiment}).
		SetResult(&ann).
		SetError(&apiErr).
		Post("/analyze")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", analyze.ErrUnavailable, err)
	}

	c.logger.WithFields(logrus.Fields{
		"status":   res.StatusCode(),
		"duration": res.Time(),
	}).Debug("spacy analyze")

	if res.IsError() {
		apiErr.StatusCode = res.StatusCode()
		apiErr.Message = res.Status()
		return nil, &apiErr
	}

	return &ann, nil
}

// Ping checks that the service is up.
func (c *Client) Ping(ctx context.Context) error {
	var apiErr APIError

	res, err := c.http.R().SetContext(ctx).SetError(&apiErr).Get("/health")
	if err != nil {
		return fmt.Errorf("%w: %w", analyze.ErrUnavailable, err)
	}

	if res.IsError() {
		apiErr.StatusCode = res.StatusCode()
		apiErr.Message = res.Status()
		return &apiErr
	}

	return nil
}
