// Package client talks to the remote form store over HTTP. It deliberately
// never retries: persistence failures surface to the caller, who keeps the
// in-memory editor state and decides when to try again.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// ErrNotFound is returned when the store has no form for the given id or
// slug.
var ErrNotFound = errors.New("client: form not found")

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithLogger injects the logger used for request outcome logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.log = logger
		}
	}
}

// Client is a thin wrapper over the form store's HTTP API.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
}

// New constructs a client against the store's base URL.
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: base url %q must be absolute", baseURL)
	}

	c := &Client{
		base: parsed,
		http: &http.Client{Timeout: 15 * time.Second},
		log:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Load fetches a form by id or slug.
func (c *Client) Load(ctx context.Context, idOrSlug string) (schema.Form, error) {
	var form schema.Form
	if strings.TrimSpace(idOrSlug) == "" {
		return form, fmt.Errorf("client: load: id or slug is required")
	}

	body, err := c.do(ctx, http.MethodGet, "/forms/"+url.PathEscape(idOrSlug), nil)
	if err != nil {
		return form, fmt.Errorf("client: load form %q: %w", idOrSlug, err)
	}

	form, err = schema.DecodeForm(body)
	if err != nil {
		return form, fmt.Errorf("client: load form %q: decode: %w", idOrSlug, err)
	}
	return form, nil
}

// Create persists a new form and returns it with the identity the store
// assigned.
func (c *Client) Create(ctx context.Context, form schema.Form) (schema.Form, error) {
	payload, err := schema.EncodeForm(form)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: create form: encode: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/forms", payload)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: create form: %w", err)
	}

	saved, err := schema.DecodeForm(body)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: create form: decode: %w", err)
	}
	return saved, nil
}

// Update replaces a persisted form. Save semantics are full-replace: the
// submitted field list supersedes whatever the store holds.
func (c *Client) Update(ctx context.Context, form schema.Form) (schema.Form, error) {
	if strings.TrimSpace(form.ID) == "" {
		return schema.Form{}, fmt.Errorf("client: update form: id is required")
	}

	payload, err := schema.EncodeForm(form)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: update form %q: encode: %w", form.ID, err)
	}

	body, err := c.do(ctx, http.MethodPut, "/forms/"+url.PathEscape(form.ID), payload)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: update form %q: %w", form.ID, err)
	}

	saved, err := schema.DecodeForm(body)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: update form %q: decode: %w", form.ID, err)
	}
	return saved, nil
}

// Receipt identifies an accepted submission.
type Receipt struct {
	ID string `json:"id"`
}

// Submit posts a filled payload against a form.
func (c *Client) Submit(ctx context.Context, idOrSlug string, answers map[string]any) (Receipt, error) {
	var receipt Receipt
	if strings.TrimSpace(idOrSlug) == "" {
		return receipt, fmt.Errorf("client: submit: id or slug is required")
	}

	payload, err := json.Marshal(answers)
	if err != nil {
		return receipt, fmt.Errorf("client: submit to %q: encode: %w", idOrSlug, err)
	}

	body, err := c.do(ctx, http.MethodPost, "/forms/"+url.PathEscape(idOrSlug)+"/submissions", payload)
	if err != nil {
		return receipt, fmt.Errorf("client: submit to %q: %w", idOrSlug, err)
	}

	if len(body) > 0 {
		if err := json.Unmarshal(body, &receipt); err != nil {
			return receipt, fmt.Errorf("client: submit to %q: decode: %w", idOrSlug, err)
		}
	}
	return receipt, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	target := *c.base
	target.Path = strings.TrimRight(target.Path, "/") + path

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("request finished",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case res.StatusCode < 200 || res.StatusCode > 299:
		return nil, fmt.Errorf("unexpected status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
