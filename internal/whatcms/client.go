package whatcms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/khanhnv2901/cmsaudit/internal/httpclient"
	apperrors "github.com/khanhnv2901/cmsaudit/internal/shared/errors"
	"go.uber.org/zap"
)

// DefaultEndpoint is the public WhatCMS lookup endpoint.
const DefaultEndpoint = "https://whatcms.org/APIEndpoint"

// InvalidAPIKeyMessage is both the marker searched for in the API's msg field
// and the single finding reported when it is found.
const InvalidAPIKeyMessage = "Invalid API key"

// ErrInvalidAPIKey is returned by Identify when the service rejects the key.
var ErrInvalidAPIKey = errors.New("invalid API key")

type apiResponse struct {
	Info
	Msg string `json:"msg"`
}

// Client calls the fingerprinting service.
type Client struct {
	endpoint string
	apiKey   string
	fetcher  httpclient.Fetcher
	logger   *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the service URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Client for the given API key.
func NewClient(apiKey string, fetcher httpclient.Fetcher, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		fetcher:  fetcher,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Identify fingerprints target. It returns ErrInvalidAPIKey when the service
// rejects the key and an error wrapping ErrAPIRequestFailed for any other
// failure.
func (c *Client) Identify(ctx context.Context, target string) (Info, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return Info{}, fmt.Errorf("%w: invalid endpoint: %v", apperrors.ErrAPIRequestFailed, err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("url", target)
	u.RawQuery = q.Encode()

	// the key is part of the query string, so only the endpoint is logged
	c.logger.Debugw("identifying CMS", "endpoint", c.endpoint, "target", target)

	resp, err := c.fetcher.Fetch(ctx, u.String())
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", apperrors.ErrAPIRequestFailed, redact(err, c.apiKey))
	}
	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("%w: status %d", apperrors.ErrAPIRequestFailed, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return Info{}, fmt.Errorf("%w: decode response: %v", apperrors.ErrAPIRequestFailed, err)
	}

	if strings.Contains(payload.Msg, InvalidAPIKeyMessage) {
		return Info{}, ErrInvalidAPIKey
	}

	c.logger.Debugw("CMS identified",
		"name", payload.CMSName(),
		"version", payload.CMSVersion(),
		"confidence", float64(payload.Confidence),
	)
	return payload.Info, nil
}

// redact strips the API key from transport errors, which embed the request URL.
func redact(err error, apiKey string) string {
	msg := err.Error()
	if apiKey == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(apiKey), "REDACTED")
	return strings.ReplaceAll(msg, apiKey, "REDACTED")
}
