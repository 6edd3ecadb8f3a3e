package publishers

import (
	"context"
	"fmt"
	"time"

	"github.com/umoja-labs/africa-pulse/pkg/httpclient"
)

// httpPublisher posts run events to a generic HTTP sink.
type httpPublisher struct {
	id      string
	url     string
	method  string
	headers map[string]string
	client  httpclient.Client
	log     Logger
}

// newHTTPPublisher builds an HTTP publisher from config. Only POST is
// supported; the method field exists for forward compatibility.
func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}
	if cfg.HTTP.Method != "POST" {
		return nil, fmt.Errorf("http method %q not supported for publisher %q", cfg.HTTP.Method, cfg.ID)
	}

	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	return &httpPublisher{
		id:      cfg.ID,
		url:     cfg.HTTP.URL,
		method:  cfg.HTTP.Method,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyClient(timeout),
		log:     ensureLogger(log),
	}, nil
}

func (p *httpPublisher) ID() string   { return p.id }
func (p *httpPublisher) Type() string { return TypeHTTP }

// Publish posts the run event as JSON to the configured URL.
func (p *httpPublisher) Publish(ctx context.Context, evt Event) error {
	resp, err := p.client.Post(ctx, p.url, p.headers, evt)
	if err != nil {
		return fmt.Errorf("post run event: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return fmt.Errorf("http sink returned status %d", resp.StatusCode())
	}

	p.log.DebugObj("http publisher delivered run event", "publisher_http_delivery", map[string]any{
		"url":    p.url,
		"status": resp.StatusCode(),
	})
	return nil
}
