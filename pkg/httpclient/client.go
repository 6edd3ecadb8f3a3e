package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response exposes the parts of an HTTP response the monitor cares about.
type Response interface {
	StatusCode() int
	Body() []byte
}

// Client is a minimal HTTP client for the listing and inference APIs.
type Client interface {
	Get(ctx context.Context, url string, headers, query map[string]string) (Response, error)
	Post(ctx context.Context, url string, headers map[string]string, body any) (Response, error)
	// Close releases idle connections held by the client.
	Close()
}

type restyClient struct {
	rc *resty.Client
}

// NewRestyClient returns a resty-backed Client with the given per-request timeout.
func NewRestyClient(timeout time.Duration) Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0)
	return &restyClient{rc: rc}
}

func (c *restyClient) Get(ctx context.Context, url string, headers, query map[string]string) (Response, error) {
	req := c.rc.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return restyResponse{resp: resp}, nil
}

func (c *restyClient) Post(ctx context.Context, url string, headers map[string]string, body any) (Response, error) {
	req := c.rc.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}

	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}
	return restyResponse{resp: resp}, nil
}

func (c *restyClient) Close() {
	c.rc.GetClient().CloseIdleConnections()
}

type restyResponse struct {
	resp *resty.Response
}

func (r restyResponse) StatusCode() int { return r.resp.StatusCode() }
func (r restyResponse) Body() []byte    { return r.resp.Body() }
