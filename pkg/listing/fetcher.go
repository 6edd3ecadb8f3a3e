package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/umoja-labs/africa-pulse/internal/domain"
	"github.com/umoja-labs/africa-pulse/internal/logger"
	"github.com/umoja-labs/africa-pulse/pkg/httpclient"
)

const (
	// Fixed query parameters for the African monitoring feed.
	pageParam = "main"
	groupID   = "104"

	// FullPageSize is how many records a complete listing page carries.
	FullPageSize = 10

	// DefaultRetries is the per-page retry budget.
	DefaultRetries = 3

	defaultRetryDelay = 2 * time.Second
)

// Fetcher retrieves listing pages and headline searches from the remote API.
// Exhausted retries surface as an absent result, not an error: callers branch
// on availability and never need failure detail.
type Fetcher struct {
	client     httpclient.Client
	apiURL     string
	retries    int
	retryDelay time.Duration
	log        logger.Logger
}

// NewFetcher builds a Fetcher. A nil logger is replaced with a no-op one and
// a non-positive retry count falls back to DefaultRetries.
func NewFetcher(client httpclient.Client, apiURL string, retries int, log logger.Logger) *Fetcher {
	if retries <= 0 {
		retries = DefaultRetries
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Fetcher{
		client:     client,
		apiURL:     apiURL,
		retries:    retries,
		retryDelay: defaultRetryDelay,
		log:        log,
	}
}

// FetchPage retrieves one listing page. A nil page requests the first page
// (the API omits the n parameter there). The second return value is false
// when the page stayed unavailable through the whole retry budget.
func (f *Fetcher) FetchPage(ctx context.Context, page *int) ([]domain.Country, bool) {
	query := map[string]string{
		"page": pageParam,
		"gid":  groupID,
	}
	if page != nil {
		query["n"] = strconv.Itoa(*page)
	}

	return f.fetchArray(ctx, query)
}

// SearchHeadlines re-fetches headlines for a single country via the search
// query. Any failure that survives the retry budget yields an empty list.
func (f *Fetcher) SearchHeadlines(ctx context.Context, countryName string) []domain.NewsItem {
	records, ok := f.fetchArray(ctx, map[string]string{"q": countryName})
	if !ok || len(records) == 0 {
		return nil
	}
	return records[0].Headlines
}

// fetchArray runs the shared retry loop: success means HTTP 200 with a body
// that decodes as a JSON array. Everything else is retryable, with a fixed
// delay between attempts and no delay after the last one.
func (f *Fetcher) fetchArray(ctx context.Context, query map[string]string) ([]domain.Country, bool) {
	for attempt := 1; attempt <= f.retries; attempt++ {
		records, err := f.fetchOnce(ctx, query)
		if err == nil {
			return records, true
		}

		f.log.WarnObj("listing request failed", "listing_fetch_retry", map[string]any{
			"attempt": attempt,
			"budget":  f.retries,
			"query":   query,
			"error":   err.Error(),
		})

		if attempt < f.retries {
			select {
			case <-ctx.Done():
				return nil, false
			case <-time.After(f.retryDelay):
			}
		}
	}
	return nil, false
}

func (f *Fetcher) fetchOnce(ctx context.Context, query map[string]string) ([]domain.Country, error) {
	resp, err := f.client.Get(ctx, f.apiURL, nil, query)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode(), body: resp.Body()}
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 || body[0] != '[' {
		return nil, fmt.Errorf("listing body is not a JSON array: %s", responseSnippet(body))
	}

	var records []domain.Country
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	return records, nil
}
