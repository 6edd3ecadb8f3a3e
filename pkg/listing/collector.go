package listing

import (
	"context"

	"github.com/umoja-labs/africa-pulse/internal/domain"
	"github.com/umoja-labs/africa-pulse/internal/logger"
)

// Pagination bounds for the monitoring feed: the unnumbered first page plus
// pages 2 through maxPageIndex.
const (
	firstNumberedPage = 2

	// DefaultMaxPage is the highest page index the collector will request.
	DefaultMaxPage = 10
)

// Collector drives the Fetcher across the bounded page range and accumulates
// every country record it can get. A page that fails mid-run never discards
// what was already gathered.
type Collector struct {
	fetcher  *Fetcher
	maxPage  int
	pageSize int
	log      logger.Logger
}

// NewCollector builds a Collector over the given fetcher. Non-positive
// bounds fall back to the feed defaults.
func NewCollector(fetcher *Fetcher, maxPage, pageSize int, log logger.Logger) *Collector {
	if maxPage <= 0 {
		maxPage = DefaultMaxPage
	}
	if pageSize <= 0 {
		pageSize = FullPageSize
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Collector{
		fetcher:  fetcher,
		maxPage:  maxPage,
		pageSize: pageSize,
		log:      log,
	}
}

// Collect fetches the first page (no page index) and then pages 2..maxPage,
// stopping at the first page that is unavailable, empty, or shorter than a
// full page. The short page's content is still appended before stopping.
func (c *Collector) Collect(ctx context.Context) []domain.Country {
	var all []domain.Country

	c.log.InfoObj("requesting first listing page", "listing_page_request", map[string]any{
		"page": "none",
	})
	if data, ok := c.fetcher.FetchPage(ctx, nil); ok {
		all = append(all, data...)
		c.log.InfoObj("first page fetched", "listing_page_ok", map[string]any{
			"records": len(data),
		})
	} else {
		c.log.WarnObj("first listing page unavailable", "listing_page_missing", nil)
	}

	for page := firstNumberedPage; page <= c.maxPage; page++ {
		c.log.InfoObj("requesting listing page", "listing_page_request", map[string]any{
			"page": page,
		})

		data, ok := c.fetcher.FetchPage(ctx, &page)
		if !ok {
			c.log.InfoObj("listing page unavailable, stopping pagination", "listing_page_missing", map[string]any{
				"page": page,
			})
			break
		}
		if len(data) == 0 {
			c.log.InfoObj("listing page empty, stopping pagination", "listing_page_empty", map[string]any{
				"page": page,
			})
			break
		}

		all = append(all, data...)
		c.log.InfoObj("listing page fetched", "listing_page_ok", map[string]any{
			"page":    page,
			"records": len(data),
		})

		if len(data) < c.pageSize {
			c.log.InfoObj("short page reached, stopping pagination", "listing_last_page", map[string]any{
				"page":    page,
				"records": len(data),
			})
			break
		}
	}

	c.log.InfoObj("listing collection finished", "listing_done", map[string]any{
		"total": len(all),
	})
	return all
}
