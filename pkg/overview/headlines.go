package overview

import (
	"context"
	"fmt"
	"strings"

	"github.com/umoja-labs/africa-pulse/internal/domain"
	"github.com/umoja-labs/africa-pulse/internal/logger"
)

const (
	noTitleText = "Без заголовка"

	titleLimit      = 100
	summaryItems    = 3
	summaryMsgLimit = 200
	fullTextItems   = 10

	summarySeparator = " • "
)

// HeadlineSearcher re-fetches the headline list for one country. Satisfied
// by *listing.Fetcher.
type HeadlineSearcher interface {
	SearchHeadlines(ctx context.Context, countryName string) []domain.NewsItem
}

// HeadlineGenerator derives the overview deterministically from headline
// texts, with no model call. Headlines are fetched fresh through the search
// query rather than taken off the listing record.
type HeadlineGenerator struct {
	searcher HeadlineSearcher
	log      logger.Logger
}

// NewHeadlineGenerator builds the deterministic generator.
func NewHeadlineGenerator(searcher HeadlineSearcher, log logger.Logger) *HeadlineGenerator {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &HeadlineGenerator{searcher: searcher, log: log}
}

// Generate searches for the country's headlines and derives title, summary
// and full text from them.
func (g *HeadlineGenerator) Generate(ctx context.Context, country domain.Country) domain.Overview {
	items := g.searcher.SearchHeadlines(ctx, country.Name)
	if len(items) == 0 {
		g.log.InfoObj("no headlines found for country", "overview_headlines_empty", map[string]any{
			"country": country.Name,
		})
		return noNewsOverview(country.Name)
	}
	return Derive(country.Name, items)
}

// Derive builds an overview from an already-fetched headline list.
func Derive(name string, items []domain.NewsItem) domain.Overview {
	if len(items) == 0 {
		return noNewsOverview(name)
	}

	return domain.Overview{
		Title:    deriveTitle(items),
		Summary:  deriveSummary(items),
		FullText: deriveFullText(items),
	}
}

func deriveTitle(items []domain.NewsItem) string {
	msg := stripMarkup(items[0].Msg)
	if msg == "" {
		return noTitleText
	}
	return truncate(msg, titleLimit)
}

func deriveSummary(items []domain.NewsItem) string {
	if len(items) > summaryItems {
		items = items[:summaryItems]
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if msg := stripMarkup(item.Msg); msg != "" {
			parts = append(parts, truncate(msg, summaryMsgLimit))
		}
	}
	if len(parts) == 0 {
		return updatingText
	}
	return strings.Join(parts, summarySeparator)
}

func deriveFullText(items []domain.NewsItem) string {
	if len(items) > fullTextItems {
		items = items[:fullTextItems]
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		msg := stripMarkup(item.Msg)
		if msg == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. [%s] %s", i+1, item.Source, msg))
	}
	if len(lines) == 0 {
		return updatingText
	}
	return strings.Join(lines, "\n\n")
}
