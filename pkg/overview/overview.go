// Package overview turns a country's headline list into a short narrative:
// either by asking a chat-completion model or by deriving it directly from
// the headline texts. Both paths degrade to fixed placeholder text instead of
// returning errors; a country always gets an overview.
package overview

import (
	"context"

	"github.com/umoja-labs/africa-pulse/internal/domain"
)

const (
	updatingText = "Информация обновляется..."

	noNewsSuffix   = ": Нет новостей"
	updatingSuffix = ": Информация обновляется"
)

// Generator produces an overview for one country. Implementations never
// return an error; failures collapse into placeholder overviews.
type Generator interface {
	Generate(ctx context.Context, country domain.Country) domain.Overview
}

// noNewsOverview is the fixed overview for a country without headlines.
func noNewsOverview(name string) domain.Overview {
	return domain.Overview{
		Title:    name + noNewsSuffix,
		Summary:  updatingText,
		FullText: updatingText,
	}
}

// updatingOverview is the fixed overview used when generation failed.
func updatingOverview(name string) domain.Overview {
	return domain.Overview{
		Title:    name + updatingSuffix,
		Summary:  updatingText,
		FullText: updatingText,
	}
}

// truncate shortens s to at most n characters (runes, not bytes; the feed is
// mostly Cyrillic).
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
