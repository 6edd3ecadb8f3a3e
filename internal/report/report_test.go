package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/umoja-labs/africa-pulse/internal/domain"
)

func enriched(name string, mentions int) domain.EnrichedCountry {
	return domain.EnrichedCountry{Name: name, Mentions: mentions}
}

func TestBuildSortsDescending(t *testing.T) {
	rep := Build([]domain.EnrichedCountry{
		enriched("a", 3),
		enriched("b", 17),
		enriched("c", 8),
	}, false, time.Now())

	assert.Equal(t, "b", rep.Countries[0].Name)
	assert.Equal(t, "c", rep.Countries[1].Name)
	assert.Equal(t, "a", rep.Countries[2].Name)
	assert.Equal(t, 3, rep.TotalCountries)
	assert.Equal(t, 0, rep.TotalMentions)
}

func TestBuildStableOnTies(t *testing.T) {
	rep := Build([]domain.EnrichedCountry{
		enriched("first", 5),
		enriched("second", 5),
		enriched("third", 9),
	}, false, time.Now())

	assert.Equal(t, "third", rep.Countries[0].Name)
	assert.Equal(t, "first", rep.Countries[1].Name)
	assert.Equal(t, "second", rep.Countries[2].Name)
}

func TestBuildMentionTotal(t *testing.T) {
	rep := Build([]domain.EnrichedCountry{
		enriched("a", 3),
		enriched("b", 4),
	}, true, time.Now())

	assert.Equal(t, 7, rep.TotalMentions)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	in := []domain.EnrichedCountry{enriched("a", 1), enriched("b", 9)}
	Build(in, false, time.Now())

	assert.Equal(t, "a", in[0].Name)
}

func TestEnrichTruncatesHeadlines(t *testing.T) {
	items := make([]domain.NewsItem, 15)
	for i := range items {
		items[i] = domain.NewsItem{Msg: "m"}
	}

	out := Enrich(domain.Country{Name: "Кения", Mentions: 2, Headlines: items}, domain.Overview{Title: "T"})
	assert.Equal(t, 10, len(out.Headlines))
	assert.Equal(t, 2, out.Mentions)
	assert.Equal(t, "T", out.Title)
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewWriter(dir, nil)

	rep := Build([]domain.EnrichedCountry{
		{Name: "Кот-д'Ивуар", Mentions: 4, Title: "Какао & экспорт"},
	}, true, time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC))

	path, err := w.Write(rep)
	assert.Equal(t, nil, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	raw, err := os.ReadFile(path)
	assert.Equal(t, nil, err)

	// Non-ASCII stays literal and HTML-significant characters are not escaped.
	text := string(raw)
	assert.Equal(t, true, strings.Contains(text, "Кот-д'Ивуар"))
	assert.Equal(t, true, strings.Contains(text, "&"))
	assert.Equal(t, false, strings.Contains(text, `\u0026`))
	assert.Equal(t, true, strings.Contains(text, "\n  \"generated_at\""))

	var decoded domain.Report
	assert.Equal(t, nil, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "2026-02-26T12:00:00Z", decoded.GeneratedAt)
	assert.Equal(t, 1, decoded.TotalCountries)
	assert.Equal(t, 4, decoded.TotalMentions)
}

func TestWriteOverwritesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	_, err := w.Write(Build([]domain.EnrichedCountry{enriched("a", 1)}, false, time.Now()))
	assert.Equal(t, nil, err)

	path, err := w.Write(Build([]domain.EnrichedCountry{enriched("b", 2)}, false, time.Now()))
	assert.Equal(t, nil, err)

	raw, _ := os.ReadFile(path)
	var decoded domain.Report
	assert.Equal(t, nil, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 1, decoded.TotalCountries)
	assert.Equal(t, "b", decoded.Countries[0].Name)
}
