package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/umoja-labs/africa-pulse/internal/domain"
	"github.com/umoja-labs/africa-pulse/internal/logger"
)

// FileName is the fixed report artifact name; each run overwrites it.
const FileName = "africa_monitoring.json"

// keptHeadlines caps how many raw headlines an enriched record carries.
const keptHeadlines = 10

// Enrich joins a country record with its overview, trimming raw headlines.
func Enrich(country domain.Country, ov domain.Overview) domain.EnrichedCountry {
	headlines := country.Headlines
	if len(headlines) > keptHeadlines {
		headlines = headlines[:keptHeadlines]
	}

	return domain.EnrichedCountry{
		Name:      country.Name,
		Mentions:  country.Mentions.Int(),
		Growth:    country.Growth.Float(),
		ImageURL:  country.ImageURL,
		Title:     ov.Title,
		Summary:   ov.Summary,
		FullText:  ov.FullText,
		Headlines: headlines,
	}
}

// Build sorts countries by mention count descending (ties keep arrival
// order) and wraps them with run metadata. The mention total is only
// reported for headline-derived runs.
func Build(countries []domain.EnrichedCountry, withMentionTotal bool, now time.Time) domain.Report {
	sorted := make([]domain.EnrichedCountry, len(countries))
	copy(sorted, countries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Mentions > sorted[j].Mentions
	})

	rep := domain.Report{
		GeneratedAt:    now.Format(time.RFC3339),
		TotalCountries: len(sorted),
		Countries:      sorted,
	}
	if withMentionTotal {
		for _, c := range sorted {
			rep.TotalMentions += c.Mentions
		}
	}
	return rep
}

// Writer persists reports under a fixed directory.
type Writer struct {
	dir string
	log logger.Logger
}

// NewWriter builds a Writer targeting the given output directory.
func NewWriter(dir string, log logger.Logger) *Writer {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Writer{dir: dir, log: log}
}

// Write serializes the report as indented UTF-8 JSON, keeping non-ASCII
// characters literal, and returns the file path.
func (w *Writer) Write(rep domain.Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.dir, FileName)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	w.log.InfoObj("report written", "report_written", map[string]any{
		"path":      path,
		"countries": rep.TotalCountries,
	})
	return path, nil
}
