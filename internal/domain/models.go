package domain

// Domain contains core models shared by the listing, overview and report layers.

// NewsItem is a single headline attached to a country record.
type NewsItem struct {
	Source string `json:"source"`
	Time   string `json:"time"`
	Msg    string `json:"msg"`
}

// Country is one record from the listing API. Immutable once fetched.
type Country struct {
	Name      string     `json:"category_name"`
	Mentions  FlexInt    `json:"mentions_count"`
	Growth    FlexFloat  `json:"growth_percentage"`
	ImageURL  string     `json:"category_image_url"`
	Headlines []NewsItem `json:"headlines"`
}

// Overview is the short narrative derived for a country.
type Overview struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	FullText string `json:"full_text"`
}

// EnrichedCountry joins a country record with its overview. Built once,
// never mutated afterwards.
type EnrichedCountry struct {
	Name      string     `json:"country_name"`
	Mentions  int        `json:"mentions_count"`
	Growth    float64    `json:"growth_percentage"`
	ImageURL  string     `json:"image_url"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	FullText  string     `json:"full_text"`
	Headlines []NewsItem `json:"headlines"`
}

// Report is the per-run output artifact.
type Report struct {
	GeneratedAt    string            `json:"generated_at"`
	TotalCountries int               `json:"total_countries"`
	TotalMentions  int               `json:"total_mentions,omitempty"`
	Countries      []EnrichedCountry `json:"countries"`
}
