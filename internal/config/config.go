package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Overview generation modes.
const (
	ModeAI        = "ai"
	ModeHeadlines = "headlines"
)

// Config holds every tunable of the monitor. Values come from an optional
// monitor.yaml plus environment variables prefixed with AFRICA_PULSE_
// (nested keys use underscores, e.g. AFRICA_PULSE_OVERVIEW_MODE). The
// OpenRouter key is additionally read from the conventional
// OPENROUTER_API_KEY variable.
type Config struct {
	APIURL string

	OpenRouterURL string
	OpenRouterKey string
	Model         string

	OutputDir      string
	HistoryPath    string
	PublishersFile string

	MaxRetries int
	MaxPage    int
	PageSize   int

	OverviewMode string

	ListingTimeout   time.Duration
	InferenceTimeout time.Duration

	LogLevel string
}

// Load reads configuration from file and environment, applying defaults.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("api.url", "https://beta.index.ru/mf-api/")
	v.SetDefault("openrouter.url", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("openrouter.model", "google/gemini-2.0-flash-exp:free")
	v.SetDefault("output.dir", "/tmp/africa_data")
	v.SetDefault("history.path", "/tmp/africa_data/history.db")
	v.SetDefault("publishers.file", "")
	v.SetDefault("fetch.retries", 3)
	v.SetDefault("fetch.max_page", 10)
	v.SetDefault("fetch.page_size", 10)
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("overview.mode", ModeAI)
	v.SetDefault("overview.timeout", 60*time.Second)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("AFRICA_PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The inference key keeps its conventional name.
	_ = v.BindEnv("openrouter.key", "OPENROUTER_API_KEY")

	v.SetConfigName("monitor")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/africa-pulse")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		APIURL:           v.GetString("api.url"),
		OpenRouterURL:    v.GetString("openrouter.url"),
		OpenRouterKey:    v.GetString("openrouter.key"),
		Model:            v.GetString("openrouter.model"),
		OutputDir:        v.GetString("output.dir"),
		HistoryPath:      v.GetString("history.path"),
		PublishersFile:   v.GetString("publishers.file"),
		MaxRetries:       v.GetInt("fetch.retries"),
		MaxPage:          v.GetInt("fetch.max_page"),
		PageSize:         v.GetInt("fetch.page_size"),
		OverviewMode:     strings.ToLower(strings.TrimSpace(v.GetString("overview.mode"))),
		ListingTimeout:   v.GetDuration("fetch.timeout"),
		InferenceTimeout: v.GetDuration("overview.timeout"),
		LogLevel:         v.GetString("log.level"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api.url is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output.dir is required")
	}
	switch c.OverviewMode {
	case ModeAI, ModeHeadlines:
	default:
		return fmt.Errorf("overview.mode must be %q or %q, got %q", ModeAI, ModeHeadlines, c.OverviewMode)
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("fetch.retries must be positive")
	}
	if c.MaxPage <= 1 {
		return fmt.Errorf("fetch.max_page must be greater than 1")
	}
	return nil
}
