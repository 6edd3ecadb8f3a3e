package config

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	assert.Equal(t, nil, err)

	assert.Equal(t, "https://beta.index.ru/mf-api/", cfg.APIURL)
	assert.Equal(t, ModeAI, cfg.OverviewMode)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 10, cfg.MaxPage)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "30s", cfg.ListingTimeout.String())
	assert.Equal(t, "1m0s", cfg.InferenceTimeout.String())
	assert.Equal(t, "google/gemini-2.0-flash-exp:free", cfg.Model)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AFRICA_PULSE_OVERVIEW_MODE", "headlines")
	t.Setenv("AFRICA_PULSE_FETCH_RETRIES", "5")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	cfg, err := Load()
	assert.Equal(t, nil, err)
	assert.Equal(t, ModeHeadlines, cfg.OverviewMode)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, "sk-test", cfg.OpenRouterKey)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("AFRICA_PULSE_OVERVIEW_MODE", "hybrid")

	_, err := Load()
	assert.NotEqual(t, nil, err)
}

func TestValidate(t *testing.T) {
	base := Config{
		APIURL:       "https://example.com",
		OutputDir:    "/tmp/out",
		OverviewMode: ModeAI,
		MaxRetries:   3,
		MaxPage:      10,
	}
	assert.Equal(t, nil, base.validate())

	noURL := base
	noURL.APIURL = ""
	assert.NotEqual(t, nil, noURL.validate())

	badRetries := base
	badRetries.MaxRetries = 0
	assert.NotEqual(t, nil, badRetries.validate())

	badPage := base
	badPage.MaxPage = 1
	assert.NotEqual(t, nil, badPage.validate())
}
