package overview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/umoja-labs/africa-pulse/internal/domain"
	"github.com/umoja-labs/africa-pulse/internal/logger"
	"github.com/umoja-labs/africa-pulse/pkg/httpclient"
)

const (
	// DefaultChatURL is the OpenRouter chat-completion endpoint.
	DefaultChatURL = "https://openrouter.ai/api/v1/chat/completions"

	// DefaultModel is the model identifier sent with every request.
	DefaultModel = "google/gemini-2.0-flash-exp:free"

	maxOutputTokens = 1000
	temperature     = 0.7

	promptHeadlines = 3
	promptMsgLimit  = 500
)

const promptTemplate = `Ты - новостной аналитик. На основе новостей напиши обзор по стране %s.

Новости:
%s

Требования:
1. Создай короткий заголовок (5-7 слов) - главное событие в стране
2. Напиши краткую сводку (2-3 предложения) - что происходит
3. Напиши полный обзор (3-4 абзаца):
   - Что происходит (главное событие)
   - Контекст и детали
   - Значение для региона/мира

Стиль:
- КОНКРЕТНЫЕ факты: кто, что, где, когда
- Избегай общих фраз
- Пиши информативно и лаконично

Формат ответа (строго JSON):
{
  "title": "Заголовок обзора",
  "summary": "Краткая сводка в 2-3 предложения.",
  "full_text": "Полный обзор в 3-4 абзаца."
}

Ответ (только JSON):`

// AIGenerator asks a chat-completion model for the country overview.
type AIGenerator struct {
	client  httpclient.Client
	chatURL string
	apiKey  string
	model   string
	log     logger.Logger
}

// NewAIGenerator builds the model-backed generator. Empty chatURL/model fall
// back to the OpenRouter defaults. The client should carry the inference
// timeout (60s), not the shorter listing one.
func NewAIGenerator(client httpclient.Client, chatURL, apiKey, model string, log logger.Logger) *AIGenerator {
	if chatURL == "" {
		chatURL = DefaultChatURL
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &AIGenerator{
		client:  client,
		chatURL: chatURL,
		apiKey:  apiKey,
		model:   model,
		log:     log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate produces an overview from the country's own headline list. Any
// failure along the way, transport, status, missing choices or an
// unparsable reply, yields the placeholder overview.
func (g *AIGenerator) Generate(ctx context.Context, country domain.Country) domain.Overview {
	if len(country.Headlines) == 0 {
		return noNewsOverview(country.Name)
	}

	resp, err := g.client.Post(ctx, g.chatURL, map[string]string{
		"Authorization": "Bearer " + g.apiKey,
	}, chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: g.buildPrompt(country)}},
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
	})
	if err != nil {
		g.log.ErrorObj("chat completion request failed", "overview_ai_error", map[string]any{
			"country": country.Name,
			"error":   err.Error(),
		})
		return updatingOverview(country.Name)
	}
	if resp.StatusCode() != http.StatusOK {
		g.log.ErrorObj("chat completion returned non-200", "overview_ai_status", map[string]any{
			"country": country.Name,
			"status":  resp.StatusCode(),
		})
		return updatingOverview(country.Name)
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil || len(parsed.Choices) == 0 {
		g.log.ErrorObj("chat completion body unreadable", "overview_ai_decode", map[string]any{
			"country": country.Name,
		})
		return updatingOverview(country.Name)
	}

	var ov domain.Overview
	if err := extractObject(parsed.Choices[0].Message.Content, &ov); err != nil {
		g.log.WarnObj("model reply is not a JSON overview", "overview_ai_parse", map[string]any{
			"country": country.Name,
			"error":   err.Error(),
		})
		return updatingOverview(country.Name)
	}
	return ov
}

func (g *AIGenerator) buildPrompt(country domain.Country) string {
	items := country.Headlines
	if len(items) > promptHeadlines {
		items = items[:promptHeadlines]
	}

	texts := make([]string, 0, len(items))
	for _, item := range items {
		msg := truncate(stripMarkup(item.Msg), promptMsgLimit)
		texts = append(texts, fmt.Sprintf("[%s, %s] %s", item.Source, item.Time, msg))
	}

	return fmt.Sprintf(promptTemplate, country.Name, strings.Join(texts, "\n\n"))
}
