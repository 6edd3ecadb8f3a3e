package overview

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/umoja-labs/africa-pulse/internal/domain"
	"github.com/umoja-labs/africa-pulse/pkg/httpclient"
)

func chatReply(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(body)
}

func newAITest(t *testing.T, handler http.HandlerFunc) *AIGenerator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := httpclient.NewRestyClient(5 * time.Second)
	t.Cleanup(client.Close)

	return NewAIGenerator(client, srv.URL, "test-key", "", nil)
}

func aiCountry(name string, headlineMsgs ...string) domain.Country {
	return domain.Country{Name: name, Headlines: msgs(headlineMsgs...)}
}

func TestAIGenerateFencedReply(t *testing.T) {
	g := newAITest(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, chatReply("```json\n{\"title\":\"T\",\"summary\":\"S\",\"full_text\":\"F\"}\n```"))
	})

	ov := g.Generate(context.Background(), aiCountry("Кения", "A"))
	assert.Equal(t, domain.Overview{Title: "T", Summary: "S", FullText: "F"}, ov)
}

func TestAIGenerateUnparsableReply(t *testing.T) {
	g := newAITest(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, chatReply("не могу ответить в формате JSON"))
	})

	ov := g.Generate(context.Background(), aiCountry("Мали", "A"))
	assert.Equal(t, "Мали: Информация обновляется", ov.Title)
	assert.Equal(t, "Информация обновляется...", ov.Summary)
	assert.Equal(t, "Информация обновляется...", ov.FullText)
}

func TestAIGenerateNon200(t *testing.T) {
	g := newAITest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	ov := g.Generate(context.Background(), aiCountry("Чад", "A"))
	assert.Equal(t, "Чад: Информация обновляется", ov.Title)
}

func TestAIGenerateEmptyHeadlinesSkipsRequest(t *testing.T) {
	called := false
	g := newAITest(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	ov := g.Generate(context.Background(), domain.Country{Name: "Ливия"})
	assert.Equal(t, false, called)
	assert.Equal(t, "Ливия: Нет новостей", ov.Title)
}

func TestAIGenerateRequestShape(t *testing.T) {
	var got chatRequest
	var auth string
	g := newAITest(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, chatReply(`{"title":"T","summary":"S","full_text":"F"}`))
	})

	long := strings.Repeat("и", 700)
	g.Generate(context.Background(), aiCountry("Гана", "A", "B", "C", long))

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, maxOutputTokens, got.MaxTokens)
	assert.Equal(t, temperature, got.Temperature)
	assert.Equal(t, 1, len(got.Messages))
	assert.Equal(t, "user", got.Messages[0].Role)

	prompt := got.Messages[0].Content
	assert.Equal(t, true, strings.Contains(prompt, "Гана"))
	// Only the first three headlines enter the prompt.
	assert.Equal(t, true, strings.Contains(prompt, "A"))
	assert.Equal(t, false, strings.Contains(prompt, long[:501]))
}

func TestAIGeneratePromptTruncatesLongMessages(t *testing.T) {
	var got chatRequest
	g := newAITest(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, chatReply(`{"title":"T","summary":"S","full_text":"F"}`))
	})

	long := strings.Repeat("щ", 800)
	g.Generate(context.Background(), aiCountry("Египет", long))

	prompt := got.Messages[0].Content
	assert.Equal(t, true, strings.Contains(prompt, strings.Repeat("щ", 500)))
	assert.Equal(t, false, strings.Contains(prompt, strings.Repeat("щ", 501)))
}
