package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/umoja-labs/africa-pulse/pkg/httpclient"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc, retries int) (*Fetcher, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := httpclient.NewRestyClient(5 * time.Second)
	t.Cleanup(client.Close)

	f := NewFetcher(client, srv.URL, retries, nil)
	f.retryDelay = time.Millisecond
	return f, srv
}

func TestFetchPageSuccess(t *testing.T) {
	var gotQuery atomic.Value
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query().Encode())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"category_name":"Кения","mentions_count":5}]`))
	}, 3)

	data, ok := f.FetchPage(context.Background(), nil)
	assert.Equal(t, true, ok)
	assert.Equal(t, 1, len(data))
	assert.Equal(t, "Кения", data[0].Name)
	assert.Equal(t, 5, data[0].Mentions.Int())

	q := gotQuery.Load().(string)
	assert.Equal(t, "gid=104&page=main", q)
}

func TestFetchPageSendsPageIndex(t *testing.T) {
	var gotN atomic.Value
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotN.Store(r.URL.Query().Get("n"))
		w.Write([]byte(`[]`))
	}, 1)

	page := 4
	_, ok := f.FetchPage(context.Background(), &page)
	assert.Equal(t, true, ok)
	assert.Equal(t, "4", gotN.Load().(string))
}

func TestFetchPageExhaustsRetryBudget(t *testing.T) {
	for _, retries := range []int{1, 2, 3, 5} {
		var calls atomic.Int64
		f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}, retries)

		data, ok := f.FetchPage(context.Background(), nil)
		assert.Equal(t, false, ok)
		assert.Equal(t, 0, len(data))
		assert.Equal(t, int64(retries), calls.Load())
	}
}

func TestFetchPageRetriesOnNonArrayBody(t *testing.T) {
	var calls atomic.Int64
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"error":"not an array"}`))
	}, 3)

	_, ok := f.FetchPage(context.Background(), nil)
	assert.Equal(t, false, ok)
	assert.Equal(t, int64(3), calls.Load())
}

func TestFetchPageRetriesOnNullBody(t *testing.T) {
	var calls atomic.Int64
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`null`))
	}, 2)

	_, ok := f.FetchPage(context.Background(), nil)
	assert.Equal(t, false, ok)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetchPageRecoversWithinBudget(t *testing.T) {
	var calls atomic.Int64
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"category_name":"Гана"}]`))
	}, 3)

	data, ok := f.FetchPage(context.Background(), nil)
	assert.Equal(t, true, ok)
	assert.Equal(t, "Гана", data[0].Name)
	assert.Equal(t, int64(3), calls.Load())
}

func TestSearchHeadlines(t *testing.T) {
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Сенегал", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"category_name":"Сенегал","headlines":[{"source":"RFI","msg":"Визит"}]}]`))
	}, 3)

	items := f.SearchHeadlines(context.Background(), "Сенегал")
	assert.Equal(t, 1, len(items))
	assert.Equal(t, "RFI", items[0].Source)
	assert.Equal(t, "Визит", items[0].Msg)
}

func TestSearchHeadlinesEmptyOnFailure(t *testing.T) {
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, 2)

	items := f.SearchHeadlines(context.Background(), "Чад")
	assert.Equal(t, 0, len(items))
}

func TestSearchHeadlinesEmptyArray(t *testing.T) {
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}, 1)

	items := f.SearchHeadlines(context.Background(), "Мали")
	assert.Equal(t, 0, len(items))
}
