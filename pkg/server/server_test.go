package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tilegrid/pkg/grid"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	logger.SetLevel(log.FatalLevel)
	if cfg.RateLimit == 0 {
		cfg.RateLimit = -1
	}
	srv := New(pipeline.NewRunner(nil, nil, logger), logger, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

const validLayout = `{
  "screen_width": 640,
  "items": [
    {"id": "a", "col": 1, "row": 1, "col_span": 2, "row_span": 1, "content": "Alpha"},
    {"id": "b", "col": 3, "row": 1, "col_span": 2, "row_span": 2}
  ]
}`

const overlappingLayout = `{
  "columns": 4,
  "items": [
    {"id": "a", "col": 1, "row": 1, "col_span": 2, "row_span": 2},
    {"id": "b", "col": 2, "row": 2, "col_span": 1, "row_span": 1}
  ]
}`

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := get(t, ts.URL+"/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestColumns(t *testing.T) {
	ts := newTestServer(t, Config{})

	tests := []struct {
		query string
		want  int
	}{
		{"width=1920", 12},
		{"width=300&cell_width=150", 2},
		{"width=100", 1},
		{"width=0", 1},
		{"width=1000&cell_width=250&gap=0", 4},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := get(t, ts.URL+"/v1/columns?"+tt.query)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var body columnsResponse
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.want, body.Columns)
		})
	}
}

func TestColumnsBadInput(t *testing.T) {
	ts := newTestServer(t, Config{})

	for _, q := range []string{"", "width=wide", "width=-5", "width=100&gap=x"} {
		t.Run(q, func(t *testing.T) {
			resp := get(t, ts.URL+"/v1/columns?"+q)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body errorBody
			decodeBody(t, resp, &body)
			assert.Equal(t, "INVALID_INPUT", body.Error.Code)
		})
	}
}

func TestGeometry(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/v1/geometry", `{"col": 2, "row": 3, "col_span": 2, "row_span": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body geometryResponse
	decodeBody(t, resp, &body)
	assert.True(t, body.Valid)
	assert.Empty(t, body.Errors)
	assert.Equal(t, grid.Placement{ColStart: 2, ColEnd: 4, RowStart: 3, RowEnd: 4}, body.Placement)
	assert.Equal(t, grid.Size{Width: 300, Height: 150}, body.Size)
}

func TestGeometryInvalid(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/v1/geometry", `{"col": 0, "row": 1, "col_span": 0, "row_span": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body geometryResponse
	decodeBody(t, resp, &body)
	assert.False(t, body.Valid)
	require.Len(t, body.Errors, 2)
	for _, e := range body.Errors {
		assert.Equal(t, grid.KindInvalidPosition, e.Kind)
	}
}

func TestValidate(t *testing.T) {
	ts := newTestServer(t, Config{})

	t.Run("valid", func(t *testing.T) {
		resp := post(t, ts.URL+"/v1/validate", validLayout)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, true, body["is_valid"])
		assert.Equal(t, float64(4), body["columns"])
		assert.Equal(t, []any{}, body["errors"])
		assert.NotEmpty(t, body["id"])
	})

	t.Run("invalid", func(t *testing.T) {
		resp := post(t, ts.URL+"/v1/validate", overlappingLayout)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Valid  bool                   `json:"is_valid"`
			Errors []grid.ValidationError `json:"errors"`
		}
		decodeBody(t, resp, &body)
		assert.False(t, body.Valid)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, grid.KindOverlap, body.Errors[0].Kind)
		assert.Equal(t, "Items a and b overlap", body.Errors[0].Message)
	})
}

func TestValidateBadBody(t *testing.T) {
	ts := newTestServer(t, Config{})

	tests := map[string]string{
		"malformed":     `{"items": [`,
		"unknown field": `{"items": [], "colour": "red"}`,
		"empty id":      `{"items": [{"id": "", "col": 1, "row": 1, "col_span": 1, "row_span": 1}]}`,
		"duplicate id": `{"items": [
			{"id": "a", "col": 1, "row": 1, "col_span": 1, "row_span": 1},
			{"id": "a", "col": 2, "row": 1, "col_span": 1, "row_span": 1}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/validate", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t, Config{})

	t.Run("json", func(t *testing.T) {
		resp := post(t, ts.URL+"/v1/render", validLayout)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Equal(t, "4", resp.Header.Get("X-Column-Count"))
		assert.NotEmpty(t, resp.Header.Get("X-Report-Id"))

		var body struct {
			Columns int `json:"columns"`
			Items   []struct {
				ID string `json:"id"`
			} `json:"items"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, 4, body.Columns)
		assert.Len(t, body.Items, 2)
	})

	t.Run("html", func(t *testing.T) {
		resp := post(t, ts.URL+"/v1/render?format=html", validLayout)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `data-item-id="a"`)
		assert.Contains(t, string(raw), "Alpha")
	})

	t.Run("invalid layout", func(t *testing.T) {
		resp := post(t, ts.URL+"/v1/render", overlappingLayout)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "INVALID_LAYOUT", body.Error.Code)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, grid.KindOverlap, body.Errors[0].Kind)
	})

	t.Run("too tall to draw", func(t *testing.T) {
		tall := `{"columns": 12, "items": [{"id": "a", "col": 1, "row": 2000000, "col_span": 1, "row_span": 1}]}`
		for _, format := range []string{"text", "dot", "svg"} {
			resp := post(t, ts.URL+"/v1/render?format="+format, tall)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, format)

			var body errorBody
			decodeBody(t, resp, &body)
			assert.Equal(t, "INVALID_INPUT", body.Error.Code, format)
		}

		resp := post(t, ts.URL+"/v1/render?format=html", tall)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("unknown format", func(t *testing.T) {
		resp := post(t, ts.URL+"/v1/render?format=png", validLayout)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "INVALID_FORMAT", body.Error.Code)
	})
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, Config{RateLimit: 1, Burst: 1})

	first := get(t, ts.URL+"/v1/columns?width=300")
	require.Equal(t, http.StatusOK, first.StatusCode)

	second := get(t, ts.URL+"/v1/columns?width=300")
	require.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "1", second.Header.Get("Retry-After"))

	var body errorBody
	decodeBody(t, second, &body)
	assert.Equal(t, "RATE_LIMITED", body.Error.Code)

	// Health checks are not rate limited.
	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/healthz").StatusCode)
}

func TestClientLimiterEvictsIdle(t *testing.T) {
	now := time.Unix(0, 0)
	l := newClientLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.get("a")
	now = now.Add(clientIdle + time.Second)
	l.get("b")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.clients, "a")
	assert.Contains(t, l.clients, "b")
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, _ int, _ time.Duration) {
	h.mu.Lock()
	h.routes = append(h.routes, route)
	h.mu.Unlock()
}

func TestObserveUsesRoutePattern(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, Config{})
	get(t, ts.URL+"/v1/columns?width=300")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	assert.Equal(t, []string{"/v1/columns"}, hooks.routes)
}

func TestServeShutdown(t *testing.T) {
	logger := log.New(io.Discard)
	logger.SetLevel(log.FatalLevel)
	srv := New(nil, logger, Config{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp := get(t, "http://"+ln.Addr().String()+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
