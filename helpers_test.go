package restpath

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

// echo is what the test API reports back about each request it saw.
type echo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Query       string `json:"query"`
	Body        string `json:"body"`
	ContentType string `json:"content_type"`
	RequestID   string `json:"request_id"`
	Accept      string `json:"accept"`
}

func writeEcho(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(echo{
		Method:      r.Method,
		Path:        r.URL.EscapedPath(),
		Query:       r.URL.RawQuery,
		Body:        string(body),
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get(RequestIDHeader),
		Accept:      r.Header.Get("Accept"),
	})
}

// newTestAPI serves a small Twitter-shaped API under /1.1.
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/1.1", func(r chi.Router) {
		r.Get("/statuses/public_timeline.json", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id": 1, "text": "hello", "user": {"id": 7, "screen_name": "gopher"}}]`))
		})
		r.Post("/statuses/update.json", writeEcho)
		r.Get("/users/*", writeEcho)
		r.Put("/lists/*", writeEcho)
		r.Delete("/lists/*", writeEcho)
		r.Post("/friendships/create.json", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"created": true}`))
		})
		r.Delete("/friendships/destroy.json", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/raw.txt.json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("plain text"))
		})
		r.Get("/broken.json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"unterminated": `))
		})
		r.Get("/limited.json", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"errors": [{"code": 88}]}`, http.StatusTooManyRequests)
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

// configFor points a Config at server with the /1.1/%s.json template.
func configFor(server *httptest.Server) Config {
	return Config{
		URLTemplate: "/1.1/%s.json",
		Host:        strings.TrimPrefix(server.URL, "http://"),
		UseHTTPS:    false,
	}
}

func decodeEcho(t *testing.T, resp *Response) echo {
	t.Helper()
	var e echo
	if err := json.Unmarshal(resp.Body, &e); err != nil {
		t.Fatalf("decode echo: %v", err)
	}
	return e
}
