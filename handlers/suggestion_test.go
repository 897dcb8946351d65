package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"precojusto-backend/suggest"
)

type stubSuggester struct {
	got string
}

func (s *stubSuggester) Suggest(_ context.Context, query string) []string {
	s.got = query
	return []string{"Laticínios", "Itambé", "Piracanjuba"}
}

func TestGetSuggestions(t *testing.T) {
	stub := &stubSuggester{}
	h := &SuggestionHandler{Suggester: stub}
	r := gin.New()
	r.GET("/api/suggestions", h.GetSuggestions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/suggestions?q=leite", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.got != "leite" {
		t.Errorf("expected query forwarded, got %q", stub.got)
	}
	if s := parseResponse(w)["suggestions"].([]interface{}); len(s) != 3 {
		t.Errorf("expected 3 suggestions, got %v", s)
	}
}

func TestGetSuggestionsNoop(t *testing.T) {
	h := &SuggestionHandler{Suggester: suggest.Noop{}}
	r := gin.New()
	r.GET("/api/suggestions", h.GetSuggestions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/suggestions?q=arroz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if s := parseResponse(w)["suggestions"].([]interface{}); len(s) != 0 {
		t.Errorf("expected empty suggestions, got %v", s)
	}
}
