package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSetPriceCreatesRecord(t *testing.T) {
	store := freshStore()
	router := setupPriceRouter(store)

	body := map[string]interface{}{"supermarketId": "s1", "price": 12.50}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/api/admin/products/p4/price", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	rec, ok := store.Snapshot().PriceFor("p4", "s1")
	if !ok {
		t.Fatal("expected a new price record")
	}
	if rec.Price != 12.50 || rec.Stock != 0 {
		t.Errorf("expected 12.50 with no stock, got %+v", rec)
	}
}

func TestSetPriceClearsOriginalPrice(t *testing.T) {
	store := freshStore()
	router := setupPriceRouter(store)

	body := map[string]interface{}{"supermarketId": "s1", "price": 23.90, "originalPrice": 0}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/api/admin/products/p1/price", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponse(w)
	if _, ok := result["originalPrice"]; ok {
		t.Errorf("expected originalPrice removed, got %v", result["originalPrice"])
	}
	if result["stock"].(float64) != 50 {
		t.Errorf("expected stock untouched, got %v", result["stock"])
	}
}

func TestSetPriceErrors(t *testing.T) {
	router := setupPriceRouter(freshStore())

	tests := []struct {
		name   string
		path   string
		body   map[string]interface{}
		status int
	}{
		{"unknown product", "/api/admin/products/nope/price", map[string]interface{}{"supermarketId": "s1", "price": 1}, http.StatusNotFound},
		{"unknown supermarket", "/api/admin/products/p1/price", map[string]interface{}{"supermarketId": "s9", "price": 1}, http.StatusNotFound},
		{"negative price", "/api/admin/products/p1/price", map[string]interface{}{"supermarketId": "s1", "price": -2}, http.StatusBadRequest},
		{"missing supermarket", "/api/admin/products/p1/price", map[string]interface{}{"price": 2}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest("PUT", tt.path, tt.body))
			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestAdjustStock(t *testing.T) {
	store := freshStore()
	router := setupPriceRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/products/p10/stock", map[string]interface{}{"supermarketId": "s1", "delta": 50}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if stock := parseResponse(w)["stock"].(float64); stock != 250 {
		t.Errorf("expected stock 250, got %v", stock)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/products/p1/stock", map[string]interface{}{"supermarketId": "s1", "delta": -60}))
	if stock := parseResponse(w)["stock"].(float64); stock != 0 {
		t.Errorf("expected stock clamped at 0, got %v", stock)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/products/p4/stock", map[string]interface{}{"supermarketId": "s1", "delta": 1}))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 without a price record, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/products/p1/stock", map[string]interface{}{"supermarketId": "s1"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without delta, got %d", w.Code)
	}
}

func TestOfferLink(t *testing.T) {
	router := setupPriceRouter(freshStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/products/p1/offer-link", map[string]interface{}{"supermarketId": "s1"}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponse(w)
	msg := result["message"].(string)
	if !strings.Contains(msg, "R$ 24.90") || !strings.Contains(msg, "Supermercado Econômico") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !strings.HasPrefix(result["url"].(string), "https://wa.me/5511999990000?text=") {
		t.Errorf("expected default phone, got %v", result["url"])
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/products/p1/offer-link", map[string]interface{}{"supermarketId": "s1", "phone": "+55 (21) 98888-7777"}))
	if !strings.HasPrefix(parseResponse(w)["url"].(string), "https://wa.me/5521988887777?text=") {
		t.Errorf("expected phone digits in link, got %v", parseResponse(w)["url"])
	}
}

func TestOfferLinkWithoutPrice(t *testing.T) {
	router := setupPriceRouter(freshStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/products/p6/offer-link", map[string]interface{}{"supermarketId": "s2"}))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
