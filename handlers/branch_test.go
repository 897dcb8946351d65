package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetBranches(t *testing.T) {
	router := setupBranchRouter(freshStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/supermarkets", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 2 {
		t.Fatalf("expected 2 supermarkets, got %d", len(result))
	}
	if name := result[0].(map[string]interface{})["name"]; name != "Supermercado Econômico" {
		t.Errorf("expected Supermercado Econômico first, got %v", name)
	}
}

func TestGetBranchNotFound(t *testing.T) {
	router := setupBranchRouter(freshStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/supermarkets/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestCreateBranchUnderHeadquarters(t *testing.T) {
	store := freshStore()
	router := setupBranchRouter(store)

	body := map[string]interface{}{
		"name":     "Econômico Centro",
		"city":     "Belo Horizonte",
		"state":    "MG",
		"parentId": "s1",
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/supermarkets", body))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponse(w)
	if result["logoUrl"] != "https://picsum.photos/seed/market1/100/100" {
		t.Errorf("expected logo inherited from s1, got %v", result["logoUrl"])
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/supermarkets/s1/family", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	family := parseResponseArray(w)
	if len(family) != 2 {
		t.Fatalf("expected headquarters plus 1 branch, got %d", len(family))
	}
	if family[1].(map[string]interface{})["id"] != result["id"] {
		t.Errorf("expected new branch in family, got %v", family[1])
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/supermarkets?roots=true", nil))
	if roots := parseResponseArray(w); len(roots) != 2 {
		t.Errorf("expected 2 roots, got %d", len(roots))
	}
}

func TestCreateBranchValidation(t *testing.T) {
	store := freshStore()
	router := setupBranchRouter(store)

	child := map[string]interface{}{"name": "Filial", "city": "Contagem", "parentId": "s1"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/admin/supermarkets", child))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	childID := parseResponse(w)["id"].(string)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing city", map[string]interface{}{"name": "Sem Cidade"}},
		{"missing name", map[string]interface{}{"city": "Betim"}},
		{"bad state", map[string]interface{}{"name": "X", "city": "Betim", "state": "Minas"}},
		{"unknown parent", map[string]interface{}{"name": "X", "city": "Betim", "parentId": "s9"}},
		{"nested branch", map[string]interface{}{"name": "X", "city": "Betim", "parentId": childID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest("POST", "/api/admin/supermarkets", tt.body))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	if n := len(store.Snapshot().Branches); n != 3 {
		t.Errorf("expected rejected branches not to be stored, got %d branches", n)
	}
}

func TestUpdateBranch(t *testing.T) {
	store := freshStore()
	router := setupBranchRouter(store)

	body := map[string]interface{}{"name": "Hipermercado Preço Bom Matriz", "city": "Uberlândia"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/api/admin/supermarkets/s2", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	b, _ := store.Snapshot().Branch("s2")
	if b.City != "Uberlândia" || b.LogoURL != "https://picsum.photos/seed/market2/100/100" {
		t.Errorf("expected city updated and logo kept, got %+v", b)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/api/admin/supermarkets/nope", body))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestGetFamilyNotFound(t *testing.T) {
	router := setupBranchRouter(freshStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/supermarkets/nope/family", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
