package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/naresh-2026/warehouseProducts/internal/apperr"
	"github.com/naresh-2026/warehouseProducts/internal/models"
	"github.com/naresh-2026/warehouseProducts/internal/services"
)

// Mock ProductServiceProvider
type mockProductService struct {
	addResult    models.Product
	addErr       error
	adjustResult services.AdjustResult
	adjustErr    error
	listResult   []models.Product
	listErr      error
}

func (m *mockProductService) AddItem(_ context.Context, owner, name string, quantity int, category string, isPublic bool) (models.Product, error) {
	return m.addResult, m.addErr
}

func (m *mockProductService) AdjustQuantity(_ context.Context, owner, name, category string, delta int) (services.AdjustResult, error) {
	return m.adjustResult, m.adjustErr
}

func (m *mockProductService) ListRecent(_ context.Context, owner string) ([]models.Product, error) {
	return m.listResult, m.listErr
}

func (m *mockProductService) ListAll(_ context.Context, owner string) ([]models.Product, error) {
	return m.listResult, m.listErr
}

func newProductRouter(svc services.ProductServiceProvider) *chi.Mux {
	h := NewProductHandler(svc)
	r := chi.NewRouter()
	r.Post("/api/add-product", h.Add)
	r.Put("/api/update-product", h.Update)
	r.Get("/api/products/recent/{username}", h.GetRecent)
	r.Get("/api/products/all/{username}", h.GetAll)
	return r
}

func TestAddProductCreated(t *testing.T) {
	svc := &mockProductService{
		addResult: models.Product{ID: "p1", Username: "alice", Name: "Widget", Category: "Electronics", Quantity: 10, CreatedAt: time.Now()},
	}
	r := newProductRouter(svc)

	body := `{"username":"alice","productName":"Widget","quantity":10,"itemType":"Electronics","isPublic":false}`
	req := httptest.NewRequest(http.MethodPost, "/api/add-product", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var got models.Product
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ID != "p1" || got.Quantity != 10 {
		t.Errorf("response = %+v", got)
	}
}

func TestAddProductValidationIs400(t *testing.T) {
	svc := &mockProductService{addErr: apperr.Validation("quantity must be at least 1")}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/add-product", strings.NewReader(`{"username":"alice","productName":"Widget","quantity":0,"itemType":"Electronics"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["message"] != "quantity must be at least 1" {
		t.Errorf("message = %q", resp["message"])
	}
}

func TestUpdateProductReportsUpdated(t *testing.T) {
	svc := &mockProductService{
		adjustResult: services.AdjustResult{Product: models.Product{ID: "p1", Quantity: 2}},
	}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/update-product", strings.NewReader(`{"username":"alice","productName":"Widget","quantity":-1,"itemType":"Electronics"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]any
	json.NewDecoder(rec.Body).Decode(&resp)
	msg, _ := resp["message"].(string)
	if !strings.Contains(msg, "updated") {
		t.Errorf("message %q does not indicate an update", msg)
	}
}

func TestUpdateProductReportsDeleted(t *testing.T) {
	svc := &mockProductService{
		adjustResult: services.AdjustResult{Deleted: true, ID: "p1"},
	}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/update-product", strings.NewReader(`{"username":"alice","productName":"Widget","quantity":-10,"itemType":"Electronics"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]any
	json.NewDecoder(rec.Body).Decode(&resp)
	msg, _ := resp["message"].(string)
	if !strings.Contains(msg, "deleted") {
		t.Errorf("message %q does not indicate a deletion", msg)
	}
}

func TestUpdateProductMissingIs404(t *testing.T) {
	svc := &mockProductService{adjustErr: apperr.NotFound("item not found")}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/update-product", strings.NewReader(`{"username":"bob","productName":"Gizmo","quantity":5,"itemType":"Books"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetRecentEmptyInventoryIsEmptyList(t *testing.T) {
	svc := &mockProductService{}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/products/recent/alice", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}

func TestGetAllStorageFailureIs500(t *testing.T) {
	svc := &mockProductService{listErr: apperr.Storage(nil, "could not list products")}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/products/all/alice", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
