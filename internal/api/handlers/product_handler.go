package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/naresh-2026/warehouseProducts/internal/apperr"
	"github.com/naresh-2026/warehouseProducts/internal/models"
	"github.com/naresh-2026/warehouseProducts/internal/services"
	"github.com/rs/zerolog/log"
)

// ProductHandler handles HTTP requests for inventory operations.
type ProductHandler struct {
	service services.ProductServiceProvider
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service services.ProductServiceProvider) *ProductHandler {
	return &ProductHandler{service: service}
}

// AddProductPayload defines the structure for add requests.
type AddProductPayload struct {
	Username string `json:"username"`
	Name     string `json:"productName"`
	Quantity int    `json:"quantity"`
	Category string `json:"itemType"`
	IsPublic bool   `json:"isPublic"`
}

// UpdateProductPayload defines the structure for quantity adjustments. The
// quantity field carries a signed delta, not an absolute value.
type UpdateProductPayload struct {
	Username string `json:"username"`
	Name     string `json:"productName"`
	Delta    int    `json:"quantity"`
	Category string `json:"itemType"`
}

// Add handles the request to create a new inventory record.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	var payload AddProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	product, err := h.service.AddItem(r.Context(), payload.Username, payload.Name, payload.Quantity, payload.Category, payload.IsPublic)
	if err != nil {
		if apperr.IsStorage(err) {
			log.Error().Err(err).Str("username", payload.Username).Msg("Failed to add product")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles the request to merge a quantity delta into an existing
// record. The response message tells the client whether the record was
// updated or removed.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload UpdateProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.service.AdjustQuantity(r.Context(), payload.Username, payload.Name, payload.Category, payload.Delta)
	if err != nil {
		if apperr.IsStorage(err) {
			log.Error().Err(err).Str("username", payload.Username).Str("product", payload.Name).Msg("Failed to update product")
		}
		writeError(w, err)
		return
	}

	if result.Deleted {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Product quantity exhausted, item deleted.",
			"id":      result.ID,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product quantity updated successfully.",
		"product": result.Product,
	})
}

// GetRecent handles the request for the newest records of a user, capped at
// the configured window.
func (h *ProductHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	products, err := h.service.ListRecent(r.Context(), username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to list recent products")
		writeError(w, err)
		return
	}
	if products == nil {
		products = make([]models.Product, 0)
	}
	writeJSON(w, http.StatusOK, products)
}

// GetAll handles the request for a user's full inventory.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	products, err := h.service.ListAll(r.Context(), username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to list products")
		writeError(w, err)
		return
	}
	if products == nil {
		products = make([]models.Product, 0)
	}
	writeJSON(w, http.StatusOK, products)
}
