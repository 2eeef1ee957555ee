package handler

import (
	"net/http"
	"strconv"

	"licenseshop/internal/catalog"
	"licenseshop/internal/model"
	"licenseshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles the public product catalog endpoints.
type ProductHandler struct {
	products service.ProductService
	catalog  service.CatalogService
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, catalogSvc service.CatalogService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		catalog:  catalogSvc,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests with pagination.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid limit parameter", h.logger)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid offset parameter", h.logger)
		return
	}

	products, err := h.products.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id} requests. The path segment may be a
// numeric id or a slug.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// ListVariants handles GET /api/products/{id}/variants requests.
func (h *ProductHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	variants, err := h.catalog.ListVariants(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, variants)
}

// ListCombinations handles GET /api/products/{id}/combinations requests.
func (h *ProductHandler) ListCombinations(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	combinations, err := h.catalog.ListCombinations(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, combinations)
}

// priceRequest is the body of a price resolution request. Selection maps
// variant id to the chosen option id.
type priceRequest struct {
	Selection map[int64]int64 `json:"selection"`
}

// ResolvePrice handles POST /api/products/{id}/price requests.
func (h *ProductHandler) ResolvePrice(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	var req priceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	resolution, err := h.catalog.ResolvePrice(r.Context(), productID, catalog.Combination(req.Selection))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resolution)
}

// pathID parses the {id} path parameter as a numeric id.
func pathID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid id parameter", logger)
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
