package handler

import (
	"net/http"

	"licenseshop/internal/model"
	"licenseshop/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler handles the admin variant and SKU endpoints.
type CatalogHandler struct {
	catalog service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new admin catalog handler.
func NewCatalogHandler(catalogSvc service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogSvc,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// CreateVariant handles POST /api/admin/variants requests.
func (h *CatalogHandler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	var input model.VariantInput
	if err := decodeJSON(r, &input); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	variant, err := h.catalog.CreateVariant(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, variant)
}

// UpdateVariant handles PATCH /api/admin/variants/{id} requests.
func (h *CatalogHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	var update model.VariantUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	variant, err := h.catalog.UpdateVariant(r.Context(), id, update)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, variant)
}

// DeleteVariant handles DELETE /api/admin/variants/{id} requests.
func (h *CatalogHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.catalog.DeleteVariant(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSKUs handles GET /api/admin/products/{id}/skus requests.
func (h *CatalogHandler) ListSKUs(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	skus, err := h.catalog.ListSKUs(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, skus)
}

// CreateSKU handles POST /api/admin/skus requests.
func (h *CatalogHandler) CreateSKU(w http.ResponseWriter, r *http.Request) {
	var input model.SKUInput
	if err := decodeJSON(r, &input); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	sku, err := h.catalog.CreateSKU(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, sku)
}

// UpdateSKU handles PATCH /api/admin/skus/{id} requests.
func (h *CatalogHandler) UpdateSKU(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	var update model.SKUUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.catalog.UpdateSKU(r.Context(), id, update); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteSKU handles DELETE /api/admin/skus/{id} requests.
func (h *CatalogHandler) DeleteSKU(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.catalog.DeleteSKU(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReplaceSKUs handles PUT /api/admin/products/{id}/skus requests: the whole
// SKU set for the product is swapped in one transaction.
func (h *CatalogHandler) ReplaceSKUs(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	var inputs []model.SKUInput
	if err := decodeJSON(r, &inputs); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	skus, err := h.catalog.ReplaceSKUs(r.Context(), productID, inputs)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, skus)
}
