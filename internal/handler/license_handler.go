package handler

import (
	"net/http"

	"licenseshop/internal/license"
	"licenseshop/internal/model"
	"licenseshop/internal/service"

	"github.com/rs/zerolog"
)

// LicenseHandler handles the admin sold-license ledger endpoints.
type LicenseHandler struct {
	service service.LicenseService
	logger  zerolog.Logger
}

// NewLicenseHandler creates a new license handler.
func NewLicenseHandler(service service.LicenseService, logger zerolog.Logger) *LicenseHandler {
	return &LicenseHandler{
		service: service,
		logger:  logger.With().Str("handler", "license").Logger(),
	}
}

// GetAll handles GET /api/admin/licenses requests. Every entry carries its
// computed urgency tier.
func (h *LicenseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	licenses, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, licenses)
}

// GetByID handles GET /api/admin/licenses/{id} requests.
func (h *LicenseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	l, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, l)
}

// Create handles POST /api/admin/licenses requests.
func (h *LicenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.SoldLicenseInput
	if err := decodeJSON(r, &input); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	l, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, l)
}

// Update handles PATCH /api/admin/licenses/{id} requests.
func (h *LicenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	var input model.SoldLicenseInput
	if err := decodeJSON(r, &input); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	l, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, l)
}

// Delete handles DELETE /api/admin/licenses/{id} requests.
func (h *LicenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Expiring handles GET /api/admin/licenses/expiring?days=N requests.
func (h *LicenseHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", license.DefaultExpiringWindow)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid days parameter", h.logger)
		return
	}

	licenses, err := h.service.Expiring(r.Context(), days)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, licenses)
}
