package handler

import (
	"net/http"
	"strconv"

	"licenseshop/internal/cart"
	"licenseshop/internal/catalog"
	"licenseshop/internal/model"
	"licenseshop/internal/service"

	"github.com/rs/zerolog"
)

// CartIDHeader carries the client-chosen cart identity. Carts are disposable
// convenience state; any opaque identifier works.
const CartIDHeader = "X-Cart-ID"

// CartHandler binds the cart engine to HTTP. Each request loads the cart,
// applies one mutation and writes the full line list back.
type CartHandler struct {
	store    cart.Store
	products service.ProductService
	catalog  service.CatalogService
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(store cart.Store, products service.ProductService, catalogSvc service.CatalogService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		store:    store,
		products: products,
		catalog:  catalogSvc,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// cartResponse is the cart as returned to clients.
type cartResponse struct {
	Items []cart.Line `json:"items"`
	Total int64       `json:"total"`
	Count int         `json:"count"`
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	c := h.load(r, cartID)
	writeJSON(w, http.StatusOK, h.view(c))
}

// addRequest is the body of an add-to-cart request. Selection maps variant
// id to option id; the configured price is resolved server-side.
type addRequest struct {
	ProductID int64           `json:"productId"`
	Selection map[int64]int64 `json:"selection"`
}

// AddItem handles POST /api/cart/items requests. The unit price for the
// configuration is resolved at add time and captured on the line.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req addRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	resolution, err := h.catalog.ResolvePrice(r.Context(), req.ProductID, catalog.Combination(req.Selection))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	variants, err := h.catalog.ListVariants(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.products.Get(r.Context(), strconv.FormatInt(req.ProductID, 10))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	c := h.load(r, cartID)
	c.Add(*product, selections(variants, req.Selection), resolution.Price)

	if !h.save(w, r, cartID, c) {
		return
	}
	writeJSON(w, http.StatusOK, h.view(c))
}

// updateRequest is the body of a quantity update or remove request. A nil
// Key matches every line for the product.
type updateRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Key       *string `json:"key,omitempty"`
}

// UpdateItem handles PATCH /api/cart/items requests. A quantity at or below
// zero removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	c := h.load(r, cartID)
	c.UpdateQuantity(req.ProductID, req.Quantity, req.Key)

	if !h.save(w, r, cartID, c) {
		return
	}
	writeJSON(w, http.StatusOK, h.view(c))
}

// RemoveItem handles DELETE /api/cart/items requests. Without a key query
// parameter every line for the product is removed.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(r.URL.Query().Get("productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid productId parameter", h.logger)
		return
	}

	var key *string
	if raw := r.URL.Query().Get("key"); raw != "" {
		key = &raw
	}

	c := h.load(r, cartID)
	c.Remove(productID, key)

	if !h.save(w, r, cartID, c) {
		return
	}
	writeJSON(w, http.StatusOK, h.view(c))
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), cartID); err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to clear cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{Items: []cart.Line{}})
}

func (h *CartHandler) cartID(w http.ResponseWriter, r *http.Request) (string, bool) {
	cartID := r.Header.Get(CartIDHeader)
	if cartID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "X-Cart-ID header is required", h.logger)
		return "", false
	}
	return cartID, true
}

// load fetches the persisted cart. An unreachable store degrades to an empty
// cart rather than failing the read.
func (h *CartHandler) load(r *http.Request, cartID string) *cart.Cart {
	lines, err := h.store.Load(r.Context(), cartID)
	if err != nil {
		h.logger.Warn().Err(err).Str("cart_id", cartID).Msg("cart load failed, starting empty")
		return cart.New()
	}
	return cart.Restore(lines)
}

func (h *CartHandler) save(w http.ResponseWriter, r *http.Request, cartID string, c *cart.Cart) bool {
	if err := h.store.Save(r.Context(), cartID, c.Lines()); err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to save cart", h.logger)
		return false
	}
	return true
}

func (h *CartHandler) view(c *cart.Cart) cartResponse {
	return cartResponse{Items: c.Lines(), Total: c.Total(), Count: c.Count()}
}

// selections joins a raw variant-to-option assignment with the live variant
// set to capture display names on the cart line.
func selections(variants []model.Variant, selection map[int64]int64) []cart.Selection {
	out := make([]cart.Selection, 0, len(selection))
	for _, v := range variants {
		optionID, ok := selection[v.ID]
		if !ok {
			continue
		}
		for _, opt := range v.Options {
			if opt.ID == optionID {
				out = append(out, cart.Selection{
					VariantID:   v.ID,
					VariantName: v.Name,
					OptionID:    opt.ID,
					OptionValue: opt.Value,
				})
				break
			}
		}
	}
	return out
}
