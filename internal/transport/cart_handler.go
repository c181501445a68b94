package transport

import (
	"net/http"
	"strconv"
	"strings"

	"shoppy-store/internal/domain"
	"shoppy-store/internal/middleware"
	"shoppy-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddLineRequest represents the add-to-cart payload. An empty checkout falls
// back to the cart cookie, then to a new cart.
type AddLineRequest struct {
	Checkout string `json:"checkout" validate:"max=512"`
	Variant  string `json:"variant" validate:"required,max=512"`
	Quantity int    `json:"quantity"`
}

// UpdateLineRequest represents the quantity change payload
type UpdateLineRequest struct {
	Checkout string `json:"checkout" validate:"max=512"`
	LineItem string `json:"lineItem" validate:"required,max=512"`
	Quantity int    `json:"quantity"`
}

// RemoveLineRequest represents the line removal payload
type RemoveLineRequest struct {
	Checkout string `json:"checkout" validate:"max=512"`
	LineItem string `json:"lineItem" validate:"required,max=512"`
}

// CreateCheckoutResponse is returned by the checkout creation endpoint
type CreateCheckoutResponse struct {
	ID string `json:"id"`
}

// CheckoutSummary is returned by the checkout lookup endpoint
type CheckoutSummary struct {
	ID      string `json:"id"`
	WebURL  string `json:"webUrl"`
	Created bool   `json:"created"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	carts         service.CartService
	secureCookies bool
	logger        *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts service.CartService, secureCookies bool, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:         carts,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cart", h.GetCart)
	r.Get("/cart/events", h.GetCartEvents)
	r.Post("/addLine", h.AddLine)
	r.Post("/updateLine", h.UpdateLine)
	r.Post("/removeLine", h.RemoveLine)
	r.Post("/createCheckout", h.CreateCheckout)
	r.Get("/getCheckout", h.GetCheckout)
}

// GetCart returns the cart for ?id= or the cookie, creating one when neither
// names a live cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, created, err := h.carts.GetOrCreate(r.Context(), h.cartID(r, r.URL.Query().Get("id")))
	if err != nil {
		respondFailure(w, h.logger, "load cart", err, emptyCart())
		return
	}

	if created {
		h.logger.Info("Cart created", zap.String("cart_id", cart.ID))
	}
	h.respondCart(w, cart)
}

// AddLine adds a variant to the cart
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req AddLineRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeFailure(w, h.logger, err)
		return
	}

	cartID := h.cartID(r, req.Checkout)
	if cartID == "" {
		cart, err := h.carts.Create(r.Context())
		if err != nil {
			respondFailure(w, h.logger, "add line", err, emptyCart())
			return
		}
		cartID = cart.ID
	}

	cart, err := h.carts.AddLine(r.Context(), cartID, req.Variant, req.Quantity)
	if err != nil {
		respondFailure(w, h.logger, "add line", err, emptyCart())
		return
	}

	h.respondCart(w, cart)
}

// UpdateLine sets a line quantity, clamped to [1, 99]
func (h *CartHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var req UpdateLineRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeFailure(w, h.logger, err)
		return
	}

	cart, err := h.carts.UpdateLine(r.Context(), h.cartID(r, req.Checkout), req.LineItem, req.Quantity)
	if err != nil {
		respondFailure(w, h.logger, "update line", err, emptyCart())
		return
	}

	h.respondCart(w, cart)
}

// RemoveLine removes a line from the cart
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	var req RemoveLineRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeFailure(w, h.logger, err)
		return
	}

	cart, err := h.carts.RemoveLine(r.Context(), h.cartID(r, req.Checkout), req.LineItem)
	if err != nil {
		respondFailure(w, h.logger, "remove line", err, emptyCart())
		return
	}

	h.respondCart(w, cart)
}

// CreateCheckout always starts a new cart
func (h *CartHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Create(r.Context())
	if err != nil {
		respondFailure(w, h.logger, "create checkout", err, CreateCheckoutResponse{})
		return
	}

	middleware.SetCartCookie(w, cart.ID, h.secureCookies)
	middleware.RespondWithJSON(w, http.StatusOK, CreateCheckoutResponse{ID: cart.ID})
}

// GetCheckout fetches the checkout named by ?id=, or creates one when no id
// is given. An unknown id is reported, not replaced.
func (h *CartHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	var (
		cart    *domain.Cart
		created bool
		err     error
	)

	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		cart, err = h.carts.Fetch(r.Context(), id)
	} else {
		cart, err = h.carts.Create(r.Context())
		created = true
	}
	if err != nil {
		respondFailure(w, h.logger, "get checkout", err, CheckoutSummary{})
		return
	}

	middleware.SetCartCookie(w, cart.ID, h.secureCookies)
	middleware.RespondWithJSON(w, http.StatusOK, CheckoutSummary{
		ID:      cart.ID,
		WebURL:  cart.WebURL,
		Created: created,
	})
}

// GetCartEvents returns the journal of a cart, newest first
func (h *CartHandler) GetCartEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 0
	}

	events, err := h.carts.History(r.Context(), h.cartID(r, r.URL.Query().Get("id")), limit)
	if err != nil {
		respondFailure(w, h.logger, "load cart events", err, map[string]interface{}{
			"events": []*domain.CartEvent{},
		})
		return
	}

	if events == nil {
		events = []*domain.CartEvent{}
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (h *CartHandler) cartID(r *http.Request, explicit string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	return middleware.CartIDFromCookie(r)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, cart *domain.Cart) {
	middleware.SetCartCookie(w, cart.ID, h.secureCookies)
	middleware.RespondWithJSON(w, http.StatusOK, cart)
}
