// Package web serves the server-rendered storefront pages.
package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"shoppy-store/internal/domain"
	"shoppy-store/internal/middleware"
	"shoppy-store/internal/service"
	"shoppy-store/internal/storefront"
	"shoppy-store/internal/web/view"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const homepageProductCount = 6

// Handler renders storefront pages and handles cart form posts
type Handler struct {
	catalog       service.CatalogService
	carts         service.CartService
	renderer      *renderer
	secureCookies bool
	logger        *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(catalog service.CatalogService, carts service.CartService, secureCookies bool, logger *zap.Logger) (*Handler, error) {
	r, err := newRenderer(logger)
	if err != nil {
		return nil, err
	}

	return &Handler{
		catalog:       catalog,
		carts:         carts,
		renderer:      r,
		secureCookies: secureCookies,
		logger:        logger,
	}, nil
}

// RegisterRoutes registers all page and form routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Handle("/static/*", staticHandler())

	r.Get("/", h.Home)
	r.Get("/catalog", h.Catalog)
	r.Get("/catalog/{handle}", h.Catalog)
	r.Get("/product/{handle}", h.Product)
	r.Get("/cart", h.Cart)

	r.Post("/cart/add", h.AddToCart)
	r.Post("/cart/lines/{id}/quantity", h.UpdateQuantity)
	r.Post("/cart/lines/{id}/remove", h.RemoveLine)
}

// loadState builds the page state: shop info and the visitor's cart. Failures
// leave the corresponding fields empty.
func (h *Handler) loadState(w http.ResponseWriter, r *http.Request) *storefront.State {
	state := storefront.NewState(middleware.NewCartCookieStore(w, h.secureCookies))

	if info, err := h.catalog.ShopInfo(r.Context()); err != nil {
		h.logger.Warn("Failed to load shop info", zap.Error(err))
	} else {
		state.Load(info.Shop, info.Collections)
	}

	cart, _, err := h.carts.GetOrCreate(r.Context(), middleware.CartIDFromCookie(r))
	if err != nil {
		h.logger.Warn("Failed to load cart", zap.Error(err))
	} else {
		state.SetCart(cart)
	}

	state.SetOverlay(r.URL.Query().Get("overlay") == "open")
	return state
}

func (h *Handler) page(r *http.Request, state *storefront.State, title string, data interface{}) Page {
	snap := state.Snapshot()
	return Page{
		Title:       title,
		State:       snap,
		Overlay:     view.NewCartView(snap.Cart, state.MoneyFormat, h.pending(snap.Cart)),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
}

// pending reports whether another request is still mutating cart
func (h *Handler) pending(cart *domain.Cart) bool {
	return cart != nil && h.carts.Pending(cart.ID)
}

type homeData struct {
	Products []view.ProductCard
	Failed   bool
}

// Home renders the landing page
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	state := h.loadState(w, r)

	data := homeData{}
	products, err := h.catalog.HomepageProducts(r.Context(), homepageProductCount)
	if err != nil {
		h.logger.Warn("Failed to load homepage products", zap.Error(err))
		data.Failed = true
	} else {
		data.Products = view.NewProductCards(products, state.MoneyFormat)
	}

	h.renderer.render(w, http.StatusOK, "index", h.page(r, state, "Home", data))
}

type catalogData struct {
	Search           string
	Sorts            []view.SortOption
	Collection       *domain.Collection
	CollectionHandle string
	Products         []view.ProductCard
	Failed           bool
}

// Catalog renders the product listing with search, sort and collection filter
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	state := h.loadState(w, r)
	query := r.URL.Query()
	handle := chi.URLParam(r, "handle")

	data := catalogData{
		Search:           query.Get("search"),
		Sorts:            view.SortOptions(query.Get("sort")),
		CollectionHandle: handle,
	}
	if handle != "" {
		data.Search = ""
	}
	collections := state.Snapshot().Collections
	for i := range collections {
		if collections[i].Handle == handle {
			data.Collection = &collections[i]
		}
	}

	status := http.StatusOK
	products, err := h.catalog.Products(r.Context(), view.CatalogQuery(data.Search, query.Get("sort"), handle))
	if err != nil {
		h.logger.Warn("Failed to load catalog", zap.String("collection", handle), zap.Error(err))
		data.Failed = true
		status = statusFor(err)
	} else {
		data.Products = view.NewProductCards(products, state.MoneyFormat)
	}

	title := "Catalog"
	if data.Collection != nil {
		title = data.Collection.Title
	}
	h.renderer.render(w, status, "catalog", h.page(r, state, title, data))
}

// Product renders the product detail page
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	state := h.loadState(w, r)
	handle := chi.URLParam(r, "handle")

	product, err := h.catalog.Product(r.Context(), handle)
	if err != nil {
		h.logger.Warn("Failed to load product", zap.String("handle", handle), zap.Error(err))
		status := statusFor(err)
		message := "Something went wrong while loading this product."
		if status == http.StatusNotFound {
			message = "This product does not exist."
		}
		h.renderer.render(w, status, "error", h.page(r, state, "Product unavailable", message))
		return
	}

	pv := view.NewProductView(product, r.URL.Query(), state.MoneyFormat)
	h.renderer.render(w, http.StatusOK, "product", h.page(r, state, product.Title, pv))
}

// Cart renders the cart page
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	state := h.loadState(w, r)
	snap := state.Snapshot()

	if snap.Cart == nil {
		h.renderer.render(w, http.StatusInternalServerError, "error",
			h.page(r, state, "Cart unavailable", "Your cart could not be loaded."))
		return
	}

	cv := view.NewCartView(snap.Cart, state.MoneyFormat, h.pending(snap.Cart))
	h.renderer.render(w, http.StatusOK, "cart", h.page(r, state, "Your Cart", cv))
}

// AddToCart adds the submitted variant and opens the cart overlay on the
// product page. An unparsable quantity returns to the product page untouched.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	back := "/catalog"
	if handle := strings.TrimSpace(r.PostFormValue("product")); handle != "" {
		back = "/product/" + url.PathEscape(handle)
	}

	variantID := r.PostFormValue("variant")
	quantity, ok := view.ParseQuantity(r.PostFormValue("quantity"))
	if !ok || variantID == "" {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	err := h.mutate(w, r, func(ctx context.Context, cartID string) (*domain.Cart, error) {
		return h.carts.AddLine(ctx, cartID, variantID, quantity)
	})
	if err != nil {
		h.failMutation(w, r, err)
		return
	}

	http.Redirect(w, r, back+"?overlay=open", http.StatusSeeOther)
}

// UpdateQuantity applies a stepper click or a typed quantity. Typed text that
// does not parse, or equals the committed quantity, causes no update.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	lineID := chi.URLParam(r, "id")

	committed, ok := view.ParseQuantity(r.PostFormValue("committed"))
	if !ok {
		committed = domain.MinLineQuantity
	}
	input := view.NewQuantityInput(committed)

	// Enter in the text field submits apply; the stepper buttons submit set
	text := r.PostFormValue("quantity")
	if set := r.PostFormValue("set"); set != "" && r.PostFormValue("apply") == "" {
		text = set
	}
	quantity, update := input.Blur(text)
	if !update {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	err := h.mutate(w, r, func(ctx context.Context, cartID string) (*domain.Cart, error) {
		return h.carts.UpdateLine(ctx, cartID, lineID, quantity)
	})
	if err != nil {
		h.failMutation(w, r, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// RemoveLine removes a line and returns to the cart
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "id")

	err := h.mutate(w, r, func(ctx context.Context, cartID string) (*domain.Cart, error) {
		return h.carts.RemoveLine(ctx, cartID, lineID)
	})
	if err != nil {
		h.failMutation(w, r, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// mutate resolves the visitor's cart, runs fn against it and stores the
// resulting cart id
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, cartID string) (*domain.Cart, error)) error {
	ctx := r.Context()

	cartID := middleware.CartIDFromCookie(r)
	if cartID == "" {
		cart, err := h.carts.Create(ctx)
		if err != nil {
			return err
		}
		cartID = cart.ID
	}

	cart, err := fn(ctx, cartID)
	if errors.Is(err, domain.ErrNotFound) {
		// stale cookie
		fresh, createErr := h.carts.Create(ctx)
		if createErr != nil {
			return createErr
		}
		cart, err = fn(ctx, fresh.ID)
	}
	if err != nil {
		return err
	}

	state := storefront.NewState(middleware.NewCartCookieStore(w, h.secureCookies))
	state.SetCart(cart)
	return nil
}

func (h *Handler) failMutation(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("Cart update failed", zap.String("path", r.URL.Path), zap.Error(err))

	state := storefront.NewState(nil)
	h.renderer.render(w, statusFor(err), "error",
		h.page(r, state, "Cart update failed", "Your cart could not be updated."))
}

func statusFor(err error) int {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
