package transport

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"shoppy-store/internal/domain"
	"shoppy-store/internal/middleware"
	"shoppy-store/internal/service"
	"shoppy-store/internal/shopify"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultProductCount = 20

// CatalogHandler handles HTTP requests for shop and product reads
type CatalogHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/shop", h.GetShop)
	r.Get("/products", h.ListProducts)
	r.Get("/product", h.GetProduct)
}

// GetShop returns the shop metadata and its collections
func (h *CatalogHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	info, err := h.catalog.ShopInfo(r.Context())
	if err != nil {
		respondFailure(w, h.logger, "load shop", err, service.ShopInfo{
			Shop:        &domain.Shop{},
			Collections: []domain.Collection{},
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, info)
}

// ListProducts returns products for the requested sort and filters
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := ParseProductQuery(r)

	products, err := h.catalog.Products(r.Context(), q)
	if err != nil {
		respondFailure(w, h.logger, "list products", err, map[string]interface{}{
			"products": []domain.Product{},
		})
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns one product by handle
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimSpace(r.URL.Query().Get("id"))
	if handle == "" {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "id", Message: "This field is required"},
		})
		return
	}

	product, err := h.catalog.Product(r.Context(), handle)
	if err != nil {
		respondFailure(w, h.logger, "load product", err, domain.Product{
			Options:  []domain.ProductOption{},
			Images:   []domain.Image{},
			Variants: []domain.Variant{},
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ParseProductQuery coerces listing parameters. num falls back to 20 and is
// capped at the platform page size; unknown sort keys fall back to TITLE.
func ParseProductQuery(r *http.Request) shopify.ProductQuery {
	values := r.URL.Query()

	num, err := strconv.Atoi(values.Get("num"))
	if err != nil || num <= 0 {
		num = defaultProductCount
	}
	if num > shopify.MaxPageSize {
		num = shopify.MaxPageSize
	}

	sort := strings.ToUpper(strings.TrimSpace(values.Get("sort")))
	if !slices.Contains(shopify.ProductSortKeys, sort) {
		sort = shopify.DefaultSortKey
	}

	return shopify.ProductQuery{
		First:      num,
		SortKey:    sort,
		Reverse:    values.Get("reverse") == "yes",
		Title:      values.Get("title"),
		Collection: strings.TrimSpace(values.Get("collection")),
	}
}
