package shopify

import (
	"context"
	"fmt"
	"strings"

	"shoppy-store/internal/domain"

	"go.uber.org/zap"
)

const (
	// MaxPageSize is the largest page the Storefront API serves
	MaxPageSize = 250
	// DefaultSortKey orders products alphabetically
	DefaultSortKey = "TITLE"
)

// ProductSortKeys are the sort keys accepted for storefront-wide listings
var ProductSortKeys = []string{
	"TITLE", "PRODUCT_TYPE", "VENDOR", "UPDATED_AT", "CREATED_AT",
	"BEST_SELLING", "PRICE", "ID", "RELEVANCE",
}

// collectionSortKeys maps product sort keys onto ProductCollectionSortKeys
var collectionSortKeys = map[string]string{
	"TITLE":        "TITLE",
	"PRICE":        "PRICE",
	"BEST_SELLING": "BEST_SELLING",
	"CREATED_AT":   "CREATED",
	"ID":           "ID",
	"RELEVANCE":    "RELEVANCE",
}

// ProductQuery describes a product listing request
type ProductQuery struct {
	First      int
	SortKey    string
	Reverse    bool
	Title      string // free text, escaped before it reaches the platform
	Collection string // collection handle; empty lists the whole catalog
}

// FetchShop fetches the shop metadata
func (c *Client) FetchShop(ctx context.Context) (*domain.Shop, error) {
	var data struct {
		Shop domain.Shop `json:"shop"`
	}
	if err := c.Execute(ctx, ShopQuery, nil, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch shop: %w", err)
	}
	return &data.Shop, nil
}

// FetchCollections fetches the storefront's collections
func (c *Client) FetchCollections(ctx context.Context) ([]domain.Collection, error) {
	var data struct {
		Collections connection[collectionNode] `json:"collections"`
	}
	if err := c.Execute(ctx, CollectionsQuery, map[string]interface{}{"first": MaxPageSize}, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}

	nodes := data.Collections.nodes()
	collections := make([]domain.Collection, 0, len(nodes))
	for i := range nodes {
		collections = append(collections, nodes[i].toDomain())
	}
	return collections, nil
}

// FetchProductByHandle fetches one product. An unknown handle yields
// domain.ErrNotFound.
func (c *Client) FetchProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	var data struct {
		Product *productNode `json:"product"`
	}
	if err := c.Execute(ctx, ProductByHandleQuery, map[string]interface{}{"handle": handle}, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch product %q: %w", handle, err)
	}
	if data.Product == nil {
		return nil, fmt.Errorf("product %q: %w", handle, domain.ErrNotFound)
	}
	return data.Product.toDomain(), nil
}

// FetchProducts fetches a page of products, optionally restricted to a
// collection or filtered by title text
func (c *Client) FetchProducts(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	first := q.First
	if first <= 0 || first > MaxPageSize {
		first = MaxPageSize
	}
	sortKey := strings.ToUpper(strings.TrimSpace(q.SortKey))
	if sortKey == "" {
		sortKey = DefaultSortKey
	}

	var nodes []productNode
	if q.Collection != "" {
		collectionSort, ok := collectionSortKeys[sortKey]
		if !ok {
			collectionSort = "COLLECTION_DEFAULT"
		}

		var data struct {
			Collection *struct {
				Products connection[productNode] `json:"products"`
			} `json:"collection"`
		}
		vars := map[string]interface{}{
			"handle":  q.Collection,
			"first":   first,
			"sortKey": collectionSort,
			"reverse": q.Reverse,
		}
		if err := c.Execute(ctx, CollectionProductsQuery, vars, &data); err != nil {
			return nil, fmt.Errorf("failed to fetch products of collection %q: %w", q.Collection, err)
		}
		if data.Collection == nil {
			return nil, fmt.Errorf("collection %q: %w", q.Collection, domain.ErrNotFound)
		}
		nodes = data.Collection.Products.nodes()
	} else {
		var data struct {
			Products connection[productNode] `json:"products"`
		}
		vars := map[string]interface{}{
			"first":   first,
			"sortKey": sortKey,
			"reverse": q.Reverse,
		}
		if q.Title != "" {
			vars["query"] = EscapeSearchTerm(q.Title)
		}
		if err := c.Execute(ctx, ProductsQuery, vars, &data); err != nil {
			return nil, fmt.Errorf("failed to fetch products: %w", err)
		}
		nodes = data.Products.nodes()
	}

	products := make([]domain.Product, 0, len(nodes))
	for i := range nodes {
		products = append(products, *nodes[i].toDomain())
	}

	c.logger.Debug("Fetched products",
		zap.Int("count", len(products)),
		zap.String("sort", sortKey),
		zap.String("collection", q.Collection),
	)
	return products, nil
}
