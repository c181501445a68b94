package service

import (
	"context"

	"shoppy-store/internal/domain"
	"shoppy-store/internal/shopify"
)

// CatalogClient is the read side of the commerce platform
type CatalogClient interface {
	FetchShop(ctx context.Context) (*domain.Shop, error)
	FetchCollections(ctx context.Context) ([]domain.Collection, error)
	FetchProductByHandle(ctx context.Context, handle string) (*domain.Product, error)
	FetchProducts(ctx context.Context, q shopify.ProductQuery) ([]domain.Product, error)
}

// CheckoutClient is the checkout lifecycle of the commerce platform
type CheckoutClient interface {
	CreateCheckout(ctx context.Context) (*domain.Cart, error)
	FetchCheckout(ctx context.Context, id string) (*domain.Cart, error)
	AddLineItems(ctx context.Context, checkoutID string, items []shopify.LineItemInput) (*domain.Cart, error)
	UpdateLineItems(ctx context.Context, checkoutID string, items []shopify.LineItemUpdateInput) (*domain.Cart, error)
	RemoveLineItems(ctx context.Context, checkoutID string, lineItemIDs []string) (*domain.Cart, error)
}
