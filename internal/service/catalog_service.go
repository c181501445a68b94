package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"shoppy-store/internal/domain"
	"shoppy-store/internal/repository"
	"shoppy-store/internal/shopify"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShopInfo is the shop metadata together with its collections
type ShopInfo struct {
	Shop        *domain.Shop        `json:"shop"`
	Collections []domain.Collection `json:"collections"`
}

// CatalogService defines the interface for catalog reads
type CatalogService interface {
	ShopInfo(ctx context.Context) (*ShopInfo, error)
	Products(ctx context.Context, q shopify.ProductQuery) ([]domain.Product, error)
	Product(ctx context.Context, handle string) (*domain.Product, error)
	HomepageProducts(ctx context.Context, n int) ([]domain.Product, error)
}

type catalogService struct {
	client CatalogClient
	cache  repository.CatalogCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(client CatalogClient, cache repository.CatalogCache, ttl time.Duration, logger *zap.Logger) CatalogService {
	return &catalogService{
		client: client,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// ShopInfo fetches the shop and its collections concurrently
func (s *catalogService) ShopInfo(ctx context.Context) (*ShopInfo, error) {
	const key = "shop-info"

	var cached ShopInfo
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	info := &ShopInfo{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		shop, err := s.client.FetchShop(gctx)
		if err != nil {
			return err
		}
		info.Shop = shop
		return nil
	})

	g.Go(func() error {
		collections, err := s.client.FetchCollections(gctx)
		if err != nil {
			return err
		}
		info.Collections = collections
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load shop info: %w", err)
	}

	s.store(ctx, key, info)
	return info, nil
}

// Products lists products for a sort/filter combination
func (s *catalogService) Products(ctx context.Context, q shopify.ProductQuery) ([]domain.Product, error) {
	key := productsKey(q)

	var cached []domain.Product
	if s.lookup(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.client.FetchProducts(ctx, q)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, products)
	return products, nil
}

// Product fetches a product by handle
func (s *catalogService) Product(ctx context.Context, handle string) (*domain.Product, error) {
	key := "product:" + url.QueryEscape(handle)

	var cached domain.Product
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	product, err := s.client.FetchProductByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, product)
	return product, nil
}

// HomepageProducts lists the first n products in the default order
func (s *catalogService) HomepageProducts(ctx context.Context, n int) ([]domain.Product, error) {
	return s.Products(ctx, shopify.ProductQuery{First: n, SortKey: shopify.DefaultSortKey})
}

// lookup treats cache failures as misses
func (s *catalogService) lookup(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

func (s *catalogService) store(ctx context.Context, key string, value interface{}) {
	if s.ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func productsKey(q shopify.ProductQuery) string {
	v := url.Values{}
	v.Set("first", fmt.Sprint(q.First))
	v.Set("sort", q.SortKey)
	v.Set("reverse", fmt.Sprint(q.Reverse))
	v.Set("title", q.Title)
	v.Set("collection", q.Collection)
	return "products:" + v.Encode()
}
