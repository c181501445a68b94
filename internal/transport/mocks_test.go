package transport

import (
	"context"
	"fmt"
	"sync"

	"shoppy-store/internal/domain"
	"shoppy-store/internal/service"
	"shoppy-store/internal/shopify"
)

type mockCatalogService struct {
	info      *service.ShopInfo
	products  []domain.Product
	lastQuery shopify.ProductQuery
	err       error
}

func (m *mockCatalogService) ShopInfo(context.Context) (*service.ShopInfo, error) {
	return m.info, m.err
}

func (m *mockCatalogService) Products(_ context.Context, q shopify.ProductQuery) ([]domain.Product, error) {
	m.lastQuery = q
	return m.products, m.err
}

func (m *mockCatalogService) Product(_ context.Context, handle string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].Handle == handle {
			return &m.products[i], nil
		}
	}
	return nil, fmt.Errorf("product %q: %w", handle, domain.ErrNotFound)
}

func (m *mockCatalogService) HomepageProducts(ctx context.Context, n int) ([]domain.Product, error) {
	return m.Products(ctx, shopify.ProductQuery{First: n})
}

// mockCartService keeps carts in memory and applies the same clamping as the
// real service
type mockCartService struct {
	mu     sync.Mutex
	carts  map[string]*domain.Cart
	nextID int
	err    error
}

func newMockCartService() *mockCartService {
	return &mockCartService{carts: make(map[string]*domain.Cart)}
}

func (m *mockCartService) snapshot(c *domain.Cart) *domain.Cart {
	out := *c
	out.LineItems = append([]domain.LineItem{}, c.LineItems...)
	out.Revision++
	c.Revision = out.Revision
	return &out
}

func (m *mockCartService) GetOrCreate(ctx context.Context, cartID string) (*domain.Cart, bool, error) {
	if cart, err := m.Fetch(ctx, cartID); err == nil {
		return cart, false, nil
	} else if m.err != nil {
		return nil, false, err
	}
	cart, err := m.Create(ctx)
	return cart, err == nil, err
}

func (m *mockCartService) Create(context.Context) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	id := fmt.Sprintf("gid://shopify/Checkout/%d", m.nextID)
	m.carts[id] = &domain.Cart{ID: id, WebURL: "https://shop.example/checkouts/" + id}
	return m.snapshot(m.carts[id]), nil
}

func (m *mockCartService) Fetch(_ context.Context, cartID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m.snapshot(cart), nil
}

func (m *mockCartService) AddLine(_ context.Context, cartID, variantID string, quantity int) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cart.LineItems = append(cart.LineItems, domain.LineItem{
		ID:       fmt.Sprintf("line-%d", len(cart.LineItems)+1),
		Quantity: domain.ClampQuantity(quantity),
		Variant:  &domain.Variant{ID: variantID},
	})
	return m.snapshot(cart), nil
}

func (m *mockCartService) UpdateLine(_ context.Context, cartID, lineItemID string, quantity int) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cartID == "" {
		return nil, service.ErrMissingCartID
	}
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if line, ok := cart.FindLine(lineItemID); ok {
		line.Quantity = domain.ClampQuantity(quantity)
	}
	return m.snapshot(cart), nil
}

func (m *mockCartService) RemoveLine(_ context.Context, cartID, lineItemID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cartID == "" {
		return nil, service.ErrMissingCartID
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	kept := cart.LineItems[:0]
	for _, item := range cart.LineItems {
		if item.ID != lineItemID {
			kept = append(kept, item)
		}
	}
	cart.LineItems = kept
	return m.snapshot(cart), nil
}

func (m *mockCartService) History(_ context.Context, cartID string, _ int) ([]*domain.CartEvent, error) {
	if cartID == "" {
		return nil, service.ErrMissingCartID
	}
	return []*domain.CartEvent{{CartID: cartID, Action: domain.CartActionCreate, Revision: 1}}, nil
}

func (m *mockCartService) Pending(string) bool {
	return false
}
