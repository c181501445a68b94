package service

import (
	"context"
	"fmt"
	"sync"

	"shoppy-store/internal/domain"
	"shoppy-store/internal/shopify"
)

// fakeCheckout is an in-memory stand-in for the platform checkout API
type fakeCheckout struct {
	mu      sync.Mutex
	carts   map[string]*domain.Cart
	nextID  int
	writes  int
	failErr error
	// when release is set, UpdateLineItems signals entered and waits
	entered chan struct{}
	release chan struct{}
}

func newFakeCheckout() *fakeCheckout {
	return &fakeCheckout{carts: make(map[string]*domain.Cart)}
}

func (f *fakeCheckout) copyOf(c *domain.Cart) *domain.Cart {
	out := *c
	out.LineItems = append([]domain.LineItem(nil), c.LineItems...)
	return &out
}

func (f *fakeCheckout) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *fakeCheckout) CreateCheckout(_ context.Context) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	f.nextID++
	f.writes++
	id := fmt.Sprintf("gid://shopify/Checkout/%d", f.nextID)
	f.carts[id] = &domain.Cart{
		ID:         id,
		WebURL:     "https://shop.example/checkouts/" + id,
		TotalPrice: domain.Money{Amount: "0.0", CurrencyCode: "USD"},
	}
	return f.copyOf(f.carts[id]), nil
}

func (f *fakeCheckout) FetchCheckout(_ context.Context, id string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	cart, ok := f.carts[id]
	if !ok {
		return nil, fmt.Errorf("checkout %q: %w", id, domain.ErrNotFound)
	}
	return f.copyOf(cart), nil
}

func (f *fakeCheckout) AddLineItems(_ context.Context, checkoutID string, items []shopify.LineItemInput) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[checkoutID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f.writes++
	for _, item := range items {
		cart.LineItems = append(cart.LineItems, domain.LineItem{
			ID:       fmt.Sprintf("line-%d", len(cart.LineItems)+1),
			Title:    "Item " + item.VariantID,
			Quantity: item.Quantity,
			Variant:  &domain.Variant{ID: item.VariantID, Price: domain.Money{Amount: "10.00", CurrencyCode: "USD"}},
		})
	}
	return f.copyOf(cart), nil
}

func (f *fakeCheckout) UpdateLineItems(_ context.Context, checkoutID string, items []shopify.LineItemUpdateInput) (*domain.Cart, error) {
	if f.release != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[checkoutID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f.writes++
	for _, item := range items {
		for i := range cart.LineItems {
			if cart.LineItems[i].ID == item.ID {
				cart.LineItems[i].Quantity = item.Quantity
			}
		}
	}
	return f.copyOf(cart), nil
}

func (f *fakeCheckout) RemoveLineItems(_ context.Context, checkoutID string, lineItemIDs []string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[checkoutID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f.writes++
	for _, id := range lineItemIDs {
		kept := cart.LineItems[:0]
		for _, item := range cart.LineItems {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		cart.LineItems = kept
	}
	return f.copyOf(cart), nil
}

// fakeCatalog counts platform reads so cache behaviour can be observed
type fakeCatalog struct {
	mu          sync.Mutex
	calls       map[string]int
	shop        *domain.Shop
	collections []domain.Collection
	products    []domain.Product
	err         error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		calls: make(map[string]int),
		shop:  &domain.Shop{ID: "s1", Name: "Shoppy", MoneyFormat: "${{amount}}"},
		collections: []domain.Collection{
			{ID: "c1", Handle: domain.HomepageHandle, Title: "Home"},
			{ID: "c2", Handle: "boards", Title: "Boards"},
		},
		products: []domain.Product{
			{ID: "p1", Handle: "board", Title: "Board", AvailableForSale: true},
			{ID: "p2", Handle: "wax", Title: "Wax", AvailableForSale: true},
		},
	}
}

func (f *fakeCatalog) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeCatalog) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.err
}

func (f *fakeCatalog) FetchShop(_ context.Context) (*domain.Shop, error) {
	if err := f.record("shop"); err != nil {
		return nil, err
	}
	return f.shop, nil
}

func (f *fakeCatalog) FetchCollections(_ context.Context) ([]domain.Collection, error) {
	if err := f.record("collections"); err != nil {
		return nil, err
	}
	return f.collections, nil
}

func (f *fakeCatalog) FetchProductByHandle(_ context.Context, handle string) (*domain.Product, error) {
	if err := f.record("product"); err != nil {
		return nil, err
	}
	for i := range f.products {
		if f.products[i].Handle == handle {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %q: %w", handle, domain.ErrNotFound)
}

func (f *fakeCatalog) FetchProducts(_ context.Context, _ shopify.ProductQuery) ([]domain.Product, error) {
	if err := f.record("products"); err != nil {
		return nil, err
	}
	return f.products, nil
}
