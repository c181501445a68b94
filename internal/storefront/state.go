// Package storefront holds the application state a page renders from: the
// shop, its collections, the visitor's cart and the cart overlay flag.
package storefront

import (
	"sync"

	"shoppy-store/internal/domain"
)

// CartIDStore persists the id of the visitor's cart between page loads
type CartIDStore interface {
	SaveCartID(cartID string)
}

// Snapshot is an immutable view of State
type Snapshot struct {
	Shop        *domain.Shop
	Homepage    *domain.Collection
	Collections []domain.Collection
	Cart        *domain.Cart
	OverlayOpen bool
}

// ItemCount is the number of units in the cart
func (s Snapshot) ItemCount() int {
	return s.Cart.ItemCount()
}

// State is populated once per page load and replaced field by field as cart
// mutations complete. It never talks to the network.
type State struct {
	mu          sync.RWMutex
	shop        *domain.Shop
	homepage    *domain.Collection
	collections []domain.Collection
	cart        *domain.Cart
	overlayOpen bool

	store       CartIDStore
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// NewState creates an empty State. store may be nil.
func NewState(store CartIDStore) *State {
	return &State{
		store:       store,
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Load sets the shop and splits the homepage collection out of collections
func (s *State) Load(shop *domain.Shop, collections []domain.Collection) {
	homepage, rest := domain.SplitHomepage(collections)

	s.mu.Lock()
	s.shop = shop
	s.homepage = homepage
	s.collections = rest
	s.mu.Unlock()

	s.notify()
}

// SetCart replaces the held cart. A snapshot of the same cart carrying an
// older revision than the held one is dropped and SetCart reports false.
func (s *State) SetCart(cart *domain.Cart) bool {
	if cart == nil {
		return false
	}

	s.mu.Lock()
	if held := s.cart; held != nil && held.ID == cart.ID && cart.Revision < held.Revision {
		s.mu.Unlock()
		return false
	}
	s.cart = cart
	s.mu.Unlock()

	if s.store != nil {
		s.store.SaveCartID(cart.ID)
	}
	s.notify()
	return true
}

// SetOverlay opens or closes the cart overlay
func (s *State) SetOverlay(open bool) {
	s.mu.Lock()
	changed := s.overlayOpen != open
	s.overlayOpen = open
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Subscribe registers fn to run after every change. The returned function
// removes the subscription.
func (s *State) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// Snapshot returns the current state
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Shop:        s.shop,
		Homepage:    s.homepage,
		Collections: s.collections,
		Cart:        s.cart,
		OverlayOpen: s.overlayOpen,
	}
}

// MoneyFormat renders m times factor with the loaded shop's money template.
// Before Load it falls back to "<amount> <currency>".
func (s *State) MoneyFormat(m domain.Money, factor int) string {
	s.mu.RLock()
	template := ""
	if s.shop != nil {
		template = s.shop.MoneyFormat
	}
	s.mu.RUnlock()

	return domain.FormatMoney(m, factor, template)
}

// notify runs subscribers outside the lock so they may read State
func (s *State) notify() {
	s.mu.RLock()
	fns := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	if len(fns) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}
