package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shoppy-store/internal/domain"
	"shoppy-store/internal/repository"
	"shoppy-store/internal/shopify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrMissingCartID     = errors.New("cart id is required")
	ErrMissingVariantID  = errors.New("variant id is required")
	ErrMissingLineItemID = errors.New("line item id is required")
)

// CartService defines the interface for checkout lifecycle operations.
// Every returned cart has deleted-variant lines removed and carries a fresh
// revision.
type CartService interface {
	// GetOrCreate fetches the cart by id, creating a new one when the id is
	// empty or unknown to the platform. created reports which happened.
	GetOrCreate(ctx context.Context, cartID string) (cart *domain.Cart, created bool, err error)
	Create(ctx context.Context) (*domain.Cart, error)
	// Fetch returns the cart without falling back to creation
	Fetch(ctx context.Context, cartID string) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID, variantID string, quantity int) (*domain.Cart, error)
	UpdateLine(ctx context.Context, cartID, lineItemID string, quantity int) (*domain.Cart, error)
	RemoveLine(ctx context.Context, cartID, lineItemID string) (*domain.Cart, error)
	History(ctx context.Context, cartID string, limit int) ([]*domain.CartEvent, error)
	// Pending reports whether a mutation against the cart is in flight
	Pending(cartID string) bool
}

type cartService struct {
	client    CheckoutClient
	revisions repository.RevisionCounter
	events    repository.CartEventRepository
	locks     *cartLocks
	logger    *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(
	client CheckoutClient,
	revisions repository.RevisionCounter,
	events repository.CartEventRepository,
	logger *zap.Logger,
) CartService {
	return &cartService{
		client:    client,
		revisions: revisions,
		events:    events,
		locks:     newCartLocks(),
		logger:    logger,
	}
}

func (s *cartService) GetOrCreate(ctx context.Context, cartID string) (*domain.Cart, bool, error) {
	if cartID != "" {
		unlock := s.locks.lock(cartID)
		cart, err := s.client.FetchCheckout(ctx, cartID)
		if err == nil {
			cart, err = s.finish(ctx, cart, nil)
			unlock()
			return cart, false, err
		}
		unlock()

		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, err
		}
		s.logger.Info("Stale cart id, creating a new cart", zap.String("cart_id", cartID))
	}

	cart, err := s.Create(ctx)
	if err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

func (s *cartService) Create(ctx context.Context) (*domain.Cart, error) {
	cart, err := s.client.CreateCheckout(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(cart.ID)
	defer unlock()

	return s.finish(ctx, cart, &domain.CartEvent{Action: domain.CartActionCreate})
}

func (s *cartService) Fetch(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, ErrMissingCartID
	}

	unlock := s.locks.lock(cartID)
	defer unlock()

	cart, err := s.client.FetchCheckout(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, cart, nil)
}

// AddLine adds a variant to the cart. When the variant already has a line
// the existing line is updated instead so its quantity stays within bounds.
func (s *cartService) AddLine(ctx context.Context, cartID, variantID string, quantity int) (*domain.Cart, error) {
	if cartID == "" {
		return nil, ErrMissingCartID
	}
	if variantID == "" {
		return nil, ErrMissingVariantID
	}

	unlock := s.locks.lockForMutation(cartID)
	defer unlock()

	current, err := s.client.FetchCheckout(ctx, cartID)
	if err != nil {
		return nil, err
	}

	quantity = domain.ClampQuantity(quantity)
	event := &domain.CartEvent{Action: domain.CartActionAdd, VariantID: variantID, Quantity: quantity}

	var cart *domain.Cart
	if line, ok := lineForVariant(current, variantID); ok {
		merged := domain.ClampQuantity(line.Quantity + quantity)
		event.LineItemID = line.ID
		event.Quantity = merged
		cart, err = s.client.UpdateLineItems(ctx, cartID, []shopify.LineItemUpdateInput{{ID: line.ID, Quantity: merged}})
	} else {
		cart, err = s.client.AddLineItems(ctx, cartID, []shopify.LineItemInput{{VariantID: variantID, Quantity: quantity}})
	}
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, cart, event)
}

// UpdateLine sets the quantity of a line, clamped to [1, 99]
func (s *cartService) UpdateLine(ctx context.Context, cartID, lineItemID string, quantity int) (*domain.Cart, error) {
	if cartID == "" {
		return nil, ErrMissingCartID
	}
	if lineItemID == "" {
		return nil, ErrMissingLineItemID
	}

	unlock := s.locks.lockForMutation(cartID)
	defer unlock()

	quantity = domain.ClampQuantity(quantity)
	cart, err := s.client.UpdateLineItems(ctx, cartID, []shopify.LineItemUpdateInput{{ID: lineItemID, Quantity: quantity}})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, cart, &domain.CartEvent{Action: domain.CartActionUpdate, LineItemID: lineItemID, Quantity: quantity})
}

// RemoveLine removes a line from the cart. Removing a line that is not in
// the cart returns the cart unchanged without writing to the platform.
func (s *cartService) RemoveLine(ctx context.Context, cartID, lineItemID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, ErrMissingCartID
	}
	if lineItemID == "" {
		return nil, ErrMissingLineItemID
	}

	unlock := s.locks.lockForMutation(cartID)
	defer unlock()

	current, err := s.client.FetchCheckout(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if _, ok := current.FindLine(lineItemID); !ok {
		s.logger.Debug("Line item not in cart, nothing to remove",
			zap.String("cart_id", cartID),
			zap.String("line_item_id", lineItemID),
		)
		return s.finish(ctx, current, nil)
	}

	cart, err := s.client.RemoveLineItems(ctx, cartID, []string{lineItemID})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, cart, &domain.CartEvent{Action: domain.CartActionRemove, LineItemID: lineItemID})
}

func (s *cartService) Pending(cartID string) bool {
	return cartID != "" && s.locks.mutating(cartID)
}

func (s *cartService) History(ctx context.Context, cartID string, limit int) ([]*domain.CartEvent, error) {
	if cartID == "" {
		return nil, ErrMissingCartID
	}
	return s.events.ListByCart(ctx, cartID, limit)
}

// finish filters deleted variants, stamps a revision and journals event.
// Callers hold the cart's lock.
func (s *cartService) finish(ctx context.Context, cart *domain.Cart, event *domain.CartEvent) (*domain.Cart, error) {
	out := cart.WithoutDeletedVariants()

	revision, err := s.revisions.Next(ctx, out.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to assign cart revision: %w", err)
	}
	out.Revision = revision

	if event != nil {
		event.ID = uuid.New()
		event.CartID = out.ID
		event.Revision = revision
		event.CreatedAt = time.Now().UTC()
		if err := s.events.Append(ctx, event); err != nil {
			s.logger.Warn("Failed to journal cart event",
				zap.String("cart_id", out.ID),
				zap.String("action", string(event.Action)),
				zap.Error(err),
			)
		}
	}

	return out, nil
}

func lineForVariant(cart *domain.Cart, variantID string) (*domain.LineItem, bool) {
	for i := range cart.LineItems {
		if v := cart.LineItems[i].Variant; v != nil && v.ID == variantID {
			return &cart.LineItems[i], true
		}
	}
	return nil, false
}
