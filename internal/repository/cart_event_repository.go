package repository

import (
	"context"
	"database/sql"
	"fmt"

	"shoppy-store/internal/domain"
)

// CartEventRepository defines the interface for the cart event journal
type CartEventRepository interface {
	Append(ctx context.Context, event *domain.CartEvent) error
	ListByCart(ctx context.Context, cartID string, limit int) ([]*domain.CartEvent, error)
}

type cartEventRepository struct {
	db *sql.DB
}

// NewCartEventRepository creates a new instance of CartEventRepository
func NewCartEventRepository(db *sql.DB) CartEventRepository {
	return &cartEventRepository{db: db}
}

// Append inserts an event using parameterized queries
func (r *cartEventRepository) Append(ctx context.Context, event *domain.CartEvent) error {
	query := `
		INSERT INTO cart_events (id, cart_id, action, line_item_id, variant_id, quantity, revision, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.CartID,
		string(event.Action),
		event.LineItemID,
		event.VariantID,
		event.Quantity,
		event.Revision,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append cart event: %w", err)
	}

	return nil
}

// ListByCart returns the most recent events of a cart, newest first
func (r *cartEventRepository) ListByCart(ctx context.Context, cartID string, limit int) ([]*domain.CartEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, cart_id, action, line_item_id, variant_id, quantity, revision, created_at
		FROM cart_events
		WHERE cart_id = $1
		ORDER BY created_at DESC, revision DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, cartID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart events: %w", err)
	}
	defer rows.Close()

	var events []*domain.CartEvent
	for rows.Next() {
		event := &domain.CartEvent{}
		var action string
		if err := rows.Scan(
			&event.ID,
			&event.CartID,
			&action,
			&event.LineItemID,
			&event.VariantID,
			&event.Quantity,
			&event.Revision,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart event: %w", err)
		}
		event.Action = domain.CartAction(action)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart events: %w", err)
	}

	return events, nil
}

type noopCartEventRepository struct{}

// NewNoopCartEventRepository returns a journal that discards every event
func NewNoopCartEventRepository() CartEventRepository {
	return noopCartEventRepository{}
}

func (noopCartEventRepository) Append(context.Context, *domain.CartEvent) error { return nil }

func (noopCartEventRepository) ListByCart(context.Context, string, int) ([]*domain.CartEvent, error) {
	return nil, nil
}
