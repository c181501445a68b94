package shopify

import (
	"context"
	"fmt"

	"shoppy-store/internal/domain"
)

// CreateCheckout creates an empty checkout
func (c *Client) CreateCheckout(ctx context.Context) (*domain.Cart, error) {
	var data struct {
		Payload checkoutPayload `json:"checkoutCreate"`
	}
	vars := map[string]interface{}{
		"input": map[string]interface{}{"lineItems": []LineItemInput{}},
	}
	if err := c.Execute(ctx, CheckoutCreateMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}
	return data.Payload.cart("checkoutCreate")
}

// FetchCheckout fetches a checkout by id. An unknown id yields
// domain.ErrNotFound.
func (c *Client) FetchCheckout(ctx context.Context, id string) (*domain.Cart, error) {
	var data struct {
		Node *checkoutNode `json:"node"`
	}
	if err := c.Execute(ctx, CheckoutQuery, map[string]interface{}{"id": id}, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch checkout: %w", err)
	}
	// node() on a non-checkout id decodes into an empty object
	if data.Node == nil || data.Node.ID == "" {
		return nil, fmt.Errorf("checkout %q: %w", id, domain.ErrNotFound)
	}
	return data.Node.toDomain(), nil
}

// AddLineItems adds variants to a checkout
func (c *Client) AddLineItems(ctx context.Context, checkoutID string, items []LineItemInput) (*domain.Cart, error) {
	var data struct {
		Payload checkoutPayload `json:"checkoutLineItemsAdd"`
	}
	vars := map[string]interface{}{"checkoutId": checkoutID, "lineItems": items}
	if err := c.Execute(ctx, CheckoutLineItemsAddMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("failed to add line items: %w", err)
	}
	return data.Payload.cart("checkoutLineItemsAdd")
}

// UpdateLineItems sets quantities of existing line items
func (c *Client) UpdateLineItems(ctx context.Context, checkoutID string, items []LineItemUpdateInput) (*domain.Cart, error) {
	var data struct {
		Payload checkoutPayload `json:"checkoutLineItemsUpdate"`
	}
	vars := map[string]interface{}{"checkoutId": checkoutID, "lineItems": items}
	if err := c.Execute(ctx, CheckoutLineItemsUpdateMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("failed to update line items: %w", err)
	}
	return data.Payload.cart("checkoutLineItemsUpdate")
}

// RemoveLineItems removes line items from a checkout
func (c *Client) RemoveLineItems(ctx context.Context, checkoutID string, lineItemIDs []string) (*domain.Cart, error) {
	var data struct {
		Payload checkoutPayload `json:"checkoutLineItemsRemove"`
	}
	vars := map[string]interface{}{"checkoutId": checkoutID, "lineItemIds": lineItemIDs}
	if err := c.Execute(ctx, CheckoutLineItemsRemoveMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("failed to remove line items: %w", err)
	}
	return data.Payload.cart("checkoutLineItemsRemove")
}

func (p checkoutPayload) cart(operation string) (*domain.Cart, error) {
	if len(p.UserErrors) > 0 {
		return nil, &UserErrorsError{Operation: operation, Errors: p.UserErrors}
	}
	if p.Checkout == nil {
		return nil, fmt.Errorf("shopify %s returned no checkout", operation)
	}
	return p.Checkout.toDomain(), nil
}
