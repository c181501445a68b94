package view

import (
	"shoppy-store/internal/domain"
)

// LineView is one rendered cart line
type LineView struct {
	Item      domain.LineItem
	Quantity  *QuantityInput
	UnitPrice string
	LineTotal string
	ImageSrc  string
	ImageAlt  string
	Handle    string
	Decrement int
	Increment int
}

// CartView is the rendered cart. While Updating the line list is dimmed and
// every mutation control is disabled.
type CartView struct {
	ID       string
	Lines    []LineView
	Subtotal string
	WebURL   string
	Updating bool
}

// Empty reports whether the cart has no lines
func (c CartView) Empty() bool {
	return len(c.Lines) == 0
}

// ControlsDisabled reports whether mutation buttons are disabled
func (c CartView) ControlsDisabled() bool {
	return c.Updating
}

// ListClass dims the line list while a mutation is in flight
func (c CartView) ListClass() string {
	if c.Updating {
		return "cart-lines updating"
	}
	return "cart-lines"
}

// MoneyFormatter renders an amount times a factor
type MoneyFormatter func(m domain.Money, factor int) string

// NewCartView builds the view of cart. Lines whose variant was deleted are
// skipped.
func NewCartView(cart *domain.Cart, format MoneyFormatter, updating bool) CartView {
	if cart == nil {
		return CartView{Updating: updating}
	}

	out := CartView{
		ID:       cart.ID,
		Lines:    make([]LineView, 0, len(cart.LineItems)),
		Subtotal: format(cart.SubtotalPrice, 1),
		WebURL:   cart.WebURL,
		Updating: updating,
	}

	for _, item := range cart.LineItems {
		if item.Variant == nil {
			continue
		}
		line := LineView{
			Item:      item,
			Quantity:  NewQuantityInput(item.Quantity),
			UnitPrice: format(item.Variant.Price, 1),
			LineTotal: format(item.Variant.Price, item.Quantity),
			ImageSrc:  domain.ImageSrcOr(item.Variant.Image, PlaceholderImage),
			ImageAlt:  item.Variant.Title,
			Handle:    item.Variant.Product.Handle,
			Decrement: domain.ClampQuantity(item.Quantity - 1),
			Increment: domain.ClampQuantity(item.Quantity + 1),
		}
		if item.Variant.Image != nil && item.Variant.Image.AltText != "" {
			line.ImageAlt = item.Variant.Image.AltText
		}
		out.Lines = append(out.Lines, line)
	}

	return out
}
