package domain

const (
	// MinLineQuantity is the smallest quantity a line item may hold
	MinLineQuantity = 1
	// MaxLineQuantity is the largest quantity a line item may hold
	MaxLineQuantity = 99
)

// LineItem is one entry of a cart. Variant is nil when the variant was
// deleted on the platform.
type LineItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Quantity int      `json:"quantity"`
	Variant  *Variant `json:"variant"`
}

// Cart mirrors the platform's checkout object
type Cart struct {
	ID                     string     `json:"id"`
	LineItems              []LineItem `json:"lineItems"`
	WebURL                 string     `json:"webUrl"`
	PaymentDue             Money      `json:"paymentDue"`
	TotalTax               Money      `json:"totalTax"`
	LineItemsSubtotalPrice Money      `json:"lineItemsSubtotalPrice"`
	SubtotalPrice          Money      `json:"subtotalPrice"`
	TotalPrice             Money      `json:"totalPrice"`
	Revision               int64      `json:"revision"`
}

// ClampQuantity bounds q to [MinLineQuantity, MaxLineQuantity]
func ClampQuantity(q int) int {
	return max(MinLineQuantity, min(MaxLineQuantity, q))
}

// WithoutDeletedVariants returns a copy of the cart whose line items all
// reference a live variant
func (c *Cart) WithoutDeletedVariants() *Cart {
	if c == nil {
		return nil
	}
	out := *c
	out.LineItems = make([]LineItem, 0, len(c.LineItems))
	for _, item := range c.LineItems {
		if item.Variant == nil {
			continue
		}
		out.LineItems = append(out.LineItems, item)
	}
	return &out
}

// FindLine returns the line item with the given id
func (c *Cart) FindLine(id string) (*LineItem, bool) {
	for i := range c.LineItems {
		if c.LineItems[i].ID == id {
			return &c.LineItems[i], true
		}
	}
	return nil, false
}

// ItemCount sums the quantities of all line items
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, item := range c.LineItems {
		n += item.Quantity
	}
	return n
}
