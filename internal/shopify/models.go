package shopify

import "shoppy-store/internal/domain"

// connection is the Relay-style edges/node wrapper used by every list field
type connection[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

func (c connection[T]) nodes() []T {
	out := make([]T, 0, len(c.Edges))
	for _, edge := range c.Edges {
		out = append(out, edge.Node)
	}
	return out
}

type moneyNode struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

func (m *moneyNode) toDomain() domain.Money {
	if m == nil {
		return domain.Money{}
	}
	return domain.Money{Amount: m.Amount, CurrencyCode: m.CurrencyCode}
}

type imageNode struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

func (i *imageNode) toDomain() *domain.Image {
	if i == nil {
		return nil
	}
	return &domain.Image{ID: i.ID, Src: i.URL, AltText: i.AltText, Width: i.Width, Height: i.Height}
}

type variantNode struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	AvailableForSale bool       `json:"availableForSale"`
	Image            *imageNode `json:"image"`
	Price            moneyNode  `json:"price"`
	CompareAtPrice   *moneyNode `json:"compareAtPrice"`
	SelectedOptions  []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions"`
	Product struct {
		ID     string `json:"id"`
		Handle string `json:"handle"`
	} `json:"product"`
}

func (v *variantNode) toDomain() *domain.Variant {
	if v == nil {
		return nil
	}
	out := &domain.Variant{
		ID:        v.ID,
		Title:     v.Title,
		Available: v.AvailableForSale,
		Image:     v.Image.toDomain(),
		Price:     v.Price.toDomain(),
		Product:   domain.ProductRef{ID: v.Product.ID, Handle: v.Product.Handle},
	}
	if v.CompareAtPrice != nil {
		compareAt := v.CompareAtPrice.toDomain()
		out.CompareAtPrice = &compareAt
	}
	for _, opt := range v.SelectedOptions {
		out.SelectedOptions = append(out.SelectedOptions, domain.SelectedOption{Name: opt.Name, Value: opt.Value})
	}
	return out
}

type productNode struct {
	ID               string `json:"id"`
	Handle           string `json:"handle"`
	Title            string `json:"title"`
	AvailableForSale bool   `json:"availableForSale"`
	Description      string `json:"description"`
	DescriptionHTML  string `json:"descriptionHtml"`
	Options          []struct {
		ID     string   `json:"id"`
		Name   string   `json:"name"`
		Values []string `json:"values"`
	} `json:"options"`
	Images   connection[imageNode]   `json:"images"`
	Variants connection[variantNode] `json:"variants"`
}

func (p *productNode) toDomain() *domain.Product {
	out := &domain.Product{
		ID:               p.ID,
		Handle:           p.Handle,
		Title:            p.Title,
		AvailableForSale: p.AvailableForSale,
		Description:      p.Description,
		DescriptionHTML:  p.DescriptionHTML,
		Options:          make([]domain.ProductOption, 0, len(p.Options)),
		Images:           []domain.Image{},
		Variants:         []domain.Variant{},
	}
	for _, opt := range p.Options {
		out.Options = append(out.Options, domain.ProductOption{ID: opt.ID, Name: opt.Name, Values: opt.Values})
	}
	for _, img := range p.Images.nodes() {
		out.Images = append(out.Images, *img.toDomain())
	}
	for _, v := range p.Variants.nodes() {
		out.Variants = append(out.Variants, *v.toDomain())
	}
	return out
}

type collectionNode struct {
	ID              string     `json:"id"`
	Handle          string     `json:"handle"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"descriptionHtml"`
	Image           *imageNode `json:"image"`
}

func (c *collectionNode) toDomain() domain.Collection {
	return domain.Collection{
		ID:              c.ID,
		Handle:          c.Handle,
		Title:           c.Title,
		Description:     c.Description,
		DescriptionHTML: c.DescriptionHTML,
		Image:           c.Image.toDomain(),
	}
}

type lineItemNode struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Quantity int          `json:"quantity"`
	Variant  *variantNode `json:"variant"`
}

type checkoutNode struct {
	ID                     string                   `json:"id"`
	WebURL                 string                   `json:"webUrl"`
	PaymentDue             *moneyNode               `json:"paymentDue"`
	TotalTax               *moneyNode               `json:"totalTax"`
	LineItemsSubtotalPrice *moneyNode               `json:"lineItemsSubtotalPrice"`
	SubtotalPrice          *moneyNode               `json:"subtotalPrice"`
	TotalPrice             *moneyNode               `json:"totalPrice"`
	LineItems              connection[lineItemNode] `json:"lineItems"`
}

// toDomain keeps line items with deleted variants; callers decide whether
// to filter them.
func (c *checkoutNode) toDomain() *domain.Cart {
	out := &domain.Cart{
		ID:                     c.ID,
		WebURL:                 c.WebURL,
		PaymentDue:             c.PaymentDue.toDomain(),
		TotalTax:               c.TotalTax.toDomain(),
		LineItemsSubtotalPrice: c.LineItemsSubtotalPrice.toDomain(),
		SubtotalPrice:          c.SubtotalPrice.toDomain(),
		TotalPrice:             c.TotalPrice.toDomain(),
		LineItems:              []domain.LineItem{},
	}
	for _, item := range c.LineItems.nodes() {
		out.LineItems = append(out.LineItems, domain.LineItem{
			ID:       item.ID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Variant:  item.Variant.toDomain(),
		})
	}
	return out
}

// checkoutPayload is the common shape of every checkout mutation result
type checkoutPayload struct {
	Checkout   *checkoutNode `json:"checkout"`
	UserErrors []UserError   `json:"checkoutUserErrors"`
}
