package domain

// ProductOption is a named product dimension with its allowed values in display order
type ProductOption struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// SelectedOption is one option name/value pair recorded on a variant
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductRef is the back-reference from a variant to its product
type ProductRef struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
}

// Variant is a purchasable configuration of a product
type Variant struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Available       bool             `json:"available"`
	Image           *Image           `json:"image,omitempty"`
	Price           Money            `json:"price"`
	CompareAtPrice  *Money           `json:"compareAtPrice,omitempty"`
	SelectedOptions []SelectedOption `json:"selectedOptions,omitempty"`
	Product         ProductRef       `json:"product"`
}

// OnSale reports whether the compare-at price is above the current price
func (v *Variant) OnSale() bool {
	if v == nil || v.CompareAtPrice == nil {
		return false
	}
	return v.CompareAtPrice.GreaterThan(v.Price)
}

// Product represents a catalog product as returned by the platform
type Product struct {
	ID               string          `json:"id"`
	Handle           string          `json:"handle"`
	Title            string          `json:"title"`
	AvailableForSale bool            `json:"availableForSale"`
	Description      string          `json:"description,omitempty"`
	DescriptionHTML  string          `json:"descriptionHtml,omitempty"`
	Options          []ProductOption `json:"options"`
	Images           []Image         `json:"images"`
	Variants         []Variant       `json:"variants"`
}

// FirstImage returns the product's first image, if any
func (p *Product) FirstImage() *Image {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

// LowestPrice returns the price of the cheapest variant
func (p *Product) LowestPrice() *Money {
	var lowest *Money
	for i := range p.Variants {
		price := p.Variants[i].Price
		if lowest == nil || lowest.GreaterThan(price) {
			lowest = &price
		}
	}
	return lowest
}
