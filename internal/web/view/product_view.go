package view

import (
	"net/url"

	"shoppy-store/internal/domain"
)

// PlaceholderImage is shown when a product or variant has no image
const PlaceholderImage = "/static/placeholder.svg"

// OptionValueView is one selectable option value
type OptionValueView struct {
	Value    string
	Selected bool
	Href     string
}

// OptionView is one option with its values
type OptionView struct {
	Name   string
	Values []OptionValueView
}

// ProductView is the rendered product detail page
type ProductView struct {
	Product     *domain.Product
	Options     []OptionView
	Variant     *domain.Variant
	Price       string
	CompareAt   string
	OnSale      bool
	OutOfStock  bool
	Unavailable bool
	CanAdd      bool
	ImageSrc    string
	ImageAlt    string
	Quantity    *QuantityInput
}

// NewProductView resolves the selection from the query and derives what the
// page shows. A selection matching no variant renders as unavailable.
func NewProductView(product *domain.Product, query url.Values, format MoneyFormatter) ProductView {
	sel := SelectionFromQuery(product, query)
	variant := ResolveVariant(product, sel)

	out := ProductView{
		Product:     product,
		Options:     optionViews(product, sel),
		Variant:     variant,
		Unavailable: variant == nil,
		Quantity:    NewQuantityInput(domain.MinLineQuantity),
	}

	if q, ok := ParseQuantity(query.Get("quantity")); ok {
		out.Quantity = NewQuantityInput(q)
	}

	image := product.FirstImage()
	if variant != nil {
		out.Price = format(variant.Price, 1)
		out.OnSale = variant.OnSale()
		if out.OnSale {
			out.CompareAt = format(*variant.CompareAtPrice, 1)
		}
		out.OutOfStock = !variant.Available
		out.CanAdd = variant.Available
		if variant.Image != nil {
			image = variant.Image
		}
	}

	out.ImageSrc = domain.ImageSrcOr(image, PlaceholderImage)
	if image != nil {
		out.ImageAlt = image.AltText
	}

	return out
}

func optionViews(product *domain.Product, sel Selection) []OptionView {
	views := make([]OptionView, 0, len(product.Options))
	for _, option := range product.Options {
		ov := OptionView{Name: option.Name}
		for _, value := range option.Values {
			q := url.Values{}
			for name, chosen := range sel {
				q.Set(name, chosen)
			}
			q.Set(option.Name, value)
			ov.Values = append(ov.Values, OptionValueView{
				Value:    value,
				Selected: sel[option.Name] == value,
				Href:     "/product/" + url.PathEscape(product.Handle) + "?" + q.Encode(),
			})
		}
		views = append(views, ov)
	}
	return views
}
