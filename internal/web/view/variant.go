// Package view holds the presentation logic behind the storefront pages.
// Nothing here touches the network.
package view

import (
	"net/url"
	"strings"

	"shoppy-store/internal/domain"
)

// VariantTitleSeparator joins option values in a variant's title
const VariantTitleSeparator = " / "

// Selection maps an option name to the chosen value
type Selection map[string]string

// DefaultSelection picks the first value of every option
func DefaultSelection(product *domain.Product) Selection {
	sel := make(Selection, len(product.Options))
	for _, option := range product.Options {
		if len(option.Values) > 0 {
			sel[option.Name] = option.Values[0]
		}
	}
	return sel
}

// SelectionFromQuery starts from the default selection and applies every
// query parameter naming an option with one of its values. Unknown options or
// values are ignored.
func SelectionFromQuery(product *domain.Product, query url.Values) Selection {
	sel := DefaultSelection(product)
	for _, option := range product.Options {
		chosen := query.Get(option.Name)
		for _, v := range option.Values {
			if v == chosen {
				sel[option.Name] = v
				break
			}
		}
	}
	return sel
}

// ResolveVariant finds the variant whose recorded option values equal the
// selection. Variants without recorded options are matched by title, the
// selected values joined in option order. No match yields nil.
func ResolveVariant(product *domain.Product, sel Selection) *domain.Variant {
	title := selectionTitle(product, sel)

	for i := range product.Variants {
		v := &product.Variants[i]
		if len(v.SelectedOptions) == 0 {
			if v.Title == title {
				return v
			}
			continue
		}
		if matchesOptions(v, sel) {
			return v
		}
	}
	return nil
}

func matchesOptions(v *domain.Variant, sel Selection) bool {
	if len(v.SelectedOptions) != len(sel) {
		return false
	}
	for _, opt := range v.SelectedOptions {
		chosen, ok := sel[opt.Name]
		if !ok || chosen != opt.Value {
			return false
		}
	}
	return true
}

func selectionTitle(product *domain.Product, sel Selection) string {
	parts := make([]string, 0, len(product.Options))
	for _, option := range product.Options {
		parts = append(parts, sel[option.Name])
	}
	return strings.Join(parts, VariantTitleSeparator)
}
