package view

import (
	"strings"

	"shoppy-store/internal/domain"
	"shoppy-store/internal/shopify"
)

// CatalogPageSize is the number of products a catalog page lists
const CatalogPageSize = 40

// SortOption is one entry of the catalog sort menu
type SortOption struct {
	Value    string
	Label    string
	SortKey  string
	Reverse  bool
	Selected bool
}

var sortOptions = []SortOption{
	{Value: "BEST_SELLING", Label: "Best selling", SortKey: "BEST_SELLING"},
	{Value: "TITLE", Label: "Alphabetically, A-Z", SortKey: "TITLE"},
	{Value: "TITLE_DESC", Label: "Alphabetically, Z-A", SortKey: "TITLE", Reverse: true},
	{Value: "PRICE", Label: "Price, low to high", SortKey: "PRICE"},
	{Value: "PRICE_DESC", Label: "Price, high to low", SortKey: "PRICE", Reverse: true},
}

// DefaultSort is used when the sort parameter is missing or unknown
const DefaultSort = "TITLE"

// SortOptions returns the sort menu with value marked selected
func SortOptions(value string) []SortOption {
	value = normalizeSort(value)
	out := make([]SortOption, len(sortOptions))
	for i, opt := range sortOptions {
		opt.Selected = opt.Value == value
		out[i] = opt
	}
	return out
}

func normalizeSort(value string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	for _, opt := range sortOptions {
		if opt.Value == value {
			return value
		}
	}
	return DefaultSort
}

// CatalogQuery builds the product query for a catalog page. Search applies
// to the whole catalog only; a collection page ignores it.
func CatalogQuery(search, sort, collection string) shopify.ProductQuery {
	sort = normalizeSort(sort)
	q := shopify.ProductQuery{
		First:      CatalogPageSize,
		Collection: collection,
	}
	if collection == "" {
		q.Title = strings.TrimSpace(search)
	}
	for _, opt := range sortOptions {
		if opt.Value == sort {
			q.SortKey = opt.SortKey
			q.Reverse = opt.Reverse
		}
	}
	return q
}

// ProductCard is one product tile
type ProductCard struct {
	Handle   string
	Title    string
	Price    string
	ImageSrc string
	ImageAlt string
	SoldOut  bool
}

// NewProductCards builds tiles for products
func NewProductCards(products []domain.Product, format MoneyFormatter) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for i := range products {
		p := &products[i]
		card := ProductCard{
			Handle:   p.Handle,
			Title:    p.Title,
			ImageSrc: domain.ImageSrcOr(p.FirstImage(), PlaceholderImage),
			SoldOut:  !p.AvailableForSale,
		}
		if img := p.FirstImage(); img != nil {
			card.ImageAlt = img.AltText
		}
		if price := p.LowestPrice(); price != nil {
			card.Price = format(*price, 1)
		}
		cards = append(cards, card)
	}
	return cards
}
