package domain

// HomepageHandle is the collection handle featured on the landing page
const HomepageHandle = "homepage"

// Shop represents the storefront's shop metadata
type Shop struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MoneyFormat string `json:"moneyFormat"`
}

// Image represents a product, variant or collection image
type Image struct {
	ID      string `json:"id"`
	Src     string `json:"src"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Collection represents a curated group of products
type Collection struct {
	ID              string `json:"id"`
	Handle          string `json:"handle"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
	Image           *Image `json:"image,omitempty"`
}

// SplitHomepage separates the homepage collection from the navigable ones
func SplitHomepage(collections []Collection) (*Collection, []Collection) {
	var homepage *Collection
	rest := make([]Collection, 0, len(collections))
	for i := range collections {
		if collections[i].Handle == HomepageHandle && homepage == nil {
			c := collections[i]
			homepage = &c
			continue
		}
		rest = append(rest, collections[i])
	}
	return homepage, rest
}

// ImageSrcOr returns the image source or a fallback when the image is missing
func ImageSrcOr(img *Image, fallback string) string {
	if img == nil || img.Src == "" {
		return fallback
	}
	return img.Src
}
