package normdoc

import (
	"net/url"
	"strings"
)

// DefaultOrigin is the document site every upstream URL must belong to.
const DefaultOrigin = "https://meganorm.ru"

// CategoryAll is the search scope covering every category.
const CategoryAll = "all"

// Category is a listing of one kind of document on the site.
type Category struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Type  DocType `json:"type"`

	// ListingPath is the listing page path relative to the origin.
	ListingPath string `json:"-"`
}

// ListingURL returns the absolute listing URL under origin.
func (c Category) ListingURL(origin string) string {
	return strings.TrimSuffix(origin, "/") + c.ListingPath
}

// DefaultCategories lists the supported categories in display order.
var DefaultCategories = []Category{
	{Key: "gost", Label: "ГОСТы и стандарты", Type: DocTypeGOST, ListingPath: "/mega_doc/fire/standart/standart_0.html"},
	{Key: "federal-laws", Label: "Федеральные законы", Type: DocTypeFederalLaw, ListingPath: "/mega_doc/fire/federalnyj-zakon/federalnyj-zakon_0.html"},
	{Key: "orders", Label: "Приказы", Type: DocTypeOrder, ListingPath: "/mega_doc/fire/prikaz/prikaz_0.html"},
	{Key: "resolutions", Label: "Постановления", Type: DocTypeResolution, ListingPath: "/mega_doc/fire/postanovlenie/postanovlenie_0.html"},
}

// FindCategory returns the category with the given key.
func FindCategory(categories []Category, key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryKeys returns the keys of categories in order.
func CategoryKeys(categories []Category) []string {
	keys := make([]string, len(categories))
	for i, c := range categories {
		keys[i] = c.Key
	}
	return keys
}

// SameOrigin reports whether rawURL has the same scheme and host as origin.
func SameOrigin(origin, rawURL string) bool {
	o, err := url.Parse(origin)
	if err != nil || o.Host == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(o.Scheme, u.Scheme) && strings.EqualFold(o.Host, u.Host)
}
