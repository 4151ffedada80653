package numbering

import (
	"fmt"
	"strings"
)

// Category identifies the class of numbered entity. Each category owns an
// independent per-year counter and a fixed serial prefix. The set is closed:
// free-text category names are resolved to a Category once at the boundary
// via ParseCategory, never re-matched downstream.
type Category string

const (
	CategoryCylinder    Category = "cylinder"
	CategoryCertificate Category = "certificate"
	CategoryQuote       Category = "quote"
	CategoryContract    Category = "contract"
	CategoryInvoice     Category = "invoice"
)

// categoryPrefixes maps each category to its serial prefix. The prefixes are
// fixed: printed labels and issued documents embed them, so they must never
// change for existing categories.
var categoryPrefixes = map[Category]string{
	CategoryCylinder:    "CYL",
	CategoryCertificate: "CERT",
	CategoryQuote:       "QUO",
	CategoryContract:    "CON",
	CategoryInvoice:     "INV",
}

// AllCategories returns every valid category
func AllCategories() []Category {
	return []Category{
		CategoryCylinder,
		CategoryCertificate,
		CategoryQuote,
		CategoryContract,
		CategoryInvoice,
	}
}

// IsValid reports whether the category is a member of the closed set
func (c Category) IsValid() bool {
	_, ok := categoryPrefixes[c]
	return ok
}

// Prefix returns the serial prefix for the category
func (c Category) Prefix() string {
	return categoryPrefixes[c]
}

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves a free-text category name to a Category. Matching
// is case-insensitive; unknown names are rejected.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown numbering category %q", s)
	}
	return c, nil
}

// CategoryForPrefix resolves a serial prefix back to its category. Used when
// parsing serials read from labels or imports.
func CategoryForPrefix(prefix string) (Category, error) {
	for c, p := range categoryPrefixes {
		if p == prefix {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown serial prefix %q", prefix)
}
