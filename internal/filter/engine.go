// Package filter derives the visible product list from filter and sort
// state. The pipeline is pure: identical inputs always produce identical
// output, and it is cheap enough to re-run from scratch on every change
// since catalogues hold hundreds of products at most.
package filter

import (
	"sort"
	"strings"

	"digital-city/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the comparator applied to the product list.
type SortKey string

const (
	SortNewest    SortKey = "newest"     // product id descending
	SortPriceLow  SortKey = "price-low"  // price ascending
	SortPriceHigh SortKey = "price-high" // price descending
	SortRating    SortKey = "rating"     // rating descending
	SortPopular   SortKey = "popular"    // view count descending
	SortName      SortKey = "name"       // Arabic collation ascending
)

// ParseSortKey maps a raw string onto a SortKey, defaulting to SortNewest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceLow, SortPriceHigh, SortRating, SortPopular, SortName:
		return SortKey(s)
	default:
		return SortNewest
	}
}

// Query holds the complete filter and sort state. All predicates are
// AND-combined.
type Query struct {
	Category  string // model.CategoryAll passes every product
	Search    string // case-folded substring over name and description
	MinPrice  float64
	MaxPrice  float64
	MinRating float64 // 0 disables the rating predicate
	Sort      SortKey
}

// DefaultQuery returns the initial filter state: all categories, no search,
// the full price range and newest-first ordering.
func DefaultQuery() Query {
	return Query{
		Category: model.CategoryAll,
		MinPrice: 0,
		MaxPrice: 500000,
		Sort:     SortNewest,
	}
}

// Apply runs the full pipeline: category and text filtering narrow the
// candidate set, the candidates are stable-sorted, then the price and rating
// predicates are applied. Catalogue order is the tiebreak for equal sort
// keys. The input slice is never mutated.
func Apply(products []model.Product, q Query) []model.Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	candidates := make([]model.Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && q.Category != model.CategoryAll && p.Category != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		candidates = append(candidates, p)
	}

	sortProducts(candidates, q.Sort)

	result := candidates[:0]
	for _, p := range candidates {
		if p.Price < q.MinPrice || p.Price > q.MaxPrice {
			continue
		}
		if q.MinRating > 0 && p.Rating < q.MinRating {
			continue
		}
		result = append(result, p)
	}

	return result
}

// CountInCategory returns how many products match the category alone,
// used for the category badge counts.
func CountInCategory(products []model.Product, category string) int {
	if category == model.CategoryAll {
		return len(products)
	}
	count := 0
	for _, p := range products {
		if p.Category == category {
			count++
		}
	}
	return count
}

func sortProducts(products []model.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortPopular:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Views > products[j].Views
		})
	case SortName:
		// Arabic collation, never byte order. Collators are not safe for
		// concurrent use, so each sort gets its own.
		c := collate.New(language.Arabic)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	default: // SortNewest
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID > products[j].ID
		})
	}
}
