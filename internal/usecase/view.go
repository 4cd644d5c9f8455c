package usecase

import (
	"sort"
	"strings"

	"storefront/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const maxSuggestions = 5

// ViewResult is the fully derived catalog view handed to rendering.
type ViewResult struct {
	Products   []domain.Product       `json:"products"`
	Categories []domain.CategoryCount `json:"categories"`
}

// titleCollator compares titles the way a locale-aware UI sort does.
// Collators are not safe for concurrent use, so sorts take a fresh one.
func titleCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// DeriveView filters and sorts the accumulated products. It is a pure
// function of its inputs: the input slice is never mutated and the same
// inputs always produce the same output.
func DeriveView(products []domain.Product, query, category string, sortOption domain.SortOption) ViewResult {
	filtered := filterProducts(products, query, category)
	sortProducts(filtered, sortOption)
	return ViewResult{
		Products:   filtered,
		Categories: CategoryIndex(products),
	}
}

func filterProducts(products []domain.Product, query, category string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	all := category == "" || category == domain.CategoryAll

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !all && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sortProducts(products []domain.Product, option domain.SortOption) {
	if !domain.IsValidSortOption(option) {
		option = domain.SortTitleAsc
	}
	switch option {
	case domain.SortTitleAsc:
		c := titleCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Title, products[j].Title) < 0
		})
	case domain.SortTitleDesc:
		c := titleCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Title, products[j].Title) > 0
		})
	case domain.SortRatingAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating < products[j].Rating
		})
	case domain.SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}

// CategoryIndex groups the accumulated products by category. The
// synthetic "All" entry counts every product and always comes first;
// real categories follow in name order so the output is deterministic.
func CategoryIndex(products []domain.Product) []domain.CategoryCount {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.CategoryCount, 0, len(counts)+1)
	out = append(out, domain.CategoryCount{Name: domain.CategoryAll, Count: len(products)})
	for _, name := range names {
		out = append(out, domain.CategoryCount{Name: name, Count: counts[name]})
	}
	return out
}

// Suggestions returns up to 5 search-box suggestions: products whose
// title contains the query first, then the deduplicated categories
// containing it. A blank query yields none.
func Suggestions(products []domain.Product, query string) []domain.Suggestion {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	q := strings.ToLower(query)

	out := make([]domain.Suggestion, 0, maxSuggestions)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, domain.Suggestion{Type: domain.SuggestionProduct, Name: p.Title})
		}
	}

	seen := make(map[string]bool)
	for _, p := range products {
		if seen[p.Category] {
			continue
		}
		if strings.Contains(strings.ToLower(p.Category), q) {
			seen[p.Category] = true
			out = append(out, domain.Suggestion{Type: domain.SuggestionCategory, Name: p.Category})
		}
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// SuppressAutoFetch reports whether background pagination should pause.
// While a search or category filter is active the view operates over
// already-loaded data only; pagination resumes once both are cleared.
func SuppressAutoFetch(query, category string) bool {
	if strings.TrimSpace(query) != "" {
		return true
	}
	return category != "" && category != domain.CategoryAll
}
