package domain

type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

// ProductPage is one page of the remote listing, in the shape the
// catalog source returns it.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

type SortOption string

const (
	SortTitleAsc   SortOption = "title-asc"
	SortTitleDesc  SortOption = "title-desc"
	SortRatingAsc  SortOption = "rating-asc"
	SortRatingDesc SortOption = "rating-desc"
)

func IsValidSortOption(s SortOption) bool {
	switch s {
	case SortTitleAsc, SortTitleDesc, SortRatingAsc, SortRatingDesc:
		return true
	default:
		return false
	}
}

// CategoryAll is the synthetic category matching every product.
const CategoryAll = "All"

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type SuggestionType string

const (
	SuggestionProduct  SuggestionType = "product"
	SuggestionCategory SuggestionType = "category"
)

type Suggestion struct {
	Type SuggestionType `json:"type"`
	Name string         `json:"name"`
}
