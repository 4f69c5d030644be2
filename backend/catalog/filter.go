// Package catalog derives the browsable views of the course list: search,
// filtering, sorting and paging. Nothing here touches storage.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"coursehub/backend/models"
)

type SortKey string

const (
	SortNone       SortKey = ""
	SortTitleAsc   SortKey = "titleAsc"
	SortTitleDesc  SortKey = "titleDesc"
	SortPriceAsc   SortKey = "priceAsc"
	SortPriceDesc  SortKey = "priceDesc"
	SortRatingDesc SortKey = "ratingDesc"
)

// PriceRange is an inclusive [Min, Max] bound on the course price.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterSpec holds the criteria of one query. Empty fields do not filter.
type FilterSpec struct {
	Search     string      `json:"search,omitempty"`
	Category   string      `json:"category,omitempty"`
	Level      string      `json:"level,omitempty"`
	Language   string      `json:"language,omitempty"`
	Instructor string      `json:"instructor,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
}

// Match reports whether c satisfies every non-empty criterion of f.
func (f FilterSpec) Match(c models.Course) bool {
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Level != "" && c.Level != f.Level {
		return false
	}
	if f.Language != "" && c.Language != f.Language {
		return false
	}
	if f.Instructor != "" && !containsFold(c.Instructor, f.Instructor) {
		return false
	}
	if f.PriceRange != nil && !f.PriceRange.Contains(c.Price) {
		return false
	}
	if f.Search != "" {
		if !containsFold(c.Title, f.Search) &&
			!containsFold(c.Instructor, f.Search) &&
			!containsFold(c.Category, f.Search) {
			return false
		}
	}
	return true
}

// FilterAndSort returns the courses matching spec ordered by key. The input
// slice is left untouched. Sorting is stable, so an unknown or empty key
// keeps the stored order and applying the same query twice is a no-op.
func FilterAndSort(courses []models.Course, spec FilterSpec, key SortKey) []models.Course {
	result := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if spec.Match(c) {
			result = append(result, c)
		}
	}

	if compare := comparator(key); compare != nil {
		slices.SortStableFunc(result, compare)
	}
	return result
}

func comparator(key SortKey) func(a, b models.Course) int {
	switch key {
	case SortTitleAsc:
		col := collate.New(language.English, collate.IgnoreCase)
		return func(a, b models.Course) int {
			return col.CompareString(a.Title, b.Title)
		}
	case SortTitleDesc:
		col := collate.New(language.English, collate.IgnoreCase)
		return func(a, b models.Course) int {
			return col.CompareString(b.Title, a.Title)
		}
	case SortPriceAsc:
		return func(a, b models.Course) int {
			return cmp.Compare(a.Price, b.Price)
		}
	case SortPriceDesc:
		return func(a, b models.Course) int {
			return cmp.Compare(b.Price, a.Price)
		}
	case SortRatingDesc:
		return func(a, b models.Course) int {
			return cmp.Compare(b.Rating, a.Rating)
		}
	}
	return nil
}

// ValidSortKey reports whether key is one of the supported sort keys.
func ValidSortKey(key SortKey) bool {
	switch key {
	case SortNone, SortTitleAsc, SortTitleDesc, SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return true
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
