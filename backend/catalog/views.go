package catalog

import (
	"cmp"
	"slices"

	"coursehub/backend/models"
)

// DefaultPerPage is the number of course cards on one search page.
const DefaultPerPage = 8

type Page struct {
	Courses    []models.Course `json:"courses"`
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	Total      int             `json:"total"`
	TotalPages int             `json:"totalPages"`
}

// Paginate cuts one 1-based page out of courses. Pages past the end are
// empty; a non-positive page or perPage falls back to the defaults.
func Paginate(courses []models.Course, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page <= 0 {
		page = 1
	}

	total := len(courses)
	p := Page{
		Courses:    []models.Course{},
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}

	start := (page - 1) * perPage
	if start >= total {
		return p
	}
	end := min(start+perPage, total)
	p.Courses = slices.Clone(courses[start:end])
	return p
}

// PriceBounds returns the lowest and highest observed price. ok is false
// for an empty catalog.
func PriceBounds(courses []models.Course) (bounds PriceRange, ok bool) {
	if len(courses) == 0 {
		return PriceRange{}, false
	}
	bounds = PriceRange{Min: courses[0].Price, Max: courses[0].Price}
	for _, c := range courses[1:] {
		bounds.Min = min(bounds.Min, c.Price)
		bounds.Max = max(bounds.Max, c.Price)
	}
	return bounds, true
}

// Featured returns up to n courses, best rated first.
func Featured(courses []models.Course, n int) []models.Course {
	top := FilterAndSort(courses, FilterSpec{}, SortRatingDesc)
	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	return top
}

type CategoryCount struct {
	Category string `json:"category"`
	Courses  int    `json:"courses"`
}

// Categories counts courses per category, most populated first and then by
// name.
func Categories(courses []models.Course) []CategoryCount {
	counts := make(map[string]int)
	for _, c := range courses {
		if c.Category != "" {
			counts[c.Category]++
		}
	}

	result := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		result = append(result, CategoryCount{Category: name, Courses: n})
	}
	slices.SortFunc(result, func(a, b CategoryCount) int {
		if c := cmp.Compare(b.Courses, a.Courses); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return result
}
