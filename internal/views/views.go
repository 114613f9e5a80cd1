// Package views turns the full article set into the slices the pages
// render: filtered, sorted and paginated projections computed on demand
// from plain parameters.
package views

import (
	"sort"
	"strings"

	"amazonia/internal/models"
)

type SortOrder string

const (
	SortNewest    SortOrder = "recientes"
	SortOldest    SortOrder = "antiguos"
	SortTitleAsc  SortOrder = "a-z"
	SortTitleDesc SortOrder = "z-a"
)

const (
	// PageSize is fixed for the public listing.
	PageSize = 9
	// pageWindow is the maximum number of page links shown at once.
	pageWindow = 5
)

// AllStates and AllCategories are the neutral filter values the pages
// send when no filter is active.
const (
	AllStates     = "todos"
	AllCategories = "todas"
)

type ListingQuery struct {
	Search     string
	CategoryID string
	Sort       SortOrder
	Page       int
}

type ListingPage struct {
	Items       []models.Article `json:"noticias"`
	Page        int              `json:"pagina"`
	TotalPages  int              `json:"totalPaginas"`
	TotalItems  int              `json:"totalResultados"`
	PageNumbers []int            `json:"numerosPagina"`
	RangeStart  int              `json:"rangoInicio"`
	RangeEnd    int              `json:"rangoFin"`
}

// Listing computes the public listing page: substring search over
// title/subtitle/body, category filter, one of four sort orders and
// fixed-size pagination. The requested page is clamped to the valid
// range, so an out-of-range request lands on a real page.
func Listing(articles []models.Article, q ListingQuery) ListingPage {
	filtered := make([]models.Article, 0, len(articles))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, a := range articles {
		if search != "" && !matchesSearch(&a, search) {
			continue
		}
		if q.CategoryID != "" && q.CategoryID != AllCategories && a.CategoryID != q.CategoryID {
			continue
		}
		filtered = append(filtered, a)
	}

	sortArticles(filtered, q.Sort)

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	result := ListingPage{
		Items:       filtered[start:end],
		Page:        page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PageNumbers: pageNumbers(page, totalPages),
	}
	if total > 0 {
		result.RangeStart = start + 1
		result.RangeEnd = end
	}
	return result
}

// pageNumbers returns a sliding window of up to five page links centered
// on the current page and clamped to [1, totalPages].
func pageNumbers(current, totalPages int) []int {
	if totalPages == 0 {
		return nil
	}

	start := current - 2
	end := current + 2
	if current <= 3 {
		start = 1
		end = pageWindow
	}
	if current >= totalPages-2 {
		start = totalPages - pageWindow + 1
		end = totalPages
	}
	if start < 1 {
		start = 1
	}
	if end > totalPages {
		end = totalPages
	}

	numbers := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		numbers = append(numbers, i)
	}
	return numbers
}

// Related picks up to limit articles sharing the category of current,
// excluding current itself. The source must already be the published set
// in newest-first order, so only published articles are ever suggested.
func Related(published []models.Article, current *models.Article, limit int) []models.Article {
	related := make([]models.Article, 0, limit)
	for _, a := range published {
		if a.ID == current.ID || a.CategoryID != current.CategoryID {
			continue
		}
		related = append(related, a)
		if len(related) == limit {
			break
		}
	}
	return related
}

// FilterByState keeps articles in the given state. The neutral value
// "todos" (or empty) keeps everything.
func FilterByState(articles []models.Article, state string) []models.Article {
	if state == "" || state == AllStates {
		return articles
	}
	filtered := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if string(a.State) == state {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// AdminFilter applies the admin dashboard filters. Empty values mean "no
// filter"; non-empty values combine with logical AND.
func AdminFilter(articles []models.Article, state, authorUID, categoryID string) []models.Article {
	filtered := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if state != "" && state != AllStates && string(a.State) != state {
			continue
		}
		if authorUID != "" && a.AuthorUID != authorUID {
			continue
		}
		if categoryID != "" && categoryID != AllCategories && a.CategoryID != categoryID {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}

// FilterUsers keeps users whose name, email or role contains the query,
// case-insensitively.
func FilterUsers(users []models.User, query string) []models.User {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return users
	}
	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		haystack := strings.ToLower(u.FirstName + " " + u.LastName + " " + u.Email + " " + string(u.Role))
		if strings.Contains(haystack, query) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// CategoryName resolves a category id to its display name. Unknown ids
// (including dangling references left by a deleted category) resolve to
// the empty string.
func CategoryName(categories []models.Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func matchesSearch(a *models.Article, search string) bool {
	return strings.Contains(strings.ToLower(a.Title), search) ||
		strings.Contains(strings.ToLower(a.Subtitle), search) ||
		strings.Contains(strings.ToLower(a.Content), search)
}

func sortArticles(articles []models.Article, order SortOrder) {
	switch order {
	case SortOldest:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].CreatedAt.Before(articles[j].CreatedAt)
		})
	case SortTitleAsc:
		sort.SliceStable(articles, func(i, j int) bool {
			return strings.ToLower(articles[i].Title) < strings.ToLower(articles[j].Title)
		})
	case SortTitleDesc:
		sort.SliceStable(articles, func(i, j int) bool {
			return strings.ToLower(articles[i].Title) > strings.ToLower(articles[j].Title)
		})
	default: // SortNewest
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		})
	}
}
