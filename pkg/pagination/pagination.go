// Package pagination computes page windows over ordered collections and
// GORM queries, plus the compressed page-number sequence used by list UIs.
package pagination

import (
	"gorm.io/gorm"

	"cabinet-service/pkg/dto"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
	// MaxVisible is the default number of page buttons before the
	// sequence is compressed with gap markers.
	MaxVisible = 5
)

// Normalize applies defaults and caps to a requested page/limit pair.
// The page is only lower-bounded here; the upper clamp needs the total
// count and happens in Paginate/PaginateQuery.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// totalPages never reports less than one page, so an empty collection
// still has a valid current page.
func totalPages(total int64, limit int) int {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

// clamp degrades an out-of-range page to the nearest valid one instead of
// failing.
func clamp(page int, total int64, limit int) int {
	pages := totalPages(total, limit)
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return page
}

// Paginate slices an in-memory collection.
func Paginate[T any](items []T, page, limit int) ([]T, dto.PaginationMeta) {
	page, limit = Normalize(page, limit)
	total := int64(len(items))
	page = clamp(page, total, limit)

	offset := (page - 1) * limit
	end := offset + limit
	if offset > len(items) {
		offset = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end], dto.PaginationMeta{
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		TotalItems:  total,
		Limit:       limit,
	}
}

// PaginateQuery counts then slices a GORM query into dest. The query must
// already carry its model and filters; ordering is the caller's business.
func PaginateQuery(query *gorm.DB, page, limit int, dest interface{}) (dto.PaginationMeta, error) {
	page, limit = Normalize(page, limit)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return dto.PaginationMeta{}, err
	}
	page = clamp(page, total, limit)

	offset := (page - 1) * limit
	if err := query.Session(&gorm.Session{}).Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return dto.PaginationMeta{}, err
	}

	return dto.PaginationMeta{
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		TotalItems:  total,
		Limit:       limit,
	}, nil
}

// PageNumbers produces the compressed page button sequence: first and last
// page always present, a sliding window around the current page, and nil
// entries as ellipsis markers. With current near an edge the window is
// widened to four pages so the button count stays stable.
func PageNumbers(current, total, maxVisible int) []*int {
	if maxVisible < 1 {
		maxVisible = MaxVisible
	}
	if total < 1 {
		return nil
	}

	page := func(n int) *int { return &n }

	if total <= maxVisible {
		out := make([]*int, 0, total)
		for i := 1; i <= total; i++ {
			out = append(out, page(i))
		}
		return out
	}

	start := current - 1
	if start < 2 {
		start = 2
	}
	end := current + 1
	if end > total-1 {
		end = total - 1
	}
	if current <= 3 {
		start, end = 2, 5
	}
	if current >= total-2 {
		start, end = total-4, total-1
	}
	if start < 2 {
		start = 2
	}
	if end > total-1 {
		end = total - 1
	}

	out := []*int{page(1)}
	if start > 2 {
		out = append(out, nil)
	}
	for i := start; i <= end; i++ {
		out = append(out, page(i))
	}
	if end < total-1 {
		out = append(out, nil)
	}
	out = append(out, page(total))

	return out
}
