package services

import "farmbiz-service/internal/models"

// totalPages for a fixed page size; an empty result set still has one page.
func totalPages(totalCount, pageSize int) int {
	pages := (totalCount + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// clampPage snaps a requested page into [1, totalPages]. A request past the
// end lands on the last page rather than an empty one.
func clampPage(page, totalCount, pageSize int) int {
	if page < 1 {
		return 1
	}
	if last := totalPages(totalCount, pageSize); page > last {
		return last
	}
	return page
}

// buildPagination computes page metadata for a fixed page size. Page numbers
// are 1-based; callers clamp the page before slicing.
func buildPagination(page, totalCount, pageSize int) models.Pagination {
	total := totalPages(totalCount, pageSize)
	return models.Pagination{
		CurrentPage: page,
		TotalPages:  total,
		HasPrevious: page > 1,
		HasNext:     page < total,
	}
}
