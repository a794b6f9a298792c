package dto

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

// PageFilter is bound from query parameters on every paginated listing.
// Zero values are normalized by the pagination helper.
type PageFilter struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
