package utils

import "github.com/gin-gonic/gin"

// Pagination describes the page window applied to a list response. Total is
// the filtered count with no skip/limit applied; Pages is ceil(total/limit).
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// ListResponse is the envelope every paginated endpoint returns.
type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// Paginated builds the list envelope for items matching total rows.
func Paginated(items interface{}, total int64, page, limit int) ListResponse {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return ListResponse{
		Items: items,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
	}
}

// Error writes the uniform error envelope with the given status code.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}
