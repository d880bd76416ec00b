package httputil

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/pagination"
)

// PaginationParams holds the page selection parsed from a request.
type PaginationParams struct {
	Page     int
	PageSize int
}

// ParsePagination reads the page and page-size query parameters. Pages are
// 1-indexed. Missing values fall back to the defaults, page-size is capped at
// maxPageSize, and non-numeric or non-positive values are rejected.
func ParsePagination(c *gin.Context, defaultPageSize, maxPageSize int) (PaginationParams, error) {
	params := PaginationParams{Page: 1, PageSize: defaultPageSize}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return PaginationParams{}, apperrors.Wrap(apperrors.ErrInvalidInput, "page must be a positive integer")
		}
		params.Page = page
	}

	if raw := c.Query("page-size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			return PaginationParams{}, apperrors.Wrap(apperrors.ErrInvalidInput, "page-size must be a positive integer")
		}
		if pageSize > maxPageSize {
			return PaginationParams{}, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("page-size must not exceed %d", maxPageSize))
		}
		params.PageSize = pageSize
	}

	return params, nil
}

// PaginationLinks holds navigation URIs for a paginated response.
type PaginationLinks struct {
	Self  string `json:"self"`
	First string `json:"first,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last,omitempty"`
}

// PaginationMeta holds record counts for a paginated response.
type PaginationMeta struct {
	TotalRecords int64 `json:"total_records"`
	TotalPages   int   `json:"total_pages"`
}

// BuildPaginationLinks derives the navigation links for a page from the
// request path and query string, rewriting only the page parameter.
func BuildPaginationLinks[T any](c *gin.Context, page pagination.Page[T]) PaginationLinks {
	totalPages := page.TotalPages()

	links := PaginationLinks{
		Self:  pageLink(c, page.CurrentPage),
		First: pageLink(c, 1),
		Last:  pageLink(c, totalPages),
	}
	if page.CurrentPage > 1 {
		links.Prev = pageLink(c, page.CurrentPage-1)
	}
	if page.CurrentPage < totalPages {
		links.Next = pageLink(c, page.CurrentPage+1)
	}
	return links
}

// BuildPaginationMeta derives the count block for a page.
func BuildPaginationMeta[T any](page pagination.Page[T]) PaginationMeta {
	return PaginationMeta{
		TotalRecords: page.TotalRecords,
		TotalPages:   page.TotalPages(),
	}
}

func pageLink(c *gin.Context, page int) string {
	query := url.Values{}
	for key, values := range c.Request.URL.Query() {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("page", strconv.Itoa(page))
	return c.Request.URL.Path + "?" + query.Encode()
}
