package httpresp

import "github.com/gin-gonic/gin"

// Meta mirrors the pagination envelope the admin frontend consumes.
type Meta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

type PageResponse[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

func NewMeta(total int64, perPage, currentPage, count int) Meta {
	if perPage < 1 {
		perPage = 1
	}
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if count > 0 {
		from = (currentPage-1)*perPage + 1
		to = from + count - 1
	}

	return Meta{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: currentPage,
		LastPage:    lastPage,
		From:        from,
		To:          to,
	}
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Page[T any](c *gin.Context, data []T, meta Meta) {
	if data == nil {
		data = []T{}
	}
	c.JSON(200, PageResponse[T]{
		Data: data,
		Meta: meta,
	})
}
