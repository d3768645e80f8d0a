// Package httpresp holds the success-side response helpers; the
// error side lives in httperr.
package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse wraps collection payloads with a total so clients can
// render counts without re-measuring the slice.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func List[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  items,
		Total: len(items),
	})
}
