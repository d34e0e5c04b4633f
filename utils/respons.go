package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every non-validation error response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// RespondJSON writes data as-is. Resources are returned bare, without an envelope,
// so list endpoints serialize to a JSON array.
func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// RespondError maps err through the default mapper and aborts the chain.
// Server errors are logged with their cause and returned with a generic detail.
func RespondError(c *gin.Context, err error) {
	info := DefaultErrorMapper.Map(err)
	if info.Status >= http.StatusInternalServerError {
		ErrorLogger.WithError(err).
			WithField("path", c.Request.URL.Path).
			Error("request failed")
	}
	c.AbortWithStatusJSON(info.Status, ErrorBody{Detail: info.Message})
}

// RespondDetail writes a {"detail": msg} body with an explicit status.
func RespondDetail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, ErrorBody{Detail: msg})
}

// RespondValidation writes per-field validation messages with 400.
func RespondValidation(c *gin.Context, fields map[string][]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, fields)
}
