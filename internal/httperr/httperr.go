package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type ValidationError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Forbidden is an authorization failure: the caller is authenticated but
// is the wrong principal type for the route.
func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Validation writes a 422 with per-field messages. Uniqueness conflicts
// are surfaced through this path too.
func Validation(c *gin.Context, errors map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, ValidationError{
		Code:    "validation_failed",
		Message: "Validation failed.",
		Errors:  errors,
	})
}
