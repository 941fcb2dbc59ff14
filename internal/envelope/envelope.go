// Package envelope implements the uniform response wrapper shared by every
// endpoint: {error_code, error_msg, data}. Business outcomes, including
// business errors, ride HTTP 200; the HTTP status departs from 200 only for
// transport-level failures such as unmatched routes or panics.
package envelope

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneynote/internal/errors"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
	Data      any    `json:"data"`
}

// OK writes a success envelope with the given payload. A nil payload is
// serialized as data: null.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{
		ErrorCode: apperrors.CodeSuccess,
		ErrorMsg:  "Success",
		Data:      data,
	})
}

// Error writes a business error envelope at HTTP 200.
func Error(c *gin.Context, appErr *apperrors.AppError) {
	c.JSON(http.StatusOK, Envelope{
		ErrorCode: appErr.Code,
		ErrorMsg:  appErr.Message,
		Data:      nil,
	})
}

// ServerError writes the generic internal error envelope at HTTP 500. Reserved
// for unhandled failures; handled persistence errors go through Error.
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Envelope{
		ErrorCode: apperrors.CodeServerError,
		ErrorMsg:  apperrors.ErrInternalServer.Message,
		Data:      nil,
	})
}
