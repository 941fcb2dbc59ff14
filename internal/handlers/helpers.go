package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"moneynote/internal/envelope"
	apperrors "moneynote/internal/errors"
	"moneynote/internal/logger"
	"moneynote/internal/middleware"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	return userID.(uint), nil
}

// getToken extracts the raw bearer token stored by the auth middleware.
func getToken(c *gin.Context) (string, error) {
	token, exists := c.Get(middleware.ContextTokenKey)
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return token.(string), nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// respondWithError writes an envelope error response. AppErrors carry their
// own code and message; anything else is logged and surfaces as the generic
// internal error so no internal detail reaches the client.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"error_code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		envelope.Error(c, appErr)
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	envelope.ServerError(c)
}
