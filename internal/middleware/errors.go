package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/liqrisk/internal/domain/dto"
	"github.com/guttosm/liqrisk/internal/engine"
	"github.com/guttosm/liqrisk/internal/logger"
	"github.com/guttosm/liqrisk/internal/service"
)

// ErrorHandler renders the last error a handler attached with c.Error.
//
// Mapping:
//   - engine.ErrInvalidInput       -> 400 Bad Request
//   - service.ErrTickerNotFound    -> 404 Not Found
//   - engine.ErrInsufficientData   -> 422 Unprocessable Entity
//   - context deadline / canceled  -> 504 Gateway Timeout
//   - anything else                -> 500 Internal Server Error
//
// Nothing is written when the handler already produced a response.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(msg, err))
}

// AbortWithError stops the chain and writes a standardized error body.
// err is attached to the context so the request logger sees it.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, service.ErrTickerNotFound):
		return http.StatusNotFound, "no data found"
	case errors.Is(err, engine.ErrInsufficientData):
		return http.StatusUnprocessableEntity, "insufficient market data"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "request timed out"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
