package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orgcatalog.app/catalog/internal/activitytree"
	"orgcatalog.app/catalog/internal/geo"
	"orgcatalog.app/catalog/internal/service"
	"orgcatalog.app/catalog/internal/store"
)

// respondError maps a service error onto a status code and error code.
// Unexpected errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error, failure string) {
	ctx := c.Request.Context()

	status, code := classify(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx, failure, "error", err)
		c.JSON(status, gin.H{"error": failure, "code": code})
		return
	}
	if status == http.StatusServiceUnavailable {
		slog.ErrorContext(ctx, failure, "error", err)
		c.JSON(status, gin.H{"error": "storage unavailable", "code": code})
		return
	}

	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrInvalidReference):
		return http.StatusBadRequest, "invalid_reference"
	case errors.Is(err, activitytree.ErrDepthExceeded):
		return http.StatusBadRequest, "depth_exceeded"
	case errors.Is(err, activitytree.ErrCycle):
		return http.StatusConflict, "cycle"
	case errors.Is(err, store.ErrConstraintViolation):
		return http.StatusConflict, "constraint_violation"
	case errors.Is(err, geo.ErrInvalidPoint),
		errors.Is(err, geo.ErrInvalidRadius),
		errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func bindError(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "invalid request", "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_argument"})
}

// pathID parses a positive int64 path parameter. It writes the 400 itself and reports false on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer", "code": "invalid_argument"})
		return 0, false
	}
	return id, true
}
