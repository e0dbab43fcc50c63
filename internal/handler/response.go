package handler

import (
	"errors"
	"net/http"

	"attendance-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps typed service errors onto HTTP statuses. Anything
// untyped is an infrastructure failure: logged server-side, generic
// message to the caller.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		validationErr   *service.ValidationError
		unauthorizedErr *service.UnauthorizedError
		forbiddenErr    *service.ForbiddenError
		notFoundErr     *service.NotFoundError
		conflictErr     *service.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
	case errors.As(err, &unauthorizedErr):
		c.JSON(http.StatusUnauthorized, gin.H{"message": unauthorizedErr.Message})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, gin.H{"message": forbiddenErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundErr.Message})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusNotAcceptable, gin.H{"message": conflictErr.Message})
	default:
		h.logger.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
