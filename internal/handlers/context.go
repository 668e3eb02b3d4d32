package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster/internal/middleware"
	"github.com/rosterhq/roster/internal/models"
	apperrors "github.com/rosterhq/roster/pkg/errors"
	"github.com/rosterhq/roster/pkg/response"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// requirePrincipal fetches the authenticated principal or writes a 401.
func requirePrincipal(c *gin.Context) (*models.User, bool) {
	principal, ok := middleware.Principal(c)
	if !ok {
		response.Error(c, apperrors.ErrUnauthenticated)
		return nil, false
	}
	return principal, true
}
