package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	iauth "github.com/rosterhq/roster/internal/auth"
	"github.com/rosterhq/roster/internal/models"
	apperrors "github.com/rosterhq/roster/pkg/errors"
	"github.com/rosterhq/roster/pkg/response"
)

const (
	// CtxPrincipalKey holds the resolved *models.User for the request.
	CtxPrincipalKey = "principal"
)

// Auth validates the bearer token and resolves the acting principal. The
// resolved user is stored in the gin context for handlers to pick up.
func Auth(jwt *iauth.JWTService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		var user models.User
		err = db.WithContext(c.Request.Context()).First(&user, "id = ?", claims.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}
		if err != nil {
			response.Error(c, apperrors.ErrUnavailable.WithInternal(err))
			c.Abort()
			return
		}

		c.Set(CtxPrincipalKey, &user)
		c.Next()
	}
}

// Principal returns the resolved principal for the request, if any.
func Principal(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
