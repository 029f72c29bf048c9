package middleware

import (
	"net/http"
	"strings"

	autherrors "smg-portal/internal/auth/errors"
	"smg-portal/internal/auth/token"
	"smg-portal/internal/shared/apperror"
	"smg-portal/internal/shared/contextutil"
	"smg-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware validates the access token and puts the caller's identity
// id and claims into both the gin and the request context.
func AuthMiddleware(tokens *token.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString, token.TokenTypeAccess)
		if err != nil {
			errObj := autherrors.ErrInvalidToken
			if err == autherrors.ErrTokenExpired {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("department", claims.Department)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, claims.UserID)
		ctx = contextutil.WithRole(ctx, claims.Role)
		logger := contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", claims.UserID))
		ctx = contextutil.WithLogger(ctx, logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("role")

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
		c.Abort()
	}
}
