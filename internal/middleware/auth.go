package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rmadesk/rma-portal/internal/auth"
	"github.com/rmadesk/rma-portal/internal/httperr"
)

const (
	ContextPrincipalID   = "principalID"
	ContextPrincipalType = "principalType"
	ContextTokenID       = "tokenID"
)

// RequireCustomer admits only customer-typed tokens.
func RequireCustomer(tm *auth.TokenManager, store auth.TokenStore) gin.HandlerFunc {
	return requirePrincipal(tm, store, auth.PrincipalCustomer, "customers_only")
}

// RequireAdmin admits only admin-typed tokens.
func RequireAdmin(tm *auth.TokenManager, store auth.TokenStore) gin.HandlerFunc {
	return requirePrincipal(tm, store, auth.PrincipalAdmin, "admins_only")
}

func requirePrincipal(
	tm *auth.TokenManager,
	store auth.TokenStore,
	principalType string,
	forbiddenCode string,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := resolve(c, tm, store)
		if !ok {
			return
		}

		// Authenticated but the wrong kind of principal: authorization
		// failure, not authentication failure.
		if claims.PrincipalType != principalType {
			httperr.Forbidden(c, forbiddenCode, "This route is not available to your account type.")
			c.Abort()
			return
		}

		c.Set(ContextPrincipalID, claims.PrincipalID)
		c.Set(ContextPrincipalType, claims.PrincipalType)
		c.Set(ContextTokenID, claims.ID)

		c.Next()
	}
}

func resolve(c *gin.Context, tm *auth.TokenManager, store auth.TokenStore) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		httperr.Unauthorized(c, "invalid_authorization_header", "Authorization header must be a bearer token.")
		c.Abort()
		return nil, false
	}

	claims, err := tm.Parse(parts[1])
	if err != nil {
		httperr.Unauthorized(c, "invalid_token", "The token is invalid or expired.")
		c.Abort()
		return nil, false
	}

	// Revoked tokens parse fine but are gone from the store.
	alive, err := store.Exists(c.Request.Context(), claims.ID)
	if err != nil || !alive {
		httperr.Unauthorized(c, "invalid_token", "The token is invalid or expired.")
		c.Abort()
		return nil, false
	}

	return claims, true
}
