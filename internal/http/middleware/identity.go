// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the identity and capability-gate middleware. Requests
// identify their account with the X-User-ID header; Identity() resolves the
// header against the user directory and stores the account in the request
// context, and RequireRole() gates route groups on the account's role.
//
// This is deliberately not an authentication system. The deployment fronts
// the API with a proxy that establishes identity; the header is trusted the
// way a proxy-set subject header would be.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/repo"
)

const (
	// userIDHeader carries the caller's account ID.
	userIDHeader = "X-User-ID"

	// ctxKeyUserID is the Gin context key holding the caller's account ID.
	ctxKeyUserID = "userID"
	// ctxKeyUser is the Gin context key holding the loaded *domain.User.
	ctxKeyUser = "user"
)

// Identity resolves the X-User-ID header against the user directory and, when
// it names a real account, stores the account in the request context under
// "user" (and its ID under "userID" for the logger and rate limiter).
//
// A missing or unknown header is not an error here; routes that need an
// account gate on RequireUser or RequireRole.
func Identity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(userIDHeader))
		if id != "" {
			if u, err := repo.GetUser(c.Request.Context(), db, id); err == nil {
				c.Set(ctxKeyUserID, u.ID)
				c.Set(ctxKeyUser, u)
			}
		}
		c.Next()
	}
}

// RequireUser aborts with 401 when no account was resolved by Identity().
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) == nil {
			abortIdentity(c, http.StatusUnauthorized, "unauthenticated", "a valid X-User-ID header is required")
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 401 when unauthenticated and 403 when the resolved
// account's role is not in the allowed set. With no arguments it behaves like
// RequireUser.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		u := UserFrom(c)
		if u == nil {
			abortIdentity(c, http.StatusUnauthorized, "unauthenticated", "a valid X-User-ID header is required")
			return
		}
		if len(allowed) > 0 {
			if _, ok := allowed[u.Role]; !ok {
				abortIdentity(c, http.StatusForbidden, "forbidden", "this action is not available to your role")
				return
			}
		}
		c.Next()
	}
}

// UserFrom returns the account resolved by Identity(), or nil.
func UserFrom(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxKeyUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

// abortIdentity writes the standard error envelope for identity failures.
func abortIdentity(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       code,
		"message":    message,
	})
}
