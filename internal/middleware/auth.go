// Package middleware carries the authentication and authorization layers
// between Echo and the core services.
package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"photoshare/internal/auth"
	"photoshare/internal/cache"
	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/rbac"
	"photoshare/internal/repository"
)

const (
	subjectContextKey   = "subject"
	principalContextKey = "principal"
)

// Authenticate verifies the Bearer access token and stores its subject in
// the request context. Refresh tokens are rejected here by their scope.
func Authenticate(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: subjectContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			subject, err := tokens.VerifyAccessToken(tokenString)
			if err != nil {
				return nil, err
			}
			return subject, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			he := apperrors.MapErrorToHTTP(err)
			if he.StatusCode == http.StatusInternalServerError {
				he = apperrors.NewHTTPError(http.StatusUnauthorized, "invalid or expired token", "UNAUTHORIZED")
			}
			return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
		},
	})
}

// LoadPrincipal resolves the authenticated subject to its account, consulting
// the redis cache first, and stores it for handlers and role checks.
func LoadPrincipal(userRepo repository.UserRepository, principals *cache.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, ok := c.Get(subjectContextKey).(string)
			if !ok || email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token subject")
			}

			user, ok := principals.GetPrincipal(c.Request().Context(), email)
			if !ok {
				var err error
				user, err = userRepo.FindByEmail(c.Request().Context(), email)
				if err != nil {
					he := apperrors.MapErrorToHTTP(apperrors.ErrAccountNotFound)
					return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
				}
				principals.SetPrincipal(c.Request().Context(), user)
			}

			c.Set(principalContextKey, user)
			return next(c)
		}
	}
}

// RequireRoles is the transport adapter over the pure allow-list predicate.
// Each protected route declares its own role set; there is no hierarchy.
func RequireRoles(allowed ...rbac.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := Principal(c)
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if !rbac.Authorize(rbac.Role(principal.Role), allowed) {
				he := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
				return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// Principal returns the authenticated account stored by LoadPrincipal, nil
// outside the secured group.
func Principal(c echo.Context) *model.User {
	user, _ := c.Get(principalContextKey).(*model.User)
	return user
}
