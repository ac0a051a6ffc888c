package middleware

import (
	"log"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spotstay/booking-service/internal/models"
)

const principalKey = "principal"

// Auth resolves an HS256 bearer token into a Principal stored on the echo
// context. Requests without a usable token continue anonymously; handlers hand
// the (possibly nil) principal to the service, which decides.
func Auth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" || len(key) == 0 {
				return next(c)
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				log.Printf("[Auth] rejected token: %v", err)
				return next(c)
			}

			id, err := strconv.ParseUint(claims.Subject, 10, 64)
			if err != nil || id == 0 {
				log.Printf("[Auth] invalid subject %q", claims.Subject)
				return next(c)
			}

			c.Set(principalKey, &models.Principal{ID: uint(id)})
			return next(c)
		}
	}
}

// PrincipalFrom returns the authenticated principal, or nil.
func PrincipalFrom(c echo.Context) *models.Principal {
	p, _ := c.Get(principalKey).(*models.Principal)
	return p
}

// WithPrincipal attaches p to the context; used by tests and internal callers.
func WithPrincipal(c echo.Context, p *models.Principal) {
	c.Set(principalKey, p)
}
