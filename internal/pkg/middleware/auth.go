package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"

	"github.com/StefanHaring/InkPress/internal/pkg/env"
	"github.com/StefanHaring/InkPress/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the caller identity from a bearer token
// issued by the external identity provider and stores it in Locals. Requests
// without a valid token proceed anonymously; protected handlers reject them.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Next()
		}

		claims, err := verifyIdentityToken(token)
		if err != nil {
			log.Debugf("[Auth] rejected bearer token: %v", err)
			return c.Next()
		}

		usercontext.SetUserContext(c, usercontext.UserContext{
			UserID:     claims.Subject,
			Username:   claims.Username,
			Email:      claims.Email,
			IsLoggedIn: true,
		})
		return c.Next()
	}
}

// RequireAPIAuth ensures a verified identity for API routes and returns JSON
// 401 when it is missing.
func RequireAPIAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized User",
		})
	}
	return c.Next()
}

// IdentityClaims are the claims the core consumes from the provider's token.
// Subject is the stable opaque caller identity; profile fields are optional
// and only used at first-seen provisioning.
type IdentityClaims struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func verifyIdentityToken(token string) (*IdentityClaims, error) {
	secret := env.GetEnv("AUTH_JWT_SECRET", "")
	if secret == "" {
		return nil, errors.New("AUTH_JWT_SECRET not configured")
	}

	claims := &IdentityClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
