package middleware

import (
	"errors"
	"fmt"
	"strings"

	"moviehub/models"
	"moviehub/service"
	"moviehub/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired validates the bearer token and resolves it to an account. The
// resolved user lands in c.Locals("user").
func AuthRequired(secret string, users *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Missing or malformed token"))
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}
		email, _ := claims["email"].(string)

		user, err := users.GetByEmail(c.UserContext(), email)
		if errors.Is(err, store.ErrUserNotFound) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Account no longer exists"))
		}
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID.Hex())
		return c.Next()
	}
}

// APIKeyRequired resolves the x-api-key header to an account. Comment routes
// use this instead of bearer tokens.
func APIKeyRequired(users *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := users.ResolveAPIKey(c.UserContext(), c.Get("x-api-key"))
		if errors.Is(err, store.ErrUserNotFound) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized"))
		}
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID.Hex())
		return c.Next()
	}
}
