// file: internals/helpers/auth/get_user_id_from_token.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"hrisku_backend/internals/configs"
)

// GetUserIDFromToken mengambil user_id (actor) dari c.Locals("user_id"),
// fallback parse Bearer token langsung. Return 401 kalau belum login,
// 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	if v := c.Locals("user_id"); v != nil {
		switch t := v.(type) {
		case uuid.UUID:
			if t != uuid.Nil {
				return t, nil
			}
		case string:
			if id, err := uuid.Parse(strings.TrimSpace(t)); err == nil {
				return id, nil
			}
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
		}
	}

	raw := bearerToken(c)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(configs.JWTSecret), nil
	})
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Token tidak valid")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		sub, _ = claims["user_id"].(string)
	}
	id, perr := uuid.Parse(strings.TrimSpace(sub))
	if perr != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}

	c.Locals("user_id", id)
	return id, nil
}

func bearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
