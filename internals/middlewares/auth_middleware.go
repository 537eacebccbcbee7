// file: internals/middlewares/auth_middleware.go
package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"hrisku_backend/internals/configs"
	"hrisku_backend/internals/helpers"
)

// AuthJWT memvalidasi Bearer token dan menaruh user_id + role di Locals.
// Semua controller mengambil actor dari sini (tidak ada actor ambient).
func AuthJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "User belum login")
		}
		parts := strings.SplitN(raw, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Format Authorization tidak valid")
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(configs.JWTSecret), nil
		})
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak valid")
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			sub, _ = claims["user_id"].(string)
		}
		id, perr := uuid.Parse(strings.TrimSpace(sub))
		if perr != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "User ID pada token tidak valid")
		}

		c.Locals("user_id", id)
		if role, ok := claims["role"].(string); ok {
			c.Locals("role", strings.ToLower(strings.TrimSpace(role)))
		}
		return c.Next()
	}
}

// RequireRoles menolak request yang role-nya tidak ada di whitelist.
// Dipasang SETELAH AuthJWT.
func RequireRoles(allowed ...string) fiber.Handler {
	set := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		set[strings.ToLower(r)] = true
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role == "" || !set[role] {
			return helper.JsonError(c, fiber.StatusForbidden, "Role tidak diizinkan mengakses fitur ini")
		}
		return c.Next()
	}
}
