package middleware

import (
	"strings"

	"coursecms/backend/config"
	"coursecms/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminPrefix marks the routes behind the session guard.
const AdminPrefix = "/admin"

// SessionMiddleware sends every /admin request without a valid session back to "/".
// It is mounted globally so unknown /admin paths are guarded as well.
func SessionMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(c.Path(), AdminPrefix) {
			return c.Next()
		}
		if !utils.IsAuthenticated(c, cfg) {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}
