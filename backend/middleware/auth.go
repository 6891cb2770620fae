package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"techguide/backend/config"
	"techguide/backend/models"
	"techguide/backend/utils"
)

const sessionKey = "session"

// Session is the authenticated caller, resolved once per request from the
// bearer token.
type Session struct {
	UserID uuid.UUID
	Role   models.Role
}

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ParseJWTToken(c.Get(fiber.HeaderAuthorization), cfg.JWTSecret)
		if err != nil {
			return utils.Unauthorized(c, "missing or invalid token")
		}
		c.Locals(sessionKey, Session{UserID: claims.UserID, Role: claims.Role})

		ctx := c.UserContext()
		logger := zerolog.Ctx(ctx).With().Str("user_id", claims.UserID.String()).Logger()
		c.SetUserContext(logger.WithContext(ctx))
		return c.Next()
	}
}

// CurrentSession returns the session stored by AuthMiddleware.
func CurrentSession(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(sessionKey).(Session)
	return s, ok
}

// RequireRole lets the request through only when the session role is one
// of roles. It must run after AuthMiddleware.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := CurrentSession(c)
		if !ok {
			return utils.Unauthorized(c, "missing or invalid token")
		}
		for _, r := range roles {
			if s.Role == r {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "insufficient role")
	}
}
