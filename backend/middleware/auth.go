package middleware

import (
	"coursehub/backend/config"
	"coursehub/backend/session"
	"coursehub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// UserKey is the Locals key holding the authenticated *models.User.
const UserKey = "user"

// AuthMiddleware admits requests carrying a valid token that belongs to the
// user currently signed in to sess.
func AuthMiddleware(cfg *config.Config, sess *session.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, err.Error())
		}

		user, err := sess.Require()
		if err != nil {
			return utils.HandleError(c, err)
		}
		if user.ID != userID {
			return utils.HandleError(c, session.ErrNotAuthenticated)
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}
