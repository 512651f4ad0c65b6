package middleware

import (
	"time"

	"butik/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the signed guest session token.
const SessionCookie = "cart_session"

// CartSession is a Fiber middleware that ensures every request carries a
// valid guest session. A missing or invalid token gets a fresh one; the
// resolved session ID is stored in the context for the handlers.
func CartSession(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)

		if tokenString != "" {
			sessionID, err := sessions.ValidateToken(tokenString)
			if err == nil {
				c.Locals("session_id", sessionID)
				return c.Next()
			}
			// Fall through and issue a replacement for the bad token.
		}

		sessionID, token, err := sessions.IssueToken()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not establish a cart session",
				"error":   err.Error(),
			})
		}

		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    token,
			Expires:  time.Now().Add(30 * 24 * time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		c.Locals("session_id", sessionID)
		return c.Next()
	}
}

// SessionID extracts the session ID the middleware stored in the context.
func SessionID(c *fiber.Ctx) string {
	sessionID, _ := c.Locals("session_id").(string)
	return sessionID
}
