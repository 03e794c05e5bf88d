package api

import (
	"errors"
	"strings"

	"github.com/example/produto-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserIDContextKey is the key used to store the authenticated user id in
// the Fiber context.
const UserIDContextKey = "userID"

// AuthRequired validates the bearer token on the Authorization header and
// stores the resolved user id in the request locals. A missing header
// terminates the request immediately; nothing downstream runs.
func AuthRequired(authPort auth.Port) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Message: "Token de acesso requerida",
			})
		}

		// Credential is the second whitespace-separated field
		// ("Bearer <token>").
		fields := strings.Fields(header)
		if len(fields) < 2 {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Message: "Acesso negado",
			})
		}

		userID, err := authPort.VerifyToken(fields[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Message: "Acesso negado",
			})
		}

		c.Locals(UserIDContextKey, userID)
		return c.Next()
	}
}

// AdminRequired admits the request only when the authenticated user's role
// set contains ADMIN. Must run after AuthRequired.
func AdminRequired(authPort auth.Port) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(UserIDContextKey).(uint)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(MessageResponse{
				Message: "Acesso não autorizado",
			})
		}

		err := authPort.AuthorizeAdmin(c.UserContext(), userID)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, auth.ErrUserUnknown):
			return c.Status(fiber.StatusForbidden).JSON(MessageResponse{
				Message: "Acesso não autorizado",
			})
		case errors.Is(err, auth.ErrAdminRequired):
			return c.Status(fiber.StatusForbidden).JSON(MessageResponse{
				Message: "Role de ADMIN requerida",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
				Message: "Erro ao verificar roles de usuário - " + err.Error(),
			})
		}
	}
}
