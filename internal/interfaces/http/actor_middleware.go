package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/salvaclients/stock-ledger-api/internal/application/dto"
	"github.com/salvaclients/stock-ledger-api/pkg/token"
)

// LocalActor key de c.Locals para el actor autenticado.
const LocalActor = "actor"

// ActorMiddleware extrae el actor del Bearer token si está presente.
// La ausencia de token no es un error: la identidad la resuelve la capa de auth
// externa y el caso de uso atribuye a "system" cuando no hay actor.
// Un token presente pero inválido sí se rechaza.
func ActorMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Next()
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Next()
		}
		actor, err := token.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// GetActor devuelve el actor del contexto; vacío si no hay usuario autenticado.
func GetActor(c *fiber.Ctx) string {
	v := c.Locals(LocalActor)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
