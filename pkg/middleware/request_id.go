package middleware

import (
	"github.com/NeuralTrust/ParamGuard/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const RequestIDContextKey = "request_id"

type requestIDMiddleware struct{}

// NewRequestIDMiddleware makes sure every request carries an X-Request-Id,
// so log lines, audit events and the upstream see the same identifier.
func NewRequestIDMiddleware() Middleware {
	return &requestIDMiddleware{}
}

func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(auditlogs.RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
			c.Request().Header.Set(auditlogs.RequestIDHeader, id)
		} else {
			id = fiberutils.CopyString(id)
		}
		c.Locals(RequestIDContextKey, id)
		c.Set(auditlogs.RequestIDHeader, id)
		return c.Next()
	}
}
