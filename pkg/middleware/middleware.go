package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	PanicRecoverMiddleware   Middleware
	RequestIDMiddleware      Middleware
	MetricsMiddleware        Middleware
	InjectionGuardMiddleware Middleware
	AdminAuthMiddleware      Middleware
}

// GetMiddlewares returns the proxy chain in execution order. Nil entries
// are skipped so optional middlewares can be left out.
func (t *Transport) GetMiddlewares() []fiber.Handler {
	var handlers []fiber.Handler
	for _, m := range []Middleware{
		t.PanicRecoverMiddleware,
		t.RequestIDMiddleware,
		t.MetricsMiddleware,
		t.InjectionGuardMiddleware,
	} {
		if m != nil {
			handlers = append(handlers, m.Middleware())
		}
	}
	return handlers
}
