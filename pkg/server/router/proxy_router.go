package router

import (
	"errors"
	"net/http"
	"time"

	handlers "github.com/NeuralTrust/ParamGuard/pkg/handlers/http"
	"github.com/NeuralTrust/ParamGuard/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

const (
	HealthPath = "/health"
	PingPath   = "/__/ping"
	MirrorPath = "/__/mirror"
)

var ErrInvalidHandlerTransport = errors.New("invalid handler transport")

type proxyRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewProxyRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &proxyRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *proxyRouter) BuildRoutes(router *fiber.App) error {
	if r.handlerTransport.ForwardedHandler == nil {
		return ErrInvalidHandlerTransport
	}

	router.Get(HealthPath, func(ctx *fiber.Ctx) error {
		return ctx.Status(http.StatusOK).JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	ping := func(ctx *fiber.Ctx) error {
		return ctx.Status(http.StatusOK).JSON(fiber.Map{
			"message": "pong",
		})
	}
	router.Get(PingPath, ping)
	router.Post(PingPath, ping)

	if r.middlewareTransport != nil {
		if chain := r.middlewareTransport.GetMiddlewares(); len(chain) > 0 {
			router.Use(handlersToAny(chain)...)
		}
	}

	// mirror sits behind the guard so filtered requests can be inspected
	if r.handlerTransport.MirrorHandler != nil {
		router.All(MirrorPath, r.handlerTransport.MirrorHandler.Handle)
	}

	router.Use(r.handlerTransport.ForwardedHandler.Handle)
	return nil
}

func handlersToAny(chain []fiber.Handler) []interface{} {
	out := make([]interface{}, len(chain))
	for i, h := range chain {
		out[i] = h
	}
	return out
}
