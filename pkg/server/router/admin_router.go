package router

import (
	handlers "github.com/NeuralTrust/ParamGuard/pkg/handlers/http"
	"github.com/NeuralTrust/ParamGuard/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type adminRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewAdminRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &adminRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *adminRouter) BuildRoutes(router *fiber.App) error {
	ht := r.handlerTransport
	if ht.InspectHandler == nil || ht.GetOffenderHandler == nil ||
		ht.DeleteOffenderHandler == nil || ht.GetVersionHandler == nil {
		return ErrInvalidHandlerTransport
	}

	if r.middlewareTransport != nil {
		if r.middlewareTransport.PanicRecoverMiddleware != nil {
			router.Use(r.middlewareTransport.PanicRecoverMiddleware.Middleware())
		}
		if r.middlewareTransport.RequestIDMiddleware != nil {
			router.Use(r.middlewareTransport.RequestIDMiddleware.Middleware())
		}
	}

	router.Get("/version", ht.GetVersionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		if r.middlewareTransport != nil && r.middlewareTransport.AdminAuthMiddleware != nil {
			v1.Use(r.middlewareTransport.AdminAuthMiddleware.Middleware())
		}

		v1.Get("/version", ht.GetVersionHandler.Handle)
		v1.Post("/inspect", ht.InspectHandler.Handle)

		offenders := v1.Group("/offenders")
		{
			offenders.Get("/:ip", ht.GetOffenderHandler.Handle)
			offenders.Delete("/:ip", ht.DeleteOffenderHandler.Handle)
		}
	}
	return nil
}
