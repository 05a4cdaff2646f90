package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Proxy
	ForwardedHandler Handler
	MirrorHandler    Handler

	// Admin
	InspectHandler        Handler
	GetOffenderHandler    Handler
	DeleteOffenderHandler Handler
	GetVersionHandler     Handler
}
