package http

import (
	"strings"

	"github.com/NeuralTrust/ParamGuard/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

type forwardedHandler struct {
	logger   *logrus.Logger
	upstream string
	client   *fasthttp.Client
}

// NewForwardedHandler proxies every request that passed the guard to
// upstream, keeping any rewrite the guard applied.
func NewForwardedHandler(logger *logrus.Logger, upstream string, client *fasthttp.Client) Handler {
	return &forwardedHandler{
		logger:   logger,
		upstream: strings.TrimRight(upstream, "/"),
		client:   client,
	}
}

func (h *forwardedHandler) Handle(c *fiber.Ctx) error {
	if h.upstream == "" {
		return c.Status(fiber.StatusBadGateway).
			JSON(response.New(fiber.StatusBadGateway, "no upstream configured", nil))
	}

	// RequestURI is rebuilt from the parsed URI, so it carries a query
	// string the guard may have rewritten.
	target := h.upstream + string(c.Request().URI().RequestURI())
	if err := proxy.Do(c, target, h.client); err != nil {
		h.logger.WithFields(logrus.Fields{
			"target": target,
			"error":  err.Error(),
		}).Error("failed to forward request")
		return c.Status(fiber.StatusBadGateway).
			JSON(response.New(fiber.StatusBadGateway, "upstream unavailable", nil))
	}
	return nil
}
