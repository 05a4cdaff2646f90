package http

import (
	"errors"
	"net"

	"github.com/NeuralTrust/ParamGuard/pkg/app/offender"
	"github.com/NeuralTrust/ParamGuard/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getOffenderHandler struct {
	logger    *logrus.Logger
	offenders offender.Tracker
}

func NewGetOffenderHandler(logger *logrus.Logger, offenders offender.Tracker) Handler {
	return &getOffenderHandler{
		logger:    logger,
		offenders: offenders,
	}
}

// Handle
// @Router /api/v1/offenders/{ip} [get]
func (h *getOffenderHandler) Handle(c *fiber.Ctx) error {
	ip, ok := offenderIP(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(response.BadRequest("invalid ip"))
	}

	entry, err := h.offenders.Get(c.UserContext(), ip)
	if err != nil {
		if errors.Is(err, offender.ErrOffenderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(response.NotFound(err.Error()))
		}
		h.logger.WithError(err).WithField("ip", ip).Error("failed to fetch offender")
		return c.Status(fiber.StatusInternalServerError).JSON(response.InternalError("failed to fetch offender"))
	}
	return c.Status(fiber.StatusOK).JSON(response.OK(entry))
}

func offenderIP(c *fiber.Ctx) (string, bool) {
	parsed := net.ParseIP(c.Params("ip"))
	if parsed == nil {
		return "", false
	}
	return parsed.String(), true
}
