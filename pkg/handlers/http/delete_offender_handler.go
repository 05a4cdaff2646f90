package http

import (
	"errors"

	"github.com/NeuralTrust/ParamGuard/pkg/app/offender"
	"github.com/NeuralTrust/ParamGuard/pkg/handlers/http/response"
	"github.com/NeuralTrust/ParamGuard/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type deleteOffenderHandler struct {
	logger    *logrus.Logger
	offenders offender.Tracker
}

func NewDeleteOffenderHandler(logger *logrus.Logger, offenders offender.Tracker) Handler {
	return &deleteOffenderHandler{
		logger:    logger,
		offenders: offenders,
	}
}

// Handle lifts a ban by forgetting every attack recorded for the ip.
// @Router /api/v1/offenders/{ip} [delete]
func (h *deleteOffenderHandler) Handle(c *fiber.Ctx) error {
	ip, ok := offenderIP(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(response.BadRequest("invalid ip"))
	}

	if err := h.offenders.Reset(c.UserContext(), ip); err != nil {
		if errors.Is(err, offender.ErrOffenderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(response.NotFound(err.Error()))
		}
		h.logger.WithError(err).WithField("ip", ip).Error("failed to reset offender")
		return c.Status(fiber.StatusInternalServerError).JSON(response.InternalError("failed to reset offender"))
	}

	subject, _ := c.Locals(middleware.AdminSubjectContextKey).(string) //nolint:errcheck
	h.logger.WithFields(logrus.Fields{
		"ip":    ip,
		"admin": subject,
	}).Info("offender reset")
	return c.SendStatus(fiber.StatusNoContent)
}
