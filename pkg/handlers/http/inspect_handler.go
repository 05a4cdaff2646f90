package http

import (
	"github.com/NeuralTrust/ParamGuard/pkg/handlers/http/request"
	"github.com/NeuralTrust/ParamGuard/pkg/handlers/http/response"
	"github.com/NeuralTrust/ParamGuard/pkg/sanitizer"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type InspectResult struct {
	Attack            bool           `json:"attack"`
	Kind              sanitizer.Kind `json:"kind,omitempty"`
	SQLInjection      bool           `json:"sql_injection"`
	XSSInjection      bool           `json:"xss_injection"`
	SpecialCharacters bool           `json:"special_characters"`
	Filtered          string         `json:"filtered"`
	FilteredSQL       string         `json:"filtered_sql"`
	FilteredXSS       string         `json:"filtered_xss"`
	FilteredSpecial   string         `json:"filtered_special"`
}

type inspectHandler struct {
	logger    *logrus.Logger
	sanitizer sanitizer.Sanitizer
}

func NewInspectHandler(logger *logrus.Logger, s sanitizer.Sanitizer) Handler {
	return &inspectHandler{
		logger:    logger,
		sanitizer: s,
	}
}

// Handle runs a single value through every detector and filter.
// @Router /api/v1/inspect [post]
func (h *inspectHandler) Handle(c *fiber.Ctx) error {
	var req request.InspectRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("invalid inspect request body")
		return c.Status(fiber.StatusBadRequest).JSON(response.BadRequest("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.BadRequest(err.Error()))
	}

	value := *req.Value
	kind, attack := h.sanitizer.Detect(value)
	return c.Status(fiber.StatusOK).JSON(response.OK(InspectResult{
		Attack:            attack,
		Kind:              kind,
		SQLInjection:      h.sanitizer.IsSQLInjectionAttack(value),
		XSSInjection:      h.sanitizer.IsXSSInjectionAttack(value),
		SpecialCharacters: h.sanitizer.IsSpecialCharactersInjectionAttack(value),
		Filtered:          h.sanitizer.Filter(value),
		FilteredSQL:       h.sanitizer.FilterSQLInjection(value),
		FilteredXSS:       h.sanitizer.FilterXSSInjection(value),
		FilteredSpecial:   h.sanitizer.FilterSpecialCharacters(value),
	}))
}
