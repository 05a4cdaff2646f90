package http

import (
	"github.com/NeuralTrust/ParamGuard/pkg/handlers/http/response"
	"github.com/NeuralTrust/ParamGuard/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type MirrorResult struct {
	Method   string               `json:"method"`
	Path     string               `json:"path"`
	Query    map[string][]string  `json:"query"`
	Form     map[string][]string  `json:"form"`
	Body     string               `json:"body,omitempty"`
	Findings []middleware.Finding `json:"findings,omitempty"`
}

type mirrorHandler struct{}

// NewMirrorHandler echoes the request as the guard left it.
func NewMirrorHandler() Handler {
	return &mirrorHandler{}
}

func (h *mirrorHandler) Handle(c *fiber.Ctx) error {
	result := MirrorResult{
		Method: c.Method(),
		Path:   c.Path(),
		Query:  map[string][]string{},
		Form:   map[string][]string{},
	}
	c.Request().URI().QueryArgs().VisitAll(func(k, v []byte) {
		result.Query[string(k)] = append(result.Query[string(k)], string(v))
	})
	if form, err := c.MultipartForm(); err == nil {
		for k, v := range form.Value {
			result.Form[k] = append(result.Form[k], v...)
		}
	} else {
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			result.Form[string(k)] = append(result.Form[string(k)], string(v))
		})
		if len(result.Form) == 0 {
			result.Body = string(c.Body())
		}
	}
	if findings, ok := c.Locals(middleware.FindingsContextKey).([]middleware.Finding); ok {
		result.Findings = findings
	}
	return c.Status(fiber.StatusOK).JSON(response.OK(result))
}
