package sanitizer

import (
	"fmt"

	"github.com/NeuralTrust/ParamGuard/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
)

// IllegalCharactersNotice prefixes the original parameters in rejection bodies.
const IllegalCharactersNotice = "请求内容包含非法字符,原请求内容:\n"

// AttackHandle rejects the request with a single JSON envelope embedding
// the unfiltered parameters.
func (s *sanitizer) AttackHandle(c *fiber.Ctx, parameters string) error {
	body, err := response.Unauthorized(IllegalCharactersNotice + parameters).JSON()
	if err != nil {
		return fmt.Errorf("failed to encode attack response: %w", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(s.statusCode).Send(body)
}
