package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handlers "github.com/NeuralTrust/ParamGuard/pkg/handlers/http"
	"github.com/NeuralTrust/ParamGuard/pkg/middleware"
	"github.com/NeuralTrust/ParamGuard/pkg/sanitizer"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mirrorEnvelope struct {
	Code int                   `json:"code"`
	Data handlers.MirrorResult `json:"data"`
}

func mirror(t *testing.T, app *fiber.App, req *http.Request) mirrorEnvelope {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out mirrorEnvelope
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestMirrorHandler_QueryAndForm(t *testing.T) {
	app := fiber.New()
	app.Post("/__/mirror", handlers.NewMirrorHandler().Handle)

	req := httptest.NewRequest(http.MethodPost, "/__/mirror?id=1&id=2", strings.NewReader("name=john&city=rome"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	out := mirror(t, app, req)

	assert.Equal(t, http.MethodPost, out.Data.Method)
	assert.Equal(t, "/__/mirror", out.Data.Path)
	assert.Equal(t, []string{"1", "2"}, out.Data.Query["id"])
	assert.Equal(t, []string{"john"}, out.Data.Form["name"])
	assert.Equal(t, []string{"rome"}, out.Data.Form["city"])
	assert.Empty(t, out.Data.Body)
	assert.Empty(t, out.Data.Findings)
}

func TestMirrorHandler_JSONBodyAndFindings(t *testing.T) {
	app := fiber.New()
	app.Post("/__/mirror", func(c *fiber.Ctx) error {
		c.Locals(middleware.FindingsContextKey, []middleware.Finding{
			{Kind: sanitizer.XSS, Source: "body", Field: "name", Value: "<b>"},
		})
		return c.Next()
	}, handlers.NewMirrorHandler().Handle)

	req := httptest.NewRequest(http.MethodPost, "/__/mirror", strings.NewReader(`{"name":"b"}`))
	req.Header.Set("Content-Type", "application/json")
	out := mirror(t, app, req)

	assert.Equal(t, `{"name":"b"}`, out.Data.Body)
	require.Len(t, out.Data.Findings, 1)
	assert.Equal(t, sanitizer.XSS, out.Data.Findings[0].Kind)
	assert.Equal(t, "name", out.Data.Findings[0].Field)
}
