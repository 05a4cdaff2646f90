package router_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NeuralTrust/ParamGuard/pkg/config"
	handlers "github.com/NeuralTrust/ParamGuard/pkg/handlers/http"
	"github.com/NeuralTrust/ParamGuard/pkg/infra/jwt"
	"github.com/NeuralTrust/ParamGuard/pkg/middleware"
	"github.com/NeuralTrust/ParamGuard/pkg/sanitizer"
	"github.com/NeuralTrust/ParamGuard/pkg/server/router"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	body string
}

func (h stubHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString(h.body)
}

func guardTransport(mode config.GuardMode) *middleware.Transport {
	logger, _ := test.NewNullLogger()
	return &middleware.Transport{
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		RequestIDMiddleware:    middleware.NewRequestIDMiddleware(),
		InjectionGuardMiddleware: middleware.NewInjectionGuardMiddleware(
			logger,
			config.GuardConfig{
				Mode:       mode,
				StatusCode: fiber.StatusUnauthorized,
				Sources:    []string{config.SourceQuery, config.SourceForm, config.SourceBody},
			},
			sanitizer.Default(),
			nil,
			nil,
		),
	}
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestProxyRouter_Routes(t *testing.T) {
	app := fiber.New()
	r := router.NewProxyRouter(guardTransport(config.ModeBlock), handlers.HandlerTransport{
		ForwardedHandler: stubHandler{body: "forwarded"},
		MirrorHandler:    handlers.NewMirrorHandler(),
	})
	require.NoError(t, r.BuildRoutes(app))

	t.Run("health bypasses the guard", func(t *testing.T) {
		resp, body := send(t, app, httptest.NewRequest(http.MethodGet, router.HealthPath+"?q=%3Cscript%3E", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"status":"ok"`)
	})

	t.Run("ping", func(t *testing.T) {
		_, body := send(t, app, httptest.NewRequest(http.MethodGet, router.PingPath, nil))
		assert.Contains(t, body, "pong")
	})

	t.Run("clean request is forwarded", func(t *testing.T) {
		resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/orders?id=42", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "forwarded", body)
		assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	})

	t.Run("attack is rejected before forwarding", func(t *testing.T) {
		resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/orders?id=1'%20OR%201=1%20--", nil))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, sanitizer.IllegalCharactersNotice[:12])
		assert.NotContains(t, body, "forwarded")
	})

	t.Run("mirror is guarded", func(t *testing.T) {
		resp, _ := send(t, app, httptest.NewRequest(http.MethodPost, router.MirrorPath+"?x=%3Cb%3E", nil))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestProxyRouter_FilterModeMirror(t *testing.T) {
	app := fiber.New()
	r := router.NewProxyRouter(guardTransport(config.ModeFilter), handlers.HandlerTransport{
		ForwardedHandler: stubHandler{body: "forwarded"},
		MirrorHandler:    handlers.NewMirrorHandler(),
	})
	require.NoError(t, r.BuildRoutes(app))

	req := httptest.NewRequest(http.MethodPost, router.MirrorPath, strings.NewReader("name=a%3Bb"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, body := send(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"name":["ab"]`)
	assert.Contains(t, body, `"findings"`)
}

func TestProxyRouter_MissingForwarder(t *testing.T) {
	r := router.NewProxyRouter(nil, handlers.HandlerTransport{})
	assert.ErrorIs(t, r.BuildRoutes(fiber.New()), router.ErrInvalidHandlerTransport)
}

func adminApp(t *testing.T) (*fiber.App, jwt.Manager) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	manager := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "router-test-secret"})
	transport := &middleware.Transport{
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		RequestIDMiddleware:    middleware.NewRequestIDMiddleware(),
		AdminAuthMiddleware:    middleware.NewAdminAuthMiddleware(logger, manager),
	}
	app := fiber.New()
	r := router.NewAdminRouter(transport, handlers.HandlerTransport{
		InspectHandler:        handlers.NewInspectHandler(logger, sanitizer.Default()),
		GetOffenderHandler:    stubHandler{body: "offender"},
		DeleteOffenderHandler: stubHandler{body: "deleted"},
		GetVersionHandler:     handlers.NewGetVersionHandler(logger),
	})
	require.NoError(t, r.BuildRoutes(app))
	return app, manager
}

func TestAdminRouter_RequiresToken(t *testing.T) {
	app, _ := adminApp(t)

	resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/offenders/10.0.0.1", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = send(t, app, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRouter_AuthorizedRoutes(t *testing.T) {
	app, manager := adminApp(t)
	token, err := manager.CreateToken("ops", time.Hour)
	require.NoError(t, err)

	authorized := func(method, target, body string) *http.Request {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		return req
	}

	_, body := send(t, app, authorized(http.MethodGet, "/api/v1/offenders/10.0.0.1", ""))
	assert.Equal(t, "offender", body)

	_, body = send(t, app, authorized(http.MethodDelete, "/api/v1/offenders/10.0.0.1", ""))
	assert.Equal(t, "deleted", body)

	resp, body := send(t, app, authorized(http.MethodPost, "/api/v1/inspect", `{"value":"a;b"}`))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"special_characters":true`)
}

func TestAdminRouter_MissingHandlers(t *testing.T) {
	r := router.NewAdminRouter(nil, handlers.HandlerTransport{})
	assert.ErrorIs(t, r.BuildRoutes(fiber.New()), router.ErrInvalidHandlerTransport)
}
