package http_test

import (
	"net/http"
	"testing"

	handlers "github.com/NeuralTrust/ParamGuard/pkg/handlers/http"
	"github.com/NeuralTrust/ParamGuard/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGetVersionHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/api/v1/version", handlers.NewGetVersionHandler(logrus.New()).Handle)

	resp, body := doRequest(t, app, http.MethodGet, "/api/v1/version")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"app_name":"`+version.AppName+`"`)
	assert.Contains(t, body, `"version":"`+version.Version+`"`)
}
