package auditlogs

import (
	"context"
	"time"

	"github.com/NeuralTrust/ParamGuard/pkg/infra/cache"
	"github.com/NeuralTrust/ParamGuard/pkg/infra/httpx"
	"github.com/NeuralTrust/ParamGuard/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const publishTimeout = 2 * time.Second

type Service interface {
	Emit(c *fiber.Ctx, event Event)
}

type service struct {
	enabled   bool
	logger    *logrus.Logger
	publisher cache.EventPublisher
	breaker   httpx.CircuitBreaker
	channel   cache.Channel
}

func NewService(
	publisher cache.EventPublisher,
	breaker httpx.CircuitBreaker,
	channel cache.Channel,
	logger *logrus.Logger,
	enabled bool,
) Service {
	if channel == "" {
		channel = cache.AttackEventsChannel
	}
	return &service{
		enabled:   enabled,
		logger:    logger,
		publisher: publisher,
		breaker:   breaker,
		channel:   channel,
	}
}

// NewNoopService returns a Service that drops every event.
func NewNoopService() Service {
	return &service{}
}

// Emit fills the request context of event and publishes it. Failures are
// logged and never surface to the request.
func (s *service) Emit(c *fiber.Ctx, event Event) {
	if !s.enabled || s.publisher == nil {
		return
	}

	event.Context = requestContext(c)

	ctx, cancel := context.WithTimeout(c.UserContext(), publishTimeout)
	defer cancel()

	publish := func() error {
		return s.publisher.Publish(ctx, s.channel, event)
	}
	var err error
	if s.breaker != nil {
		err = s.breaker.Execute(publish)
	} else {
		err = publish()
	}
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"event_type": event.Event.Type,
			"request_id": event.Context.RequestID,
			"error":      err.Error(),
		}).Error("failed to emit audit event")
	}
}

func requestContext(c *fiber.Ctx) Context {
	requestID := c.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	userAgent := c.Get(fiber.HeaderUserAgent)
	return Context{
		IPAddress: c.IP(),
		UserAgent: userAgent,
		Client:    utils.ParseUserAgent(userAgent, c.Get(fiber.HeaderAcceptLanguage)),
		RequestID: requestID,
		Method:    c.Method(),
		Path:      c.Path(),
	}
}
