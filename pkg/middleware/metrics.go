package middleware

import (
	"fmt"
	"time"

	"github.com/NeuralTrust/ParamGuard/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	metricsWorkers   = 5
	metricsQueueSize = 1000
)

type metricsMiddleware struct {
	logger   *logrus.Logger
	taskChan chan func()
}

// NewMetricsMiddleware counts requests and, when latency is enabled,
// observes their duration. Prometheus updates run on a small worker pool.
func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	m := &metricsMiddleware{
		logger:   logger,
		taskChan: make(chan func(), metricsQueueSize),
	}
	m.startWorkers(metricsWorkers)
	return m
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		elapsed := time.Since(start)
		method := c.Method()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.enqueueTask(func() {
			m.record(method, status, elapsed)
		})
		return err
	}
}

func (m *metricsMiddleware) startWorkers(n int) {
	for i := 0; i < n; i++ {
		go func() {
			for task := range m.taskChan {
				task()
			}
		}()
	}
}

func (m *metricsMiddleware) enqueueTask(task func()) {
	select {
	case m.taskChan <- task:
	default:
		m.logger.Warn("metrics queue full, dropping request metrics")
	}
}

func (m *metricsMiddleware) record(method string, status int, elapsed time.Duration) {
	prometheus.RequestTotal.WithLabelValues(method, statusClass(status)).Inc()
	if prometheus.Config.EnableLatency {
		prometheus.RequestLatency.WithLabelValues(method).Observe(float64(elapsed.Milliseconds()))
	}
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", status/100)
}
