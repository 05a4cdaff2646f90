package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/NeuralTrust/ParamGuard/pkg/app/offender"
	"github.com/NeuralTrust/ParamGuard/pkg/config"
	"github.com/NeuralTrust/ParamGuard/pkg/handlers/http/response"
	"github.com/NeuralTrust/ParamGuard/pkg/infra/auditlogs"
	"github.com/NeuralTrust/ParamGuard/pkg/infra/httpx"
	"github.com/NeuralTrust/ParamGuard/pkg/infra/prometheus"
	"github.com/NeuralTrust/ParamGuard/pkg/sanitizer"
	"github.com/NeuralTrust/ParamGuard/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	FindingsContextKey = "paramguard_findings"
	maxLoggedValue     = 100
)

type injectionGuardMiddleware struct {
	logger    *logrus.Logger
	cfg       config.GuardConfig
	sanitizer sanitizer.Sanitizer
	offenders offender.Tracker
	audit     auditlogs.Service
	sources   map[string]struct{}
	ignored   map[string]struct{}
}

func NewInjectionGuardMiddleware(
	logger *logrus.Logger,
	cfg config.GuardConfig,
	s sanitizer.Sanitizer,
	offenders offender.Tracker,
	audit auditlogs.Service,
) Middleware {
	if s == nil {
		s = sanitizer.New(cfg.StatusCode)
	}
	if offenders == nil {
		offenders = offender.NewNoopTracker()
	}
	if audit == nil {
		audit = auditlogs.NewNoopService()
	}
	if cfg.Mode == "" {
		cfg.Mode = config.ModeBlock
	}
	m := &injectionGuardMiddleware{
		logger:    logger,
		cfg:       cfg,
		sanitizer: s,
		offenders: offenders,
		audit:     audit,
		sources:   make(map[string]struct{}, len(cfg.Sources)),
		ignored:   make(map[string]struct{}, len(cfg.IgnoredHeaders)),
	}
	for _, source := range cfg.Sources {
		m.sources[source] = struct{}{}
	}
	for _, h := range cfg.IgnoredHeaders {
		m.ignored[strings.ToLower(h)] = struct{}{}
	}
	return m
}

func (m *injectionGuardMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.excluded(c.Path()) {
			return c.Next()
		}

		ip := c.IP()
		if m.offenders.IsBanned(c.UserContext(), ip) {
			prometheus.BannedRequestsTotal.Inc()
			m.logger.WithFields(logrus.Fields{
				"ip":   ip,
				"path": c.Path(),
			}).Warn("request from banned client rejected")
			return c.Status(fiber.StatusForbidden).
				JSON(response.Forbidden("too many injection attempts, try again later"))
		}

		if err := m.decodeBody(c); err != nil {
			m.logger.WithError(err).Warn("failed to decode request body")
			if m.cfg.Mode != config.ModeDetect {
				if errors.Is(err, httpx.ErrBodyTooLarge) {
					return c.Status(fiber.StatusRequestEntityTooLarge).
						JSON(response.TooLarge("decoded request body too large"))
				}
				return c.Status(fiber.StatusBadRequest).
					JSON(response.BadRequest("unsupported request body encoding"))
			}
		}

		findings, params, err := m.inspect(c)
		if err != nil {
			m.logger.WithError(err).Warn("failed to inspect request parameters")
			if m.cfg.Mode != config.ModeDetect {
				return c.Status(fiber.StatusBadRequest).JSON(response.BadRequest("malformed request parameters"))
			}
		}
		if len(findings) == 0 {
			return c.Next()
		}

		c.Locals(FindingsContextKey, findings)
		m.report(c, ip, findings)

		if m.cfg.Mode == config.ModeBlock {
			return m.sanitizer.AttackHandle(c, originalParameters(params))
		}
		return c.Next()
	}
}

func (m *injectionGuardMiddleware) excluded(path string) bool {
	for _, prefix := range m.cfg.ExcludePaths {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (m *injectionGuardMiddleware) enabled(source string) bool {
	_, ok := m.sources[source]
	return ok
}

// decodeBody replaces a Content-Encoded body with its plain form so that
// the form and body sources see what the application will see.
func (m *injectionGuardMiddleware) decodeBody(c *fiber.Ctx) error {
	if !m.enabled(config.SourceForm) && !m.enabled(config.SourceBody) {
		return nil
	}
	if len(c.Request().Header.Peek(fiber.HeaderContentEncoding)) == 0 {
		return nil
	}
	decoded, changed, err := httpx.DecodeRequestBody(c.Request(), m.cfg.MaxDecodedBody)
	if err != nil || !changed {
		return err
	}
	c.Request().Header.Del(fiber.HeaderContentEncoding)
	c.Request().SetBody(decoded)
	return nil
}

func (m *injectionGuardMiddleware) inspect(c *fiber.Ctx) ([]Finding, *requestParams, error) {
	var findings []Finding
	rewrite := m.cfg.Mode == config.ModeFilter
	visit := func(source, field, value string) string {
		kind, ok := m.sanitizer.Detect(value)
		if !ok {
			return value
		}
		findings = append(findings, Finding{
			Kind:   kind,
			Source: source,
			Field:  field,
			Value:  utils.Truncate(value, maxLoggedValue),
		})
		if !rewrite {
			return value
		}
		return m.sanitizer.Filter(value)
	}

	params := &requestParams{values: make(map[string][]string)}
	rewritten := make(map[string]bool)
	var inspectErr error

	if m.enabled(config.SourceQuery) {
		rewritten[config.SourceQuery] = inspectQuery(c, visit, rewrite, params)
	}
	if m.enabled(config.SourceForm) {
		changed, err := inspectForm(c, visit, rewrite, params)
		if err != nil {
			inspectErr = err
		}
		rewritten[config.SourceForm] = changed
	}
	if m.enabled(config.SourceBody) {
		rewritten[config.SourceBody] = inspectJSON(c, visit, rewrite, params)
	}
	if m.enabled(config.SourceHeader) {
		rewritten[config.SourceHeader] = inspectHeaders(c, m.ignored, visit, rewrite)
	}

	for source, changed := range rewritten {
		if changed {
			prometheus.FilteredValuesTotal.WithLabelValues(source).Add(float64(countSource(findings, source)))
		}
	}
	return findings, params, inspectErr
}

func countSource(findings []Finding, source string) int {
	n := 0
	for _, f := range findings {
		if f.Source == source {
			n++
		}
	}
	return n
}

func (m *injectionGuardMiddleware) report(c *fiber.Ctx, ip string, findings []Finding) {
	action := actionFor(m.cfg.Mode)
	for _, f := range findings {
		prometheus.AttacksTotal.WithLabelValues(f.Kind.String(), f.Source, action).Inc()
		m.logger.WithFields(logrus.Fields{
			"ip":     ip,
			"method": c.Method(),
			"path":   c.Path(),
			"kind":   f.Kind.String(),
			"source": f.Source,
			"field":  f.Field,
			"value":  f.Value,
			"action": action,
		}).Warn("injection attack detected")
	}

	if m.cfg.Mode != config.ModeFilter {
		if _, err := m.offenders.Record(c.UserContext(), ip); err != nil {
			m.logger.WithError(err).Warn("failed to record offender")
		}
	}

	first := findings[0]
	m.audit.Emit(c, auditlogs.Event{
		Event: auditlogs.EventInfo{
			Type:        eventTypeFor(m.cfg.Mode),
			Category:    auditlogs.CategoryRunTimeSecurity,
			Description: describe(findings),
			Status:      action,
		},
		Target: auditlogs.Target{
			Type:   auditlogs.TargetTypeParameter,
			Kind:   first.Kind.String(),
			Source: first.Source,
			Name:   first.Field,
			Value:  first.Value,
		},
	})
}

func actionFor(mode config.GuardMode) string {
	switch mode {
	case config.ModeFilter:
		return auditlogs.StatusFiltered
	case config.ModeDetect:
		return auditlogs.StatusDetected
	default:
		return auditlogs.StatusBlocked
	}
}

func eventTypeFor(mode config.GuardMode) string {
	switch mode {
	case config.ModeFilter:
		return auditlogs.EventTypeAttackFiltered
	case config.ModeDetect:
		return auditlogs.EventTypeAttackDetected
	default:
		return auditlogs.EventTypeAttackBlocked
	}
}

func describe(findings []Finding) string {
	if len(findings) == 1 {
		return "1 suspicious parameter"
	}
	return fmt.Sprintf("%d suspicious parameters", len(findings))
}

// originalParameters renders the inspected query and form parameters as
// JSON, followed by the raw JSON body when there was one.
func originalParameters(params *requestParams) string {
	if params == nil {
		return ""
	}
	var buf bytes.Buffer
	if len(params.values) > 0 {
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(params.values); err != nil {
			buf.Reset()
		}
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	if len(params.jsonBody) > 0 {
		if out != "" {
			out += "\n"
		}
		out += string(params.jsonBody)
	}
	return out
}
