package sanitizer

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/gofiber/fiber/v2"
)

// AttackHandler writes the rejection for a request whose parameters were
// classified as an injection attack.
type AttackHandler interface {
	AttackHandle(c *fiber.Ctx, parameters string) error
}

//go:generate mockery --name=Sanitizer --dir=. --output=./mocks --filename=sanitizer_mock.go --case=underscore
type Sanitizer interface {
	AttackHandler

	IsInjectionAttack(raw string) bool
	IsSQLInjectionAttack(raw string) bool
	IsXSSInjectionAttack(raw string) bool
	IsSpecialCharactersInjectionAttack(raw string) bool
	Detect(raw string) (Kind, bool)

	Filter(raw string) string
	FilterSQLInjection(raw string) string
	FilterXSSInjection(raw string) string
	FilterSpecialCharacters(raw string) string
}

type sanitizer struct {
	statusCode int
}

var defaultSanitizer Sanitizer = New(fiber.StatusUnauthorized)

// Default returns the process-wide sanitizer answering attacks with 401.
func Default() Sanitizer {
	return defaultSanitizer
}

// New returns a sanitizer whose AttackHandle replies with statusCode.
// Any value outside the HTTP status range falls back to 401.
func New(statusCode int) Sanitizer {
	if statusCode < 100 || statusCode > 599 {
		statusCode = fiber.StatusUnauthorized
	}
	return &sanitizer{statusCode: statusCode}
}

func (s *sanitizer) IsInjectionAttack(raw string) bool {
	return IsInjectionAttack(raw)
}

func (s *sanitizer) IsSQLInjectionAttack(raw string) bool {
	return IsSQLInjectionAttack(raw)
}

func (s *sanitizer) IsXSSInjectionAttack(raw string) bool {
	return IsXSSInjectionAttack(raw)
}

func (s *sanitizer) IsSpecialCharactersInjectionAttack(raw string) bool {
	return IsSpecialCharactersInjectionAttack(raw)
}

func (s *sanitizer) Detect(raw string) (Kind, bool) {
	return Detect(raw)
}

func (s *sanitizer) Filter(raw string) string {
	return Filter(raw)
}

func (s *sanitizer) FilterSQLInjection(raw string) string {
	return FilterSQLInjection(raw)
}

func (s *sanitizer) FilterXSSInjection(raw string) string {
	return FilterXSSInjection(raw)
}

func (s *sanitizer) FilterSpecialCharacters(raw string) string {
	return FilterSpecialCharacters(raw)
}

// IsInjectionAttack reports whether raw matches the SQL, XSS or special
// characters pattern, checked in that order.
func IsInjectionAttack(raw string) bool {
	return IsSQLInjectionAttack(raw) ||
		IsXSSInjectionAttack(raw) ||
		IsSpecialCharactersInjectionAttack(raw)
}

func IsSQLInjectionAttack(raw string) bool {
	return matches(sqlInjectionPattern, raw)
}

func IsXSSInjectionAttack(raw string) bool {
	return matches(xssPattern, raw)
}

func IsSpecialCharactersInjectionAttack(raw string) bool {
	return matches(specialCharactersPattern, raw)
}

// Detect returns the first pattern family matching raw, in the same order
// IsInjectionAttack evaluates them.
func Detect(raw string) (Kind, bool) {
	switch {
	case IsSQLInjectionAttack(raw):
		return SQL, true
	case IsXSSInjectionAttack(raw):
		return XSS, true
	case IsSpecialCharactersInjectionAttack(raw):
		return SpecialCharacters, true
	}
	return "", false
}

// Filter strips SQL, then XSS, then special characters matches. The
// pipeline repeats until a pass leaves the value untouched, so the result
// is a fixed point: Filter(Filter(s)) == Filter(s). Text exposed by a
// later stage is stripped on the next round, so "a-<-b" becomes "ab" and
// not the single-pass "a--b".
func Filter(raw string) string {
	out := raw
	for {
		next := FilterSpecialCharacters(FilterXSSInjection(FilterSQLInjection(out)))
		if next == out {
			return out
		}
		out = next
	}
}

func FilterSQLInjection(raw string) string {
	return replaceAll(sqlInjectionPattern, raw)
}

func FilterXSSInjection(raw string) string {
	return replaceAll(xssPattern, raw)
}

func FilterSpecialCharacters(raw string) string {
	return replaceAll(specialCharactersPattern, raw)
}

// matches treats a value the engine could not classify within
// matchTimeout as an attack.
func matches(pattern *regexp2.Regexp, raw string) bool {
	ok, err := pattern.MatchString(raw)
	if err != nil {
		return true
	}
	return ok
}

// replaceAll drops the whole value when the engine times out.
func replaceAll(pattern *regexp2.Regexp, raw string) string {
	if isBlank(raw) {
		return raw
	}
	out, err := pattern.Replace(raw, "", -1, -1)
	if err != nil {
		return ""
	}
	return out
}

func isBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
