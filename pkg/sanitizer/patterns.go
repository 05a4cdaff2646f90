package sanitizer

import (
	"time"

	"github.com/dlclark/regexp2"
)

// Character classes spelled out so the engine agrees with java.util.regex:
// '.' stops at every line terminator, \s and \w stay ASCII. \b and \B keep
// the engine's Unicode word characters, so CJK letters count as word text.
const (
	anyChar   = `[^\n\r\u0085\u2028\u2029]`
	spaceChar = `[ \t\n\x0B\f\r]`
	wordChar  = `[a-zA-Z0-9_]`
)

const (
	events = `((?i)onload|onunload|onchange|onsubmit|onreset` +
		`|onselect|onblur|onfocus|onkeydown|onkeypress|onkeyup` +
		`|onclick|ondblclick|onmousedown|onmousemove|onmouseout|onmouseover|onmouseup)`

	xssHTMLTag   = `(%3C)|(%3E)|[<>]+`
	xssInjection = `((%22%20)|(%22` + spaceChar + `)|('%22)|(%22\+))` + wordChar + anyChar + `*` +
		`|(` + spaceChar + `|%20)` + events + anyChar + `*|(%3D)|(%7C)`

	// XSSRegex matches encoded or raw angle brackets, quote-led payloads and DOM event handlers.
	XSSRegex = xssHTMLTag + "|" + xssInjection

	sqlInjection1 = `(?:')|(?:--)|(/\*(?:` + anyChar + `|[\n\r])*?\*/)` +
		`|(?i)(\b(and|exec|count|chr|mid|master|or|truncate|char|declare|join|insert|select|delete|update|create|drop)\b)`
	sqlInjection2 = `('` + anyChar + `+--)|(--)|(\|)|(%7C)`

	// SQLInjectionRegex matches quotes, comments, pipes and whole-word SQL keywords.
	SQLInjectionRegex = sqlInjection1 + "|" + sqlInjection2

	specialCharacters1 = `(<)|(>)|(/\*)|(\*/)|(')|(\|)|(;)|(\$)|(\B"\B)|(')|(\\")|(\(\))|(\B\+\B)|(,)`
	// 0x0d and 0x0a are matched as literal text, not as control bytes.
	specialCharacters2 = `(0x0d)|(0x0a)`

	// SpecialCharactersRegex matches shell and markup punctuation.
	SpecialCharactersRegex = specialCharacters1 + "|" + specialCharacters2
)

// matchTimeout bounds a single match or replace on the backtracking engine.
const matchTimeout = time.Second

var (
	sqlInjectionPattern      = compile(SQLInjectionRegex)
	xssPattern               = compile(XSSRegex)
	specialCharactersPattern = compile(SpecialCharactersRegex)
)

func compile(expr string) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.IgnoreCase)
	re.MatchTimeout = matchTimeout
	return re
}

// Kind names the pattern family that matched a value.
type Kind string

const (
	SQL               Kind = "sql"
	XSS               Kind = "xss"
	SpecialCharacters Kind = "special"
)

func (k Kind) String() string {
	return string(k)
}
