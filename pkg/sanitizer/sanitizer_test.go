package sanitizer_test

import (
	"testing"

	"github.com/NeuralTrust/ParamGuard/pkg/sanitizer"
	"github.com/stretchr/testify/assert"
)

var corpus = []string{
	"",
	"   ",
	"HelloWorld",
	"user123",
	"plain text value",
	"john.doe@example.com",
	"中文内容",
	"' OR 1=1 --",
	"admin'--",
	"1; DROP TABLE users",
	"SeLeCt * from t",
	"/* comment */",
	"a|b",
	"a%7Cb",
	"<script>alert(1)</script>",
	"%3Cscript%3E",
	"name onclick=alert(1)",
	"%22%20onmouseover",
	"a;b,c",
	"$HOME",
	"call()",
	"0x0d0x0a",
	"o'r",
	"sel'ect",
	"line1\r\nline2",
	"用户select",
	"用户 select",
	"中文or",
	`说"你好"`,
	"价格+税",
	"%22 x\rtail",
	"a/* x\u2028 */b",
	"a-<-b",
}

func TestPlainTextIsNotAnAttack(t *testing.T) {
	for _, s := range []string{"HelloWorld", "user123", "plain text value", "john.doe@example.com", "中文内容", "selection", "order", "android"} {
		t.Run(s, func(t *testing.T) {
			assert.False(t, sanitizer.IsInjectionAttack(s))
			assert.Equal(t, s, sanitizer.Filter(s))
		})
	}
}

func TestIsSQLInjectionAttack(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"single quote", "it's", true},
		{"tautology", "' OR 1=1 --", true},
		{"comment suffix", "admin'--", true},
		{"stacked drop", "1; DROP TABLE users", true},
		{"mixed case keyword", "SeLeCt * from t", true},
		{"block comment", "/* comment */", true},
		{"multi line comment", "/* multi\nline */", true},
		{"pipe", "a|b", true},
		{"encoded pipe", "a%7Cb", true},
		{"encoded pipe lower case", "a%7cb", true},
		{"keyword inside word", "selection", false},
		{"or inside word", "order", false},
		{"and inside word", "android", false},
		{"plain", "HelloWorld", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.IsSQLInjectionAttack(tt.input))
		})
	}
}

func TestIsXSSInjectionAttack(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"script tag", "<script>", true},
		{"closing bracket", "a>b", true},
		{"encoded tag", "%3Cscript%3E", true},
		{"encoded tag lower case", "%3cb%3e", true},
		{"event handler", "name onload=alert(1)", true},
		{"encoded space event handler", "x%20onclick=y", true},
		{"encoded quote", "%22%20onmouseover", true},
		{"encoded equals", "a%3Db", true},
		{"encoded pipe", "%7C", true},
		{"event name without separator", "onload", false},
		{"plain", "plain text value", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.IsXSSInjectionAttack(tt.input))
		})
	}
}

func TestIsSpecialCharactersInjectionAttack(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"semicolon", "a;b", true},
		{"comma", "a,b", true},
		{"dollar", "$HOME", true},
		{"empty call", "call()", true},
		{"escaped quote", `a\"b`, true},
		{"standalone quote", `say " hi`, true},
		{"standalone plus", "1 + 1", true},
		{"literal encoded carriage return", "0x0d", true},
		{"literal encoded line feed upper case", "0X0A", true},
		{"raw control characters", "line1\r\nline2", false},
		{"quote between letters", `a"b`, false},
		{"plus between digits", "1+1", false},
		{"plain", "user123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.IsSpecialCharactersInjectionAttack(tt.input))
		})
	}
}

func TestWordBoundariesTreatUnicodeLettersAsWordCharacters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		sql     bool
		special bool
	}{
		{"keyword glued to han characters", "用户select", false, false},
		{"or glued to han characters", "中文or", false, false},
		{"keyword after a space", "用户 select", true, false},
		{"quote between han characters", `说"你好"`, false, false},
		{"plus between han characters", "价格+税", false, false},
		{"plus between spaces", "价格 + 税", false, true},
		{"keyword glued to accented letters", "éselect", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sql, sanitizer.IsSQLInjectionAttack(tt.input))
			assert.Equal(t, tt.special, sanitizer.IsSpecialCharactersInjectionAttack(tt.input))
		})
	}
}

func TestDotStopsAtEveryLineTerminator(t *testing.T) {
	assert.Equal(t, "\rtail", sanitizer.FilterXSSInjection("%22 x\rtail"))
	assert.Equal(t, "\u2028tail", sanitizer.FilterXSSInjection("%22 x\u2028tail"))
	assert.Equal(t, "name\u0085tail", sanitizer.FilterXSSInjection("name onclick=x\u0085tail"))
	assert.Equal(t, "", sanitizer.FilterXSSInjection("%22 x\ttail"))

	// a block comment may span \r and \n but not the Unicode separators
	assert.Equal(t, "ab", sanitizer.FilterSQLInjection("a/* x\r\ny */b"))
	assert.Equal(t, "a/* x\u2028 */b", sanitizer.FilterSQLInjection("a/* x\u2028 */b"))
	assert.False(t, sanitizer.IsSQLInjectionAttack("a/* x\u2028 */b"))
}

func TestIsInjectionAttack_IsUnionOfDetectors(t *testing.T) {
	for _, s := range corpus {
		expected := sanitizer.IsSQLInjectionAttack(s) ||
			sanitizer.IsXSSInjectionAttack(s) ||
			sanitizer.IsSpecialCharactersInjectionAttack(s)
		assert.Equal(t, expected, sanitizer.IsInjectionAttack(s), s)

		_, detected := sanitizer.Detect(s)
		assert.Equal(t, expected, detected, s)
	}
}

func TestDetect_Order(t *testing.T) {
	kind, ok := sanitizer.Detect("' <b>")
	assert.True(t, ok)
	assert.Equal(t, sanitizer.SQL, kind)

	kind, ok = sanitizer.Detect("<b>")
	assert.True(t, ok)
	assert.Equal(t, sanitizer.XSS, kind)

	kind, ok = sanitizer.Detect("a;b")
	assert.True(t, ok)
	assert.Equal(t, sanitizer.SpecialCharacters, kind)

	kind, ok = sanitizer.Detect("hello")
	assert.False(t, ok)
	assert.Empty(t, kind)
}

func TestFilters_BlankInputIsReturnedUnchanged(t *testing.T) {
	filters := map[string]func(string) string{
		"sql":     sanitizer.FilterSQLInjection,
		"xss":     sanitizer.FilterXSSInjection,
		"special": sanitizer.FilterSpecialCharacters,
		"all":     sanitizer.Filter,
	}
	for name, filter := range filters {
		for _, blank := range []string{"", "   ", "\t\n"} {
			assert.Equal(t, blank, filter(blank), name)
		}
	}
}

func TestFilterSQLInjection(t *testing.T) {
	assert.Equal(t, "  1=1 ", sanitizer.FilterSQLInjection("' OR 1=1 --"))
	assert.Equal(t, "ab", sanitizer.FilterSQLInjection("a/* x\ny */b"))
	assert.Equal(t, "ab", sanitizer.FilterSQLInjection("a|b"))
	assert.Equal(t, " users", sanitizer.FilterSQLInjection("DROP users"))
	assert.Equal(t, "select", sanitizer.FilterSQLInjection("sel'ect"))
}

func TestFilterXSSInjection(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", sanitizer.FilterXSSInjection("<script>alert(1)</script>"))
	assert.Equal(t, "b", sanitizer.FilterXSSInjection("%3cb%3e"))
	assert.Equal(t, "name", sanitizer.FilterXSSInjection("name onclick=alert(1)"))
}

func TestFilterSpecialCharacters(t *testing.T) {
	assert.Equal(t, "abc", sanitizer.FilterSpecialCharacters("a;b,c"))
	assert.Equal(t, "HOME", sanitizer.FilterSpecialCharacters("$HOME"))
	assert.Equal(t, "call", sanitizer.FilterSpecialCharacters("call()"))
	assert.Equal(t, "line1\r\nline2", sanitizer.FilterSpecialCharacters("line1\r\nline2"))
	assert.Equal(t, "ab", sanitizer.FilterSpecialCharacters("a0x0db"))
}

func TestFilter(t *testing.T) {
	t.Run("sql tautology", func(t *testing.T) {
		out := sanitizer.Filter("' OR 1=1 --")
		assert.Equal(t, "  1=1 ", out)
		assert.False(t, sanitizer.IsSQLInjectionAttack(out))
	})

	t.Run("script tag", func(t *testing.T) {
		out := sanitizer.Filter("<script>alert(1)</script>")
		assert.Equal(t, "scriptalert(1)/script", out)
		assert.NotContains(t, out, "<")
		assert.NotContains(t, out, ">")
	})

	t.Run("encoded markup", func(t *testing.T) {
		assert.Equal(t, "name=b", sanitizer.Filter("name=%3Cb%3E"))
	})

	t.Run("keyword revealed by an earlier substitution", func(t *testing.T) {
		assert.Equal(t, "", sanitizer.Filter("o'r"))
		assert.Equal(t, "", sanitizer.Filter("sel'ect"))
	})
}

func TestFilter_RepeatsUntilStable(t *testing.T) {
	in := "a-<-b"
	single := sanitizer.FilterSpecialCharacters(sanitizer.FilterXSSInjection(sanitizer.FilterSQLInjection(in)))
	assert.Equal(t, "a--b", single)
	assert.Equal(t, "ab", sanitizer.Filter(in))
}

func TestFilter_IsIdempotent(t *testing.T) {
	for _, s := range corpus {
		once := sanitizer.Filter(s)
		assert.Equal(t, once, sanitizer.Filter(once), s)
	}
}

func TestDefault_DelegatesToPackageFunctions(t *testing.T) {
	s := sanitizer.Default()
	for _, in := range corpus {
		assert.Equal(t, sanitizer.IsInjectionAttack(in), s.IsInjectionAttack(in), in)
		assert.Equal(t, sanitizer.IsSQLInjectionAttack(in), s.IsSQLInjectionAttack(in), in)
		assert.Equal(t, sanitizer.IsXSSInjectionAttack(in), s.IsXSSInjectionAttack(in), in)
		assert.Equal(t, sanitizer.IsSpecialCharactersInjectionAttack(in), s.IsSpecialCharactersInjectionAttack(in), in)
		assert.Equal(t, sanitizer.Filter(in), s.Filter(in), in)
		assert.Equal(t, sanitizer.FilterSQLInjection(in), s.FilterSQLInjection(in), in)
		assert.Equal(t, sanitizer.FilterXSSInjection(in), s.FilterXSSInjection(in), in)
		assert.Equal(t, sanitizer.FilterSpecialCharacters(in), s.FilterSpecialCharacters(in), in)
	}
	assert.Same(t, s, sanitizer.Default())
}
