package sanitizer

import (
	"strings"
	"testing"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
)

func TestMatchTimeoutFailsClosed(t *testing.T) {
	re := regexp2.MustCompile(`^(a+)+$`, regexp2.None)
	re.MatchTimeout = time.Millisecond
	input := strings.Repeat("a", 40) + "!"

	assert.True(t, matches(re, input))
	assert.Equal(t, "", replaceAll(re, input))
}

func TestPatternsCarryMatchTimeout(t *testing.T) {
	for _, re := range []*regexp2.Regexp{sqlInjectionPattern, xssPattern, specialCharactersPattern} {
		assert.Equal(t, matchTimeout, re.MatchTimeout)
	}
}
