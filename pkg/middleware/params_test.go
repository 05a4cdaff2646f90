package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func TestOriginalParameters(t *testing.T) {
	assert.Equal(t, "", originalParameters(nil))
	assert.Equal(t, "", originalParameters(&requestParams{values: map[string][]string{}}))

	params := &requestParams{values: map[string][]string{
		"q":  {"<b>"},
		"id": {"1' OR 1=1 --", "2"},
	}}
	assert.Equal(t, `{"id":["1' OR 1=1 --","2"],"q":["<b>"]}`, originalParameters(params))

	params.jsonBody = []byte(`{"name":"x;y"}`)
	assert.Equal(t, `{"id":["1' OR 1=1 --","2"],"q":["<b>"]}`+"\n"+`{"name":"x;y"}`, originalParameters(params))

	onlyBody := &requestParams{values: map[string][]string{}, jsonBody: []byte(`["a"]`)}
	assert.Equal(t, `["a"]`, originalParameters(onlyBody))
}

func TestWalkJSON_FieldPaths(t *testing.T) {
	root, err := fastjson.Parse(`{"user":{"name":"bob","tags":["a","b"]},"top":"t","n":1}`)
	require.NoError(t, err)

	var fields []string
	var arena fastjson.Arena
	_, changed := walkJSON(root, "", func(_, field, value string) string {
		fields = append(fields, field+"="+value)
		return value
	}, &arena)

	assert.False(t, changed)
	assert.Equal(t, []string{
		"user=user",
		"user.name=name",
		"user.name=bob",
		"user.tags=tags",
		"user.tags[0]=a",
		"user.tags[1]=b",
		"top=top",
		"top=t",
		"n=n",
	}, fields)
}

func TestWalkJSON_RewritesKeysAndValues(t *testing.T) {
	root, err := fastjson.Parse(`{"a;b":"x","list":["ok","y$"],"keep":2}`)
	require.NoError(t, err)

	var arena fastjson.Arena
	replaced, changed := walkJSON(root, "", func(_, _, value string) string {
		switch value {
		case "a;b":
			return "ab"
		case "y$":
			return "y"
		}
		return value
	}, &arena)

	assert.True(t, changed)
	assert.Equal(t, `{"list":["ok","y"],"keep":2,"ab":"x"}`, string(replaced.MarshalTo(nil)))
}

func TestWalkJSON_TopLevelString(t *testing.T) {
	root, err := fastjson.Parse(`"<b>"`)
	require.NoError(t, err)

	var arena fastjson.Arena
	replaced, changed := walkJSON(root, "", func(_, field, _ string) string {
		assert.Equal(t, "$", field)
		return "b"
	}, &arena)

	assert.True(t, changed)
	assert.Equal(t, `"b"`, string(replaced.MarshalTo(nil)))
}

func TestWalkJSON_RewrittenKeyNeverOverwritesExistingMember(t *testing.T) {
	stripQuote := func(_, _, value string) string {
		switch value {
		case "a'", "a;":
			return "a"
		}
		return value
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"existing key after", `{"a'":1,"a":2}`, `{"a":2}`},
		{"existing key before", `{"a":2,"a'":1}`, `{"a":2}`},
		{"first rewrite wins", `{"a'":1,"a;":2}`, `{"a":1}`},
		{"nested object", `{"o":{"a'":"x","a":"y"}}`, `{"o":{"a":"y"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := fastjson.Parse(tt.in)
			require.NoError(t, err)

			var arena fastjson.Arena
			replaced, changed := walkJSON(root, "", stripQuote, &arena)

			assert.True(t, changed)
			assert.Equal(t, tt.want, string(replaced.MarshalTo(nil)))
		})
	}
}
