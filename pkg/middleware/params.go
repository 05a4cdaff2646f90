package middleware

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/NeuralTrust/ParamGuard/pkg/config"
	"github.com/NeuralTrust/ParamGuard/pkg/sanitizer"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fastjson"
)

// Finding is a single parameter key or value matched by the sanitizer.
type Finding struct {
	Kind   sanitizer.Kind `json:"kind"`
	Source string         `json:"source"`
	Field  string         `json:"field"`
	Value  string         `json:"value"`
}

// paramVisitor receives every key and value the guard inspects. It returns
// the replacement text, which is ignored outside filter mode.
type paramVisitor func(source, field, value string) string

type requestParams struct {
	values   map[string][]string
	jsonBody []byte
}

var jsonParsers fastjson.ParserPool

func contentTypeIs(c *fiber.Ctx, mime string) bool {
	ct := string(c.Request().Header.ContentType())
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ct)), mime)
}

func visitArgs(args *fasthttp.Args, source string, visit paramVisitor, rewrite bool, params *requestParams) bool {
	type kv struct{ key, value string }
	var pairs []kv
	args.VisitAll(func(k, v []byte) {
		pairs = append(pairs, kv{key: string(k), value: string(v)})
	})

	changed := false
	for i, p := range pairs {
		params.values[p.key] = append(params.values[p.key], p.value)
		key := visit(source, p.key, p.key)
		value := visit(source, p.key, p.value)
		if key != p.key || value != p.value {
			pairs[i] = kv{key: key, value: value}
			changed = true
		}
	}
	if !rewrite || !changed {
		return false
	}

	args.Reset()
	for _, p := range pairs {
		args.Add(p.key, p.value)
	}
	return true
}

func inspectQuery(c *fiber.Ctx, visit paramVisitor, rewrite bool, params *requestParams) bool {
	uri := c.Request().URI()
	if !visitArgs(uri.QueryArgs(), config.SourceQuery, visit, rewrite, params) {
		return false
	}
	uri.SetQueryStringBytes(uri.QueryArgs().QueryString())
	return true
}

func inspectForm(c *fiber.Ctx, visit paramVisitor, rewrite bool, params *requestParams) (bool, error) {
	switch {
	case contentTypeIs(c, fiber.MIMEApplicationForm):
		postArgs := c.Request().PostArgs()
		if !visitArgs(postArgs, config.SourceForm, visit, rewrite, params) {
			return false, nil
		}
		c.Request().SetBody(postArgs.QueryString())
		return true, nil
	case contentTypeIs(c, fiber.MIMEMultipartForm):
		return inspectMultipart(c, visit, rewrite, params)
	}
	return false, nil
}

func inspectMultipart(c *fiber.Ctx, visit paramVisitor, rewrite bool, params *requestParams) (bool, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return false, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	values := make(map[string][]string, len(form.Value))
	changed := false
	for name, list := range form.Value {
		params.values[name] = append(params.values[name], list...)
		key := visit(config.SourceForm, name, name)
		if key != name {
			changed = true
		}
		for _, v := range list {
			filtered := visit(config.SourceForm, name, v)
			if filtered != v {
				changed = true
			}
			values[key] = append(values[key], filtered)
		}
	}
	if !rewrite || !changed {
		return false, nil
	}

	form.Value = values
	boundary := string(c.Request().Header.MultipartFormBoundary())
	var buf bytes.Buffer
	if err := fasthttp.WriteMultipartForm(&buf, form, boundary); err != nil {
		return false, fmt.Errorf("failed to encode multipart form: %w", err)
	}
	c.Request().SetBodyRaw(buf.Bytes())
	return true, nil
}

// inspectJSON walks object keys and string values. Non JSON bodies are
// left to the other sources.
func inspectJSON(c *fiber.Ctx, visit paramVisitor, rewrite bool, params *requestParams) bool {
	if !contentTypeIs(c, fiber.MIMEApplicationJSON) {
		return false
	}
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return false
	}

	parser := jsonParsers.Get()
	defer jsonParsers.Put(parser)
	root, err := parser.ParseBytes(body)
	if err != nil {
		return false
	}
	params.jsonBody = append([]byte(nil), body...)

	var arena fastjson.Arena
	replaced, changed := walkJSON(root, "", visit, &arena)
	if !rewrite || !changed {
		return false
	}
	c.Request().SetBody(replaced.MarshalTo(nil))
	return true
}

func walkJSON(v *fastjson.Value, path string, visit paramVisitor, arena *fastjson.Arena) (*fastjson.Value, bool) {
	switch v.Type() {
	case fastjson.TypeString:
		raw := string(v.GetStringBytes())
		field := path
		if field == "" {
			field = "$"
		}
		if filtered := visit(config.SourceBody, field, raw); filtered != raw {
			return arena.NewString(filtered), true
		}
		return v, false
	case fastjson.TypeArray:
		items, _ := v.Array() //nolint:errcheck
		changed := false
		for i, item := range items {
			replaced, itemChanged := walkJSON(item, path+"["+strconv.Itoa(i)+"]", visit, arena)
			if itemChanged {
				v.SetArrayItem(i, replaced)
				changed = true
			}
		}
		return v, changed
	case fastjson.TypeObject:
		obj, _ := v.Object() //nolint:errcheck
		type member struct {
			key   string
			value *fastjson.Value
		}
		var members []member
		obj.Visit(func(key []byte, value *fastjson.Value) {
			members = append(members, member{key: string(key), value: value})
		})

		changed := false
		for _, m := range members {
			field := m.key
			if path != "" {
				field = path + "." + m.key
			}
			key := visit(config.SourceBody, field, m.key)
			value, valueChanged := walkJSON(m.value, field, visit, arena)
			switch {
			case key != m.key && obj.Get(key) != nil:
				// the rewritten key already exists; keep that member and drop this one
				obj.Del(m.key)
				changed = true
			case key != m.key:
				obj.Del(m.key)
				obj.Set(key, value)
				changed = true
			case valueChanged:
				obj.Set(m.key, value)
				changed = true
			}
		}
		return v, changed
	}
	return v, false
}

func inspectHeaders(c *fiber.Ctx, ignored map[string]struct{}, visit paramVisitor, rewrite bool) bool {
	type header struct{ key, value, filtered string }
	var headers []header
	c.Request().Header.VisitAll(func(k, v []byte) {
		key := string(k)
		if _, skip := ignored[strings.ToLower(key)]; skip {
			return
		}
		headers = append(headers, header{key: key, value: string(v)})
	})

	changed := false
	for i, h := range headers {
		headers[i].filtered = visit(config.SourceHeader, h.key, h.value)
		if headers[i].filtered != h.value {
			changed = true
		}
	}
	if !rewrite || !changed {
		return false
	}
	for _, h := range headers {
		if h.filtered != h.value {
			c.Request().Header.Set(h.key, h.filtered)
		}
	}
	return true
}
