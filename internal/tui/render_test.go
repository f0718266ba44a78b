package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studiowebux/paceman/internal/types"
)

func TestRenderResponseHeaders_BytesRenderEmpty(t *testing.T) {
	resp := &types.Response{Headers: []types.Header{
		{Name: "Content-Type", Value: types.StringValue("text/plain")},
		{Name: "X-Bin", Value: types.BytesValue([]byte{0xff, 0xfe})},
	}}

	out := renderResponseHeaders(responseContext{resp: resp})
	lines := strings.Split(out, "\n")

	assert.Equal(t, "  Content-Type  text/plain", lines[0])
	assert.Equal(t, "  X-Bin", lines[1])
}

func TestRenderParams(t *testing.T) {
	assert.Contains(t, renderParams(requestContext{}), "no params")

	ctx := requestContext{
		req:        types.Request{Params: []types.KeyValue{{Key: "a", Value: "1"}}},
		adding:     true,
		paramInput: "+ key=value",
	}
	assert.Equal(t, "  a = 1\n+ key=value", renderParams(ctx))
}

func TestRenderBodyKinds(t *testing.T) {
	out := renderBodyKinds(requestContext{req: types.Request{Body: types.NewBody(types.BodyForm)}})
	assert.Equal(t, "  ( ) None  ( ) Text  ( ) JSON  (•) Form  ( ) Raw", out)
}

func TestRenderOutcome_UnknownReasonAndSize(t *testing.T) {
	env := CreateTestModel(t)

	out := env.m.renderOutcome(types.Succeeded(&types.Response{Status: 299, Text: "hi"}))
	assert.True(t, strings.HasPrefix(out, "299 0 ms\n"))
	assert.Contains(t, out, "hi")

	assert.Empty(t, env.m.renderOutcome(nil))
}

func TestFormatBody(t *testing.T) {
	jsonHeaders := []types.Header{{Name: "content-type", Value: types.StringValue("application/json; charset=utf-8")}}

	assert.Equal(t, "{\n  \"a\": 1\n}", formatBody(`{"a":1}`, jsonHeaders, false))
	assert.Equal(t, "{broken", formatBody("{broken", jsonHeaders, false))
	assert.Equal(t, "plain", formatBody("plain", nil, true))

	highlighted := formatBody(`{"a":1}`, jsonHeaders, true)
	assert.Contains(t, highlighted, "\x1b[")
	assert.Contains(t, highlighted, "a")
}

func TestLanguageFor(t *testing.T) {
	assert.Equal(t, "json", languageFor("application/problem+json"))
	assert.Equal(t, "html", languageFor("text/html"))
	assert.Equal(t, "xml", languageFor("application/xml"))
	assert.Equal(t, "", languageFor("application/octet-stream"))
}

func TestSuggestURLs(t *testing.T) {
	recent := []string{
		"https://api.example.com/users",
		"https://api.example.com/orders",
		"https://status.example.org",
		"https://api.example.com/users/1",
	}

	assert.Equal(t, recent[:MaxURLSuggestions], suggestURLs("", recent))

	got := suggestURLs("orders", recent)
	assert.Equal(t, []string{"https://api.example.com/orders"}, got)

	assert.NotContains(t, suggestURLs("https://status.example.org", recent), "https://status.example.org")
	assert.Empty(t, suggestURLs("zzzz", recent))
}
