package tui

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/studiowebux/paceman/internal/types"
)

const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// formatBody pretty-prints JSON bodies and, when highlight is set, colors
// known content types for the terminal. The stored response text is never changed.
func formatBody(body string, headers []types.Header, highlight bool) string {
	lang := languageFor(contentType(headers))

	out := body
	if lang == "json" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(body), "", "  "); err == nil {
			out = buf.String()
		}
	}

	if !highlight || lang == "" {
		return out
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, out, lang, highlightFormatter, highlightStyle); err != nil {
		return out
	}
	return buf.String()
}

func contentType(headers []types.Header) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, "Content-Type") {
			value, _ := h.Value.String()
			return strings.ToLower(value)
		}
	}
	return ""
}

func languageFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "json"):
		return "json"
	case strings.Contains(contentType, "html"):
		return "html"
	case strings.Contains(contentType, "xml"):
		return "xml"
	case strings.Contains(contentType, "yaml"):
		return "yaml"
	case strings.Contains(contentType, "javascript"):
		return "javascript"
	case strings.Contains(contentType, "css"):
		return "css"
	}
	return ""
}
