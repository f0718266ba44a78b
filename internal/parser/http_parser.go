package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/studiowebux/paceman/internal/types"
)

// parseHTTP parses the .http format: requests separated by "###", each a
// request line, header lines, a blank line and an optional body.
func parseHTTP(data []byte) ([]Entry, error) {
	var (
		entries   []Entry
		current   *Entry
		headers   map[string]string
		bodyLines []string
		inBody    bool
		started   bool
	)

	flush := func() {
		if current == nil || !started {
			return
		}
		current.Request.Headers = sortedHeaders(headers)
		if len(bodyLines) > 0 {
			current.Request.Body = types.Body{
				Kind: bodyKindFor(headers),
				Text: strings.TrimRight(strings.Join(bodyLines, "\n"), "\n"),
			}
		}
		entries = append(entries, *current)
	}

	reset := func(name string) {
		current = &Entry{Name: name, Request: types.Request{Body: types.NewBody(types.BodyNone)}}
		headers = map[string]string{}
		bodyLines = nil
		inBody = false
		started = false
	}

	reset("")

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if strings.HasPrefix(line, "###") {
			flush()
			reset(strings.TrimSpace(strings.TrimPrefix(line, "###")))
			continue
		}

		if !inBody && (strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")) {
			continue
		}

		if !started {
			if strings.TrimSpace(line) == "" {
				continue
			}
			req, err := parseRequestLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			current.Request.Method = req.Method
			current.Request.URL = req.URL
			started = true
			continue
		}

		if !inBody {
			if strings.TrimSpace(line) == "" {
				inBody = true
				continue
			}
			key, value, ok := strings.Cut(line, ":")
			if !ok || strings.TrimSpace(key) == "" || strings.ContainsAny(strings.TrimSpace(key), " \t{[\"'") {
				inBody = true
				bodyLines = append(bodyLines, line)
				continue
			}
			headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
			continue
		}

		bodyLines = append(bodyLines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	flush()

	if len(entries) == 0 {
		return nil, fmt.Errorf("no requests found")
	}
	return entries, nil
}

// parseRequestLine reads "METHOD URL [HTTP/x]" or a bare URL, which means GET
func parseRequestLine(line string) (types.Request, error) {
	parts := strings.Fields(line)
	if len(parts) == 1 {
		return types.Request{Method: types.MethodGet, URL: parts[0]}, nil
	}

	method, err := types.ParseMethod(parts[0])
	if err != nil {
		return types.Request{}, err
	}
	return types.Request{Method: method, URL: parts[1]}, nil
}

func bodyKindFor(headers map[string]string) types.BodyKind {
	for k, v := range headers {
		if strings.EqualFold(k, "Content-Type") && strings.Contains(strings.ToLower(v), "json") {
			return types.BodyJSON
		}
	}
	return types.BodyText
}

// sortedHeaders turns a header map into a list ordered by name
func sortedHeaders(h map[string]string) []types.KeyValue {
	if len(h) == 0 {
		return nil
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]types.KeyValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, types.KeyValue{Key: k, Value: h[k]})
	}
	return out
}
