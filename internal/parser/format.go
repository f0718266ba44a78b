package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/paceman/internal/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a request file
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatHTTP  Format = "http"
)

// Entry is one request read from a file
type Entry struct {
	Name    string
	Request types.Request
}

// requestFile is the on-disk shape of a structured request
type requestFile struct {
	Name    string            `json:"name" yaml:"name"`
	Method  string            `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Params  []types.KeyValue  `json:"params" yaml:"params"`
	Headers map[string]string `json:"headers" yaml:"headers"`
	Body    *bodyFile         `json:"body" yaml:"body"`
}

type bodyFile struct {
	Kind string           `json:"kind" yaml:"kind"`
	Text string           `json:"text" yaml:"text"`
	Form []types.KeyValue `json:"form" yaml:"form"`
	Raw  string           `json:"raw" yaml:"raw"`
}

// DetectFormat picks the format from the extension, sniffing the content when the extension is unknown
func DetectFormat(filePath string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".jsonc":
		return FormatJSONC
	case ".http", ".rest":
		return FormatHTTP
	}

	content := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(content, "{"), strings.HasPrefix(content, "["):
		return FormatJSONC
	case strings.HasPrefix(content, "---"):
		return FormatYAML
	}
	return FormatHTTP
}

// ParseFile reads every request in filePath
func ParseFile(filePath string) ([]Entry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	entries, err := Parse(DetectFormat(filePath, data), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return entries, nil
}

// Parse decodes data in the given format
func Parse(format Format, data []byte) ([]Entry, error) {
	var (
		files []requestFile
		err   error
	)

	switch format {
	case FormatHTTP:
		return parseHTTP(data)
	case FormatJSONC:
		files, err = decodeJSON(jsonc.ToJSON(data))
	case FormatJSON:
		files, err = decodeJSON(data)
	case FormatYAML:
		files, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no requests found")
	}

	entries := make([]Entry, 0, len(files))
	for i, f := range files {
		req, err := f.toRequest()
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i+1, err)
		}
		entries = append(entries, Entry{Name: f.Name, Request: req})
	}
	return entries, nil
}

// Load reads filePath and returns the request called name, or the first one when name is empty
func Load(filePath, name string) (types.Request, error) {
	entries, err := ParseFile(filePath)
	if err != nil {
		return types.Request{}, err
	}
	return Select(entries, name)
}

// Select picks an entry by name (case-insensitive), or the first entry when name is empty
func Select(entries []Entry, name string) (types.Request, error) {
	if len(entries) == 0 {
		return types.Request{}, fmt.Errorf("no requests found")
	}
	if name == "" {
		return entries[0].Request, nil
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return e.Request, nil
		}
	}
	return types.Request{}, fmt.Errorf("request not found: %s", name)
}

// decodeJSON accepts a single object or an array of objects
func decodeJSON(data []byte) ([]requestFile, error) {
	var files []requestFile
	if err := json.Unmarshal(data, &files); err == nil {
		return files, nil
	}

	var f requestFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return []requestFile{f}, nil
}

// decodeYAML accepts a single mapping or a sequence of mappings
func decodeYAML(data []byte) ([]requestFile, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(node.Content) == 0 {
		return nil, nil
	}

	var files []requestFile
	if node.Content[0].Kind == yaml.SequenceNode {
		if err := node.Decode(&files); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return files, nil
	}

	var f requestFile
	if err := node.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return []requestFile{f}, nil
}

func (f requestFile) toRequest() (types.Request, error) {
	method := types.MethodGet
	if f.Method != "" {
		m, err := types.ParseMethod(f.Method)
		if err != nil {
			return types.Request{}, err
		}
		method = m
	}

	if strings.TrimSpace(f.URL) == "" {
		return types.Request{}, fmt.Errorf("missing url")
	}

	req := types.Request{
		Method:  method,
		URL:     strings.TrimSpace(f.URL),
		Params:  f.Params,
		Headers: sortedHeaders(f.Headers),
		Body:    types.NewBody(types.BodyNone),
	}

	if f.Body != nil {
		body, err := f.Body.toBody()
		if err != nil {
			return types.Request{}, err
		}
		req.Body = body
	}

	return req, nil
}

func (b bodyFile) toBody() (types.Body, error) {
	kind := types.BodyText
	if b.Kind != "" {
		k, err := types.ParseBodyKind(b.Kind)
		if err != nil {
			return types.Body{}, err
		}
		kind = k
	}

	body := types.NewBody(kind)
	switch kind {
	case types.BodyText, types.BodyJSON:
		body.Text = b.Text
	case types.BodyForm:
		body.Form = b.Form
	case types.BodyRaw:
		body.Raw = []byte(b.Raw)
	}
	return body, nil
}
