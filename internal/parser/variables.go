package parser

import (
	"os"
	"regexp"
	"strings"

	"github.com/studiowebux/paceman/internal/types"
)

// Variable placeholder pattern: {{varName}} or {{env.VAR_NAME}}
var varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// LookupFunc resolves a variable name
type LookupFunc func(name string) (string, bool)

// EnvLookup resolves names from the process environment.
// The "env." prefix is optional.
func EnvLookup(name string) (string, bool) {
	return os.LookupEnv(strings.TrimPrefix(name, "env."))
}

// Resolver substitutes placeholders and remembers the ones it could not resolve
type Resolver struct {
	lookup     LookupFunc
	unresolved []string
	seen       map[string]bool
}

// NewResolver creates a resolver; a nil lookup uses the environment
func NewResolver(lookup LookupFunc) *Resolver {
	if lookup == nil {
		lookup = EnvLookup
	}
	return &Resolver{
		lookup: lookup,
		seen:   make(map[string]bool),
	}
}

// Unresolved returns the unique names that had no value, in order of appearance
func (r *Resolver) Unresolved() []string {
	return r.unresolved
}

// Expand replaces every placeholder in s. Unknown placeholders are left as written.
func (r *Resolver) Expand(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		if value, ok := r.lookup(name); ok {
			return value
		}
		if !r.seen[name] {
			r.seen[name] = true
			r.unresolved = append(r.unresolved, name)
		}
		return match
	})
}

// ExpandRequest returns a copy of req with placeholders replaced in the URL,
// params, headers and textual body
func (r *Resolver) ExpandRequest(req types.Request) types.Request {
	out := req.Clone()
	out.URL = r.Expand(out.URL)

	for i := range out.Params {
		out.Params[i].Value = r.Expand(out.Params[i].Value)
	}
	for i := range out.Headers {
		out.Headers[i].Value = r.Expand(out.Headers[i].Value)
	}

	switch out.Body.Kind {
	case types.BodyText, types.BodyJSON:
		out.Body.Text = r.Expand(out.Body.Text)
	case types.BodyForm:
		for i := range out.Body.Form {
			out.Body.Form[i].Value = r.Expand(out.Body.Form[i].Value)
		}
	}

	return out
}

// ExtractVariableNames returns the unique placeholder names in s
func ExtractVariableNames(s string) []string {
	matches := varPattern.FindAllStringSubmatch(s, -1)
	seen := make(map[string]bool)
	var names []string
	for _, match := range matches {
		name := strings.TrimSpace(match[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
