package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// suggestURLs ranks recently sent URLs against the typed input.
// With no input the most recent ones are returned.
func suggestURLs(input string, recent []string) []string {
	input = strings.TrimSpace(input)

	var out []string
	if input == "" {
		for _, u := range recent {
			if len(out) == MaxURLSuggestions {
				break
			}
			out = append(out, u)
		}
		return out
	}

	for _, match := range fuzzy.Find(input, recent) {
		if match.Str == input {
			continue
		}
		out = append(out, match.Str)
		if len(out) == MaxURLSuggestions {
			break
		}
	}
	return out
}
