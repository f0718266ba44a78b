package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/studiowebux/paceman/internal/history"
	"gopkg.in/yaml.v3"
)

// PrintHistory writes history entries as text, json or yaml
func PrintHistory(w io.Writer, entries []history.Entry, format string) error {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err

	case "", "text":
	default:
		return fmt.Errorf("unsupported output format %q (use text, json or yaml)", format)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No history yet")
		return err
	}

	for _, e := range entries {
		var status string
		if e.Failed() {
			status = color.New(color.FgRed).Sprint("ERR")
		} else {
			status = statusColor(e.Status).Sprintf("%3d", e.Status)
		}

		line := fmt.Sprintf("%s  %-7s %s  %6d ms  %s",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Method, status, e.DurationMs, e.URL)
		if e.Failed() {
			line += "  " + e.Error
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
