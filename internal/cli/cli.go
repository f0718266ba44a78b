package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/studiowebux/paceman/internal/config"
	"github.com/studiowebux/paceman/internal/dispatch"
	"github.com/studiowebux/paceman/internal/executor"
	"github.com/studiowebux/paceman/internal/filter"
	"github.com/studiowebux/paceman/internal/parser"
	"github.com/studiowebux/paceman/internal/types"
	"gopkg.in/yaml.v3"
)

var (
	// ErrRequestFailed is returned after printing when the request could not be built or executed
	ErrRequestFailed = errors.New("request failed")

	// ErrStatus is returned with --fail when the response status is 400 or above
	ErrStatus = errors.New("response status indicates failure")
)

// SendOptions contains options for sending a request in CLI mode
type SendOptions struct {
	Method       string // -X, overrides the positional or file method
	URL          string
	FilePath     string // request file (.yaml, .json, .jsonc, .http)
	Name         string // request name inside FilePath
	OutputFormat string // text, json, yaml, body
	ShowFull     bool   // include headers in text output
	Filter       string // JMESPath filter expression
	Query        string // JMESPath query expression
	SavePath     string
	Fail         bool // treat status >= 400 as failure

	Interactive bool              // allow a selector when FilePath holds several requests
	Lookup      parser.LookupFunc // variable source; nil uses the environment
	Out         io.Writer         // defaults to os.Stdout
	ErrOut      io.Writer         // defaults to os.Stderr
}

// Send builds the request described by opts, dispatches it and prints the outcome
func Send(ctx context.Context, d *dispatch.Dispatcher, opts SendOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	format := strings.ToLower(opts.OutputFormat)
	if format == "" {
		format = "text"
	}
	if !validFormat(format) {
		return fmt.Errorf("unsupported output format %q (use text, json, yaml or body)", opts.OutputFormat)
	}

	req, err := resolveRequest(opts)
	if err != nil {
		return err
	}

	resolver := parser.NewResolver(opts.Lookup)
	req = resolver.ExpandRequest(req)
	if unresolved := resolver.Unresolved(); len(unresolved) > 0 {
		fmt.Fprintf(errOut, "Warning: unresolved variables: %s\n", strings.Join(unresolved, ", "))
	}

	outcome, err := Await(ctx, d, req)
	if err != nil {
		return err
	}

	if outcome.Response != nil && (opts.Filter != "" || opts.Query != "") {
		filtered, err := filter.Apply(outcome.Response.Text, opts.Filter, opts.Query)
		if err != nil {
			fmt.Fprintf(errOut, "Warning: filter/query error: %v\n", err)
		} else {
			resp := *outcome.Response
			resp.Text = filtered
			outcome = types.Succeeded(&resp)
		}
	}

	output, err := formatOutput(outcome, format, opts.ShowFull)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.SavePath != "" {
		if err := os.WriteFile(opts.SavePath, []byte(output), config.FilePermissions); err != nil {
			return fmt.Errorf("failed to save response: %w", err)
		}
		fmt.Fprintf(errOut, "Response saved to %s\n", opts.SavePath)
	} else {
		fmt.Fprint(out, output)
	}

	if outcome.IsError() {
		return fmt.Errorf("%w: %s", ErrRequestFailed, outcome.Err.Message)
	}
	if opts.Fail && outcome.Response.Status >= 400 {
		return fmt.Errorf("%w: %d", ErrStatus, outcome.Response.Status)
	}

	return nil
}

// Await triggers req and blocks until its outcome is in the slot or ctx is done
func Await(ctx context.Context, d *dispatch.Dispatcher, req types.Request) (*types.Outcome, error) {
	slot := dispatch.NewSlot()
	done := make(chan struct{}, 1)

	d.Trigger(req, slot, dispatch.NotifierFunc(func() {
		select {
		case done <- struct{}{}:
		default:
		}
	}))

	if outcome := slot.Read(); outcome != nil {
		return outcome, nil
	}

	select {
	case <-done:
		return slot.Read(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func resolveRequest(opts SendOptions) (types.Request, error) {
	var req types.Request

	switch {
	case opts.FilePath != "":
		entries, err := parser.ParseFile(opts.FilePath)
		if err != nil {
			return types.Request{}, err
		}

		if opts.Name == "" && len(entries) > 1 && opts.Interactive {
			req, err = promptForRequest(entries)
		} else {
			req, err = parser.Select(entries, opts.Name)
		}
		if err != nil {
			return types.Request{}, err
		}

	case opts.URL != "":
		req = types.Request{
			Method: types.MethodGet,
			URL:    opts.URL,
			Body:   types.NewBody(types.BodyNone),
		}

	default:
		return types.Request{}, errors.New("a URL or a request file (-f) is required")
	}

	if opts.Method != "" {
		m, err := types.ParseMethod(opts.Method)
		if err != nil {
			return types.Request{}, err
		}
		req.Method = m
	}

	return req, nil
}

func validFormat(format string) bool {
	switch format {
	case "text", "json", "yaml", "body":
		return true
	}
	return false
}

// formatOutput formats the outcome based on the output format
func formatOutput(outcome *types.Outcome, format string, showFull bool) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(outcome)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "body":
		if outcome.IsError() {
			return "", nil
		}
		return outcome.Response.Text, nil
	}

	var sb strings.Builder

	if outcome.IsError() {
		sb.WriteString("response\n")
		sb.WriteString(color.New(color.FgRed).Sprintf("err: %s", outcome.Err.Message))
		sb.WriteString("\n")
		return sb.String(), nil
	}

	resp := outcome.Response
	sb.WriteString(statusColor(resp.Status).Sprint(executor.StatusLine(resp)))
	sb.WriteString("\n")

	if showFull && len(resp.Headers) > 0 {
		sb.WriteString("\nHeaders:\n")
		for _, h := range resp.Headers {
			value, _ := h.Value.String()
			sb.WriteString(fmt.Sprintf("  %s: %s\n", h.Name, value))
		}
	}

	if resp.Text != "" {
		if showFull {
			sb.WriteString("\nBody:\n")
		} else {
			sb.WriteString("\n")
		}
		sb.WriteString(resp.Text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func statusColor(status int) *color.Color {
	switch {
	case executor.IsSuccessStatus(status):
		return color.New(color.FgGreen)
	case status >= 400:
		return color.New(color.FgRed)
	}
	return color.New(color.FgYellow)
}
