package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/paceman/internal/dispatch"
	"github.com/studiowebux/paceman/internal/executor"
	"github.com/studiowebux/paceman/internal/parser"
	"github.com/studiowebux/paceman/internal/types"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("nope"))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Method", r.Method)
			w.Write([]byte(`{"items":[{"name":"a"},{"name":"b"}]}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newDispatcher() *dispatch.Dispatcher {
	return dispatch.New(executor.NewClient(executor.WithTimeout(5 * time.Second)))
}

func send(t *testing.T, opts SendOptions) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts.Out = &out
	opts.ErrOut = &errOut
	err := Send(context.Background(), newDispatcher(), opts)
	return out.String(), errOut.String(), err
}

func TestSend_TextOutput(t *testing.T) {
	srv := newServer(t)

	out, _, err := send(t, SendOptions{URL: srv.URL + "/items"})
	require.NoError(t, err)

	assert.Regexp(t, `^200 OK \d+ ms 37 B\n`, out)
	assert.Contains(t, out, `{"items":[{"name":"a"},{"name":"b"}]}`)
	assert.NotContains(t, out, "Headers:")
}

func TestSend_FullShowsHeaders(t *testing.T) {
	srv := newServer(t)

	out, _, err := send(t, SendOptions{URL: srv.URL, Method: "put", ShowFull: true})
	require.NoError(t, err)
	assert.Contains(t, out, "Headers:")
	assert.Contains(t, out, "  X-Method: PUT\n")
	assert.Contains(t, out, "Body:\n")
}

func TestSend_JSONOutput(t *testing.T) {
	srv := newServer(t)

	out, _, err := send(t, SendOptions{URL: srv.URL, OutputFormat: "json"})
	require.NoError(t, err)

	var outcome types.Outcome
	require.NoError(t, json.Unmarshal([]byte(out), &outcome))
	require.NotNil(t, outcome.Response)
	assert.Equal(t, 200, outcome.Response.Status)
	assert.Nil(t, outcome.Err)
}

func TestSend_YAMLOutput(t *testing.T) {
	srv := newServer(t)

	out, _, err := send(t, SendOptions{URL: srv.URL, OutputFormat: "YAML"})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "response")
}

func TestSend_BodyWithQuery(t *testing.T) {
	srv := newServer(t)

	out, _, err := send(t, SendOptions{URL: srv.URL, OutputFormat: "body", Query: "items[].name"})
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, out)
}

func TestSend_BadQueryWarnsAndKeepsBody(t *testing.T) {
	srv := newServer(t)

	out, errOut, err := send(t, SendOptions{URL: srv.URL, OutputFormat: "body", Query: "items[."})
	require.NoError(t, err)
	assert.Contains(t, errOut, "filter/query error")
	assert.Contains(t, out, `"items"`)
}

func TestSend_InvalidURLIsRequestFailure(t *testing.T) {
	out, _, err := send(t, SendOptions{URL: "not a url"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestFailed))
	assert.Contains(t, out, "response\nerr: invalid URL")
}

func TestSend_FailOnStatus(t *testing.T) {
	srv := newServer(t)

	_, _, err := send(t, SendOptions{URL: srv.URL + "/missing"})
	assert.NoError(t, err)

	out, _, err := send(t, SendOptions{URL: srv.URL + "/missing", Fail: true})
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Contains(t, out, "404 Not Found")
}

func TestSend_FromFileWithVariables(t *testing.T) {
	srv := newServer(t)
	path := filepath.Join(t.TempDir(), "reqs.yaml")
	content := "- name: list\n  url: \"{{base}}/items\"\n- name: remove\n  method: DELETE\n  url: \"{{base}}/items/1\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lookup := func(name string) (string, bool) {
		if name == "base" {
			return srv.URL, true
		}
		return "", false
	}

	out, _, err := send(t, SendOptions{FilePath: path, Name: "remove", ShowFull: true, Lookup: lookup})
	require.NoError(t, err)
	assert.Contains(t, out, "X-Method: DELETE")

	out, _, err = send(t, SendOptions{FilePath: path, Method: "PATCH", ShowFull: true, Lookup: lookup})
	require.NoError(t, err)
	assert.Contains(t, out, "X-Method: PATCH")
}

func TestSend_UnresolvedVariablesWarn(t *testing.T) {
	_, errOut, err := send(t, SendOptions{URL: "http://{{nowhere}}/x", Lookup: func(string) (string, bool) { return "", false }})
	assert.Error(t, err)
	assert.Contains(t, errOut, "unresolved variables: nowhere")
}

func TestSend_OptionErrors(t *testing.T) {
	_, _, err := send(t, SendOptions{})
	assert.EqualError(t, err, "a URL or a request file (-f) is required")

	_, _, err = send(t, SendOptions{URL: "http://x", OutputFormat: "xml"})
	assert.Error(t, err)

	_, _, err = send(t, SendOptions{URL: "http://x", Method: "BREW"})
	assert.Error(t, err)
}

func TestSend_SavePath(t *testing.T) {
	srv := newServer(t)
	path := filepath.Join(t.TempDir(), "out.txt")

	out, errOut, err := send(t, SendOptions{URL: srv.URL, OutputFormat: "body", SavePath: path})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Response saved to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items"`)
}

func TestAwait_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Await(ctx, newDispatcher(), types.Request{URL: srv.URL})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelectorModel_Enter(t *testing.T) {
	entries := []parser.Entry{
		{Name: "one", Request: types.Request{URL: "https://a.example"}},
		{Name: "two", Request: types.Request{URL: "https://b.example"}},
	}

	var m tea.Model = newSelectorModel(entries)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := m.(selectorModel)
	assert.Equal(t, 1, result.choice)
	assert.True(t, result.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, result.View())
}

func TestSelectorModel_Cancel(t *testing.T) {
	var m tea.Model = newSelectorModel([]parser.Entry{{Request: types.Request{URL: "u"}}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, -1, m.(selectorModel).choice)
}
