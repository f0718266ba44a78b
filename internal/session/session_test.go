package session

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/paceman/internal/types"
)

func TestLoad_MissingFileUsesDefault(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, m.Load())

	req := m.Request()
	assert.Equal(t, types.MethodGet, req.Method)
	assert.Empty(t, req.URL)
	assert.Equal(t, types.BodyNone, req.Body.Kind)
	assert.Empty(t, m.RecentURLs())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	m := NewManager(path)
	req := types.Request{
		Method: types.MethodPatch,
		URL:    "https://example.com/items",
		Body:   types.Body{Kind: types.BodyJSON, Text: `{"a":1}`},
	}
	req.AddParam("page", "2")
	m.SetRequest(req)
	m.AddRecentURL(req.URL)
	require.NoError(t, m.Save())

	loaded := NewManager(path)
	require.NoError(t, loaded.Load())
	assert.Equal(t, req, loaded.Request())
	assert.Equal(t, []string{"https://example.com/items"}, loaded.RecentURLs())
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	err := NewManager(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse session file")
}

func TestLoad_UnknownMethodRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"request":{"method":"BREW","url":"x"}}`), 0644))

	assert.Error(t, NewManager(path).Load())
}

func TestSetRequest_StoresCopy(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "session.json"))

	req := types.Request{URL: "https://example.com"}
	req.AddParam("a", "1")
	m.SetRequest(req)

	req.Params[0].Value = "changed"
	assert.Equal(t, "1", m.Request().Params[0].Value)
}

func TestAddRecentURL(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "session.json"))

	m.AddRecentURL("https://a.example")
	m.AddRecentURL("https://b.example")
	m.AddRecentURL("https://a.example")
	m.AddRecentURL("")

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, m.RecentURLs())

	for i := 0; i < 15; i++ {
		m.AddRecentURL(fmt.Sprintf("https://%d.example", i))
	}
	recent := m.RecentURLs()
	assert.Len(t, recent, maxRecentURLs)
	assert.Equal(t, "https://14.example", recent[0])
}
