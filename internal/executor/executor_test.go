package executor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/paceman/internal/types"
)

func TestClient_BuildAndExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "paceman-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("X-Multi", "one")
		w.Header().Add("X-Multi", "two")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	client := NewClient(WithUserAgent("paceman-test"))
	call, err := client.Build(types.MethodPost, server.URL+"/users")
	require.NoError(t, err)
	assert.Equal(t, types.MethodPost, call.Method())
	assert.Equal(t, server.URL+"/users", call.URL())

	raw, err := call.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, raw.Status)
	require.NotNil(t, raw.ContentLength)
	assert.Equal(t, int64(9), *raw.ContentLength)

	var multi []string
	for _, h := range raw.Headers {
		if h.Name == "X-Multi" {
			v, ok := h.Value.String()
			require.True(t, ok)
			multi = append(multi, v)
		}
	}
	assert.Equal(t, []string{"one", "two"}, multi)

	body, err := raw.Text()
	require.NoError(t, err)
	assert.Equal(t, `{"id": 1}`, body)
}

func TestClient_HeadersSortedByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Zeta", "z")
		w.Header().Set("Alpha", "a")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	call, err := NewClient().Build(types.MethodGet, server.URL)
	require.NoError(t, err)
	raw, err := call.Execute(context.Background())
	require.NoError(t, err)
	defer raw.Close()

	var names []string
	for _, h := range raw.Headers {
		names = append(names, h.Name)
	}
	assert.IsIncreasing(t, names)
}

func TestClient_BuildInvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "example.net/path"},
		{"bad scheme", "ftp://example.net"},
		{"unparseable", "http://[::1"},
		{"no host", "http:///path"},
	}

	client := NewClient()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Build(types.MethodGet, tt.url)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestClient_BuildInvalidMethod(t *testing.T) {
	_, err := NewClient().Build(types.Method(99), "https://example.net")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid method")
}

func TestClient_ExecuteConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	call, err := NewClient(WithTimeout(2 * time.Second)).Build(types.MethodGet, url)
	require.NoError(t, err)

	_, err = call.Execute(context.Background())
	assert.Error(t, err)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	call, err := NewClient(WithTimeout(50 * time.Millisecond)).Build(types.MethodGet, server.URL)
	require.NoError(t, err)

	_, err = call.Execute(context.Background())
	assert.Error(t, err)
}

func TestMethodMapping_RoundTrip(t *testing.T) {
	for _, m := range types.Methods() {
		name, err := ToHTTPMethod(m)
		require.NoError(t, err)
		assert.Equal(t, m.String(), name)

		back, err := FromHTTPMethod(name)
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}

func TestFromHTTPMethod_Unknown(t *testing.T) {
	_, err := FromHTTPMethod("get")
	assert.Error(t, err)
}

func TestHeaderValue_BinaryDetection(t *testing.T) {
	v := headerValue("plain value\twith tab")
	_, ok := v.String()
	assert.True(t, ok)

	v = headerValue("caf\xc3\xa9")
	_, ok = v.String()
	assert.False(t, ok)
	assert.Equal(t, []byte("caf\xc3\xa9"), v.Bytes)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "1.50s", FormatDuration(1500*time.Millisecond))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512B", FormatSize(512))
	assert.Equal(t, "2.00KB", FormatSize(2048))
	assert.Equal(t, "1.00MB", FormatSize(1024*1024))
}

func TestStatusClasses(t *testing.T) {
	assert.True(t, IsSuccessStatus(204))
	assert.True(t, IsClientErrorStatus(404))
	assert.True(t, IsServerErrorStatus(503))
	assert.False(t, IsSuccessStatus(302))
}

func TestStatusLine(t *testing.T) {
	start := time.Unix(0, 0)
	size := int64(42)

	resp := &types.Response{Status: 201, Start: start, End: start.Add(15 * time.Millisecond), ContentLength: &size}
	assert.Equal(t, "201 Created 15 ms 42 B", StatusLine(resp))

	resp = &types.Response{Status: 299, Start: start, End: start}
	assert.Equal(t, "299 0 ms", StatusLine(resp))
}
