package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&ClientConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
}

func TestDoDecodesJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"model_id":"abc123"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	res, err := client.do(context.Background(), http.MethodGet, "/model/info", nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.Status)
	require.True(t, res.Body.IsJSON())

	var out struct {
		ModelID string `json:"model_id"`
	}
	require.NoError(t, res.Body.Decode(&out))
	assert.Equal(t, "abc123", out.ModelID)
}

func TestDoFallsBackToRawOnNonJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Bad Gateway"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	res, err := client.do(context.Background(), http.MethodGet, "/model/info", nil)
	require.NoError(t, err, "non-JSON bodies are surfaced, not errors")

	assert.Equal(t, http.StatusBadGateway, res.Status)
	assert.False(t, res.Body.IsJSON())
	assert.Equal(t, "Bad Gateway", res.Body.Raw)
}

func TestDoEmptyBodyIsRaw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	res, err := client.do(context.Background(), http.MethodGet, "/model/info", nil)
	require.NoError(t, err)

	assert.False(t, res.Body.IsJSON())
	assert.Equal(t, "", res.Body.Raw)
}

func TestDoSetsHeaders(t *testing.T) {
	var gotAuth, gotContentType, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.do(context.Background(), http.MethodPost, "/model/delete", map[string]string{"id": "x"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID, "every call carries a request ID")
}

func TestDoWrapsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // connection refused from here on

	client := newTestClient(serverURL)
	_, err := client.do(context.Background(), http.MethodGet, "/model/info", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reach "+serverURL)
}

func TestBodyRenderTruncates(t *testing.T) {
	body := Body{Raw: strings.Repeat("x", 2*maxErrorRender)}
	rendered := body.Render(maxErrorRender)
	assert.Len(t, rendered, maxErrorRender+len("..."))
	assert.True(t, strings.HasSuffix(rendered, "..."))
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(nil)
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, defaultTimeout, client.http.Timeout)
}
