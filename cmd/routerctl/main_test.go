package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirmaker/routerctl/internal/gateway"
)

func TestResolveCreateInputUsageErrors(t *testing.T) {
	tests := []struct {
		name         string
		preset       string
		routesPath   string
		defaultModel string
		wantErr      string
	}{
		{"neither source", "", "", "", "either --preset or --routes is required"},
		{"both sources", "coding", "routes.json", "", "not both"},
		{"routes without default", "", "routes.json", "", "--default is required"},
		{"unknown preset", "doesnotexist", "", "", "unknown preset"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := resolveCreateInput(tc.preset, tc.routesPath, tc.defaultModel)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestResolveCreateInputPreset(t *testing.T) {
	routes, defModel, err := resolveCreateInput("coding", "", "")
	require.NoError(t, err)

	assert.Equal(t, "mistral/codestral-2508", defModel)
	require.Len(t, routes, 3)
	assert.Equal(t, "mistral/codestral-2508", routes[0].Name)
}

func TestResolveCreateInputRoutesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "m1", "description": "d", "utterances": ["u"], "score_threshold": 0.5}
	]`), 0644))

	routes, defModel, err := resolveCreateInput("", path, "groq/llama-3.3-70b-versatile")
	require.NoError(t, err)
	assert.Equal(t, "groq/llama-3.3-70b-versatile", defModel)
	require.Len(t, routes, 1)
	assert.Equal(t, "m1", routes[0].Name)
}

// TestCreateFromCodingPreset walks the same path the create command
// does: resolve the preset, then issue the creation call.
func TestCreateFromCodingPreset(t *testing.T) {
	var (
		calls   int
		gotBody []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/model/new", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"model_id":"abc123"}`))
	}))
	defer server.Close()

	routes, defModel, err := resolveCreateInput("coding", "", "")
	require.NoError(t, err)

	client := gateway.NewClient(&gateway.ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
	modelID, err := client.CreateRouter(context.Background(), gateway.RouterConfig{
		RouterName:   "MyCoder",
		DefaultModel: defModel,
		Routes:       routes,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "abc123", modelID)

	var req struct {
		ModelName     string `json:"model_name"`
		LiteLLMParams struct {
			AutoRouterConfig       string `json:"auto_router_config"`
			AutoRouterDefaultModel string `json:"auto_router_default_model"`
		} `json:"litellm_params"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &req))
	assert.Equal(t, "MyCoder", req.ModelName)
	assert.Equal(t, "mistral/codestral-2508", req.LiteLLMParams.AutoRouterDefaultModel)

	var cfg struct {
		Routes []gateway.RouteDefinition `json:"routes"`
	}
	require.NoError(t, json.Unmarshal([]byte(req.LiteLLMParams.AutoRouterConfig), &cfg))
	assert.Len(t, cfg.Routes, 3)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****", maskKey("abcd"))
	assert.Equal(t, "*********1234", maskKey("sk-test-a1234"))
	assert.Equal(t, "", maskKey(""))
}
