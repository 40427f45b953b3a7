package routefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirmaker/routerctl/internal/gateway"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "routes.json", `[
		{
			"name": "groq/llama-3.3-70b-versatile",
			"description": "general reasoning",
			"utterances": ["analyze", "evaluate"],
			"score_threshold": 0.30
		},
		{
			"name": "gemini/gemini-2.5-flash",
			"description": "long context",
			"utterances": ["deep dive"],
			"score_threshold": 0.40
		}
	]`)

	routes, err := Load(path)
	require.NoError(t, err)
	require.Len(t, routes, 2)

	// Order preserved as authored.
	assert.Equal(t, gateway.RouteDefinition{
		Name:           "groq/llama-3.3-70b-versatile",
		Description:    "general reasoning",
		Utterances:     []string{"analyze", "evaluate"},
		ScoreThreshold: 0.30,
	}, routes[0])
	assert.Equal(t, "gemini/gemini-2.5-flash", routes[1].Name)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeFile(t, "broken.json", `[{"name": "x",`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON in "+path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read routes file")
}

func TestLoadEmptyArray(t *testing.T) {
	path := writeFile(t, "empty.json", `[]`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no routes defined")
}

func TestLoadSemanticIssuesAreNotFatal(t *testing.T) {
	// Structural shape only: questionable values load fine and are
	// left for the gateway to judge.
	path := writeFile(t, "loose.json", `[
		{"name": "", "description": "", "utterances": [], "score_threshold": 1.5}
	]`)

	routes, err := Load(path)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, 1.5, routes[0].ScoreThreshold)
}
