// Package gateway is a thin client for the LiteLLM admin API.
// It covers the three calls routerctl needs: registering an auto-router
// as a virtual model, listing configured models, and deleting one by ID.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RouteDefinition is one route inside an auto-router configuration:
// a backend model, the example phrases the gateway matches intents
// against, and the minimum similarity score to select the route.
type RouteDefinition struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Utterances     []string `json:"utterances"`
	ScoreThreshold float64  `json:"score_threshold"`
}

// RouterConfig describes an auto-router to be created. It is built per
// invocation (from a preset or a routes file), sent once, and discarded.
type RouterConfig struct {
	// RouterName is the model_name the router is registered under.
	RouterName string

	// DefaultModel receives requests when no route clears its threshold.
	DefaultModel string

	// Routes are matched in order by the gateway.
	Routes []RouteDefinition

	// EmbeddingModel computes utterance embeddings server-side.
	// Empty means DefaultEmbeddingModel.
	EmbeddingModel string
}

// ModelDescriptor is one entry from the gateway's model list.
type ModelDescriptor struct {
	Name  string // display name (model_name)
	ID    string // internal identifier (model_info.id)
	Model string // underlying backend model (litellm_params.model)
}

// Body is the decoded payload of a gateway response. Exactly one branch
// is set: JSON when the body parsed as JSON, Raw otherwise. The Raw
// branch keeps non-JSON error pages (HTML, plain-text 502s) visible to
// the caller instead of failing the decode.
type Body struct {
	JSON json.RawMessage
	Raw  string
}

// decodeBody applies the best-effort decode policy.
func decodeBody(data []byte) Body {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return Body{JSON: json.RawMessage(trimmed)}
	}
	return Body{Raw: string(data)}
}

// IsJSON reports whether the body parsed as JSON.
func (b Body) IsJSON() bool {
	return b.JSON != nil
}

// Decode unmarshals a JSON body into v.
func (b Body) Decode(v any) error {
	if !b.IsJSON() {
		return fmt.Errorf("response is not JSON: %s", truncate(b.Raw, maxErrorRender))
	}
	return json.Unmarshal(b.JSON, v)
}

// Render returns a bounded human-readable form of the body for error
// messages. JSON bodies are pretty-printed before truncation.
func (b Body) Render(max int) string {
	if !b.IsJSON() {
		return truncate(b.Raw, max)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b.JSON, "", "  "); err != nil {
		return truncate(string(b.JSON), max)
	}
	return truncate(buf.String(), max)
}

// Result is the uniform outcome of one gateway call.
type Result struct {
	Status int
	Body   Body
}

// StatusError reports a non-200 gateway response. It carries the status
// code and a bounded rendering of the body; transport faults are wrapped
// separately by the client.
type StatusError struct {
	Op     string
	Status int
	Body   Body
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed (status %d): %s", e.Op, e.Status, e.Body.Render(maxErrorRender))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
