package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Admin API paths.
const (
	pathModelNew    = "/model/new"
	pathModelInfo   = "/model/info"
	pathModelDelete = "/model/delete"
)

// Placeholders for fields the gateway may omit from model descriptors.
const (
	unknownName = "Unknown"
	missingID   = "N/A"
)

// createModelRequest registers an auto-router as a virtual model.
// The API expects the router's internal configuration as a string-typed
// field, so the routes are nested as a JSON-encoded string.
type createModelRequest struct {
	ModelName     string        `json:"model_name"`
	LiteLLMParams litellmParams `json:"litellm_params"`
	ModelInfo     modelInfoOpts `json:"model_info"`
}

type litellmParams struct {
	Model                    string `json:"model"`
	AutoRouterConfig         string `json:"auto_router_config"`
	AutoRouterDefaultModel   string `json:"auto_router_default_model"`
	AutoRouterEmbeddingModel string `json:"auto_router_embedding_model"`
}

type modelInfoOpts struct {
	HealthCheck bool `json:"health_check"`
}

// autoRouterConfig is the document serialized into the
// auto_router_config string field.
type autoRouterConfig struct {
	Routes []RouteDefinition `json:"routes"`
}

// CreateRouter registers cfg with the gateway and returns the assigned
// model ID. The ID is empty when the gateway omits it from the response.
// A non-200 response comes back as a *StatusError.
func (c *Client) CreateRouter(ctx context.Context, cfg RouterConfig) (string, error) {
	routesJSON, err := json.Marshal(autoRouterConfig{Routes: cfg.Routes})
	if err != nil {
		return "", fmt.Errorf("marshal routes: %w", err)
	}

	embedding := cfg.EmbeddingModel
	if embedding == "" {
		embedding = DefaultEmbeddingModel
	}

	payload := createModelRequest{
		ModelName: cfg.RouterName,
		LiteLLMParams: litellmParams{
			Model:                    "auto_router/" + cfg.RouterName,
			AutoRouterConfig:         string(routesJSON),
			AutoRouterDefaultModel:   cfg.DefaultModel,
			AutoRouterEmbeddingModel: embedding,
		},
		ModelInfo: modelInfoOpts{HealthCheck: false},
	}

	res, err := c.do(ctx, http.MethodPost, pathModelNew, payload)
	if err != nil {
		return "", err
	}
	if res.Status != http.StatusOK {
		return "", &StatusError{Op: "create router", Status: res.Status, Body: res.Body}
	}

	var out struct {
		ModelID string `json:"model_id"`
	}
	if err := res.Body.Decode(&out); err != nil {
		// Created, but the response body was not what we expected.
		// The router exists server-side, so don't fail the operation.
		c.log.Warn().Err(err).Msg("create succeeded but response was undecodable")
		return "", nil
	}
	return out.ModelID, nil
}

// ListModels fetches all configured models. Missing descriptor fields
// are filled with placeholders rather than dropped. The full list is
// assumed to fit in one response; the API offers no pagination.
func (c *Client) ListModels(ctx context.Context) ([]ModelDescriptor, error) {
	res, err := c.do(ctx, http.MethodGet, pathModelInfo, nil)
	if err != nil {
		return nil, err
	}
	if res.Status != http.StatusOK {
		return nil, &StatusError{Op: "list models", Status: res.Status, Body: res.Body}
	}

	var out struct {
		Data []struct {
			ModelName string `json:"model_name"`
			ModelInfo struct {
				ID string `json:"id"`
			} `json:"model_info"`
			LiteLLMParams struct {
				Model string `json:"model"`
			} `json:"litellm_params"`
		} `json:"data"`
	}
	if err := res.Body.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode model list: %w", err)
	}

	models := make([]ModelDescriptor, 0, len(out.Data))
	for _, m := range out.Data {
		desc := ModelDescriptor{
			Name:  m.ModelName,
			ID:    m.ModelInfo.ID,
			Model: m.LiteLLMParams.Model,
		}
		if desc.Name == "" {
			desc.Name = unknownName
		}
		if desc.ID == "" {
			desc.ID = missingID
		}
		if desc.Model == "" {
			desc.Model = missingID
		}
		models = append(models, desc)
	}
	return models, nil
}

// DeleteModel removes a model by ID. Deletion is immediate; idempotency
// and undo are the gateway's responsibility.
func (c *Client) DeleteModel(ctx context.Context, modelID string) error {
	res, err := c.do(ctx, http.MethodPost, pathModelDelete, map[string]string{"id": modelID})
	if err != nil {
		return err
	}
	if res.Status != http.StatusOK {
		return &StatusError{Op: "delete model", Status: res.Status, Body: res.Body}
	}
	return nil
}
