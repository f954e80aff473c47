// Package imagegen defines the generative-image capability the pipeline
// delegates to. The service may poll internally; the pipeline awaits one
// resolved image URL per call.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// Request describes one generation or edit call.
type Request struct {
	Prompt       string   `json:"prompt"`
	InputImages  []string `json:"input_images,omitempty"`
	AspectRatio  string   `json:"aspect_ratio,omitempty"`
	OutputFormat string   `json:"output_format,omitempty"`
}

// Generator produces images from text prompts. Edit additionally takes
// reference images to modify.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Edit(ctx context.Context, req Request) (string, error)
}

// Client is an HTTP Generator posting JSON to a configured endpoint.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewClient creates a Client for the given endpoint.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Generate requests a new image for the prompt and returns its URL.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	return c.post(ctx, "/v1/images/generate", req)
}

// Edit requests a modification of the supplied reference images.
func (c *Client) Edit(ctx context.Context, req Request) (string, error) {
	if len(req.InputImages) == 0 {
		return "", scenefolderrors.NewValidationError("input_images", "edit requires at least one input image", nil)
	}
	return c.post(ctx, "/v1/images/edit", req)
}

func (c *Client) post(ctx context.Context, path string, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", scenefolderrors.NewAPIError("imagegen", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return "", scenefolderrors.NewAPIError("imagegen", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", scenefolderrors.NewAPIError("imagegen", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", scenefolderrors.NewAPIError("imagegen", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var out struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", scenefolderrors.NewAPIError("imagegen", err)
	}
	if out.ImageURL == "" {
		return "", scenefolderrors.NewAPIError("imagegen", fmt.Errorf("response missing image_url"))
	}
	return out.ImageURL, nil
}
