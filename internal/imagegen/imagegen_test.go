package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

func TestGenerateReturnsImageURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/images/generate", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a red barn", req.Prompt)

		_ = json.NewEncoder(w).Encode(map[string]string{"image_url": "https://cdn.example/barn.png"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	url, err := client.Generate(context.Background(), Request{Prompt: "a red barn"})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/barn.png", url)
}

func TestGenerateSurfacesServiceFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Generate(context.Background(), Request{Prompt: "x"})
	var apiErr *scenefolderrors.APIError
	require.ErrorAs(t, err, &apiErr)
}

func TestGenerateRejectsMissingURLInResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Generate(context.Background(), Request{Prompt: "x"})
	var apiErr *scenefolderrors.APIError
	require.ErrorAs(t, err, &apiErr)
}

func TestEditRequiresInputImages(t *testing.T) {
	t.Parallel()

	client := NewClient("http://unused", "")
	_, err := client.Edit(context.Background(), Request{Prompt: "tint it blue"})
	var vErr *scenefolderrors.ValidationError
	require.ErrorAs(t, err, &vErr)
}
