package fontcat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

func TestResolveFontHosted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, "Roboto") {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	catalog := New(srv.URL)

	url, err := catalog.ResolveFont(context.Background(), "Roboto")
	require.NoError(t, err)
	require.Contains(t, url, "/css2?family=Roboto")

	url, err = catalog.ResolveFont(context.Background(), "My Custom Face")
	require.NoError(t, err)
	require.Equal(t, "fonts/my-custom-face.otf", url)
}

func TestResolveFontCachesAvailability(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	catalog := New(srv.URL)

	for i := 0; i < 3; i++ {
		_, err := catalog.ResolveFont(context.Background(), "Lato")
		require.NoError(t, err)
	}
	require.Equal(t, int64(1), hits.Load())

	// Case variants share one cache entry.
	_, err := catalog.ResolveFont(context.Background(), "LATO")
	require.NoError(t, err)
	require.Equal(t, int64(1), hits.Load())
}

func TestResolveFontServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	catalog := New(srv.URL)

	_, err := catalog.ResolveFont(context.Background(), "Roboto")
	var apiErr *scenefolderrors.APIError
	require.ErrorAs(t, err, &apiErr)
}
