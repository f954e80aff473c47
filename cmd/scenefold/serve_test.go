package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPServerHasHeaderTimeouts(t *testing.T) {
	t.Parallel()

	srv := newHTTPServer("127.0.0.1:8420", http.NewServeMux())
	require.Equal(t, "127.0.0.1:8420", srv.Addr)
	require.Positive(t, srv.ReadHeaderTimeout)
	require.Positive(t, srv.IdleTimeout)
}
