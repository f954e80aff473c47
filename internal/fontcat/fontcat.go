// Package fontcat resolves font family names to usable font URLs by
// consulting a remote catalog, with a local-path fallback for families the
// catalog cannot host.
package fontcat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// Catalog resolves font families against an HTTP font service.
//
// Availability results are cached process-wide for the life of the
// Catalog. The cache is intentionally unbounded: entries are idempotent
// (the same family always resolves to the same answer) and the key space
// is bounded in practice by the distinct families sessions ask for, which
// is small next to the 8-entry per-scene font palette.
type Catalog struct {
	baseURL string
	client  *http.Client

	mu        sync.RWMutex
	available map[string]bool
}

// New creates a Catalog against the given service base URL, e.g.
// "https://fonts.googleapis.com".
func New(baseURL string) *Catalog {
	return &Catalog{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 10 * time.Second},
		available: make(map[string]bool),
	}
}

// StylesheetURL builds the hosted stylesheet URL for a family.
func (c *Catalog) StylesheetURL(family string) string {
	return fmt.Sprintf("%s/css2?family=%s&display=swap", c.baseURL, url.QueryEscape(family))
}

// LocalPath is the placeholder used for families the catalog cannot host.
func LocalPath(family string) string {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(family)), " ", "-")
	return fmt.Sprintf("fonts/%s.otf", name)
}

// ResolveFont returns a usable URL for the family: the hosted stylesheet
// URL when the catalog knows the family, otherwise the local-path
// placeholder. Network failures are APIErrors; an unknown family is not an
// error.
func (c *Catalog) ResolveFont(ctx context.Context, family string) (string, error) {
	hosted, err := c.isHostable(ctx, family)
	if err != nil {
		return "", err
	}
	if hosted {
		return c.StylesheetURL(family), nil
	}
	return LocalPath(family), nil
}

func (c *Catalog) isHostable(ctx context.Context, family string) (bool, error) {
	key := strings.ToLower(strings.TrimSpace(family))

	c.mu.RLock()
	hosted, ok := c.available[key]
	c.mu.RUnlock()
	if ok {
		return hosted, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.StylesheetURL(family), nil)
	if err != nil {
		return false, scenefolderrors.NewAPIError("fontcat", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, scenefolderrors.NewAPIError("fontcat", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		hosted = true
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		hosted = false
	default:
		return false, scenefolderrors.NewAPIError("fontcat", fmt.Errorf("unexpected status %d for family %q", resp.StatusCode, family))
	}

	c.mu.Lock()
	c.available[key] = hosted
	c.mu.Unlock()
	return hosted, nil
}
