package shell

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"cinemuse/internal/store"
)

const fetchTimeout = 30 * time.Second

// Phase tracks the cache lifecycle: install must precede intercept, and
// activation purges every version other than the current one
type Phase int

const (
	PhaseNew Phase = iota
	PhaseInstalled
	PhaseActivated
)

// Cache serves a fixed manifest of shell resources from a versioned store,
// cache-first. Manifest resources are pre-populated at install time and
// never refreshed; requests outside the manifest pass through to the
// network without being cached reactively.
type Cache struct {
	store      *store.Store
	version    string
	manifest   []string
	httpClient *http.Client
	logger     *slog.Logger
	phase      Phase
}

// NewCache creates a shell cache for the given version and manifest
func NewCache(st *store.Store, version string, manifest []string, httpClient *http.Client, logger *slog.Logger) *Cache {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: fetchTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		store:      st,
		version:    version,
		manifest:   manifest,
		httpClient: httpClient,
		logger:     logger,
		phase:      PhaseNew,
	}
}

// Version returns the current version name
func (c *Cache) Version() string { return c.version }

// Phase returns the current lifecycle phase
func (c *Cache) Phase() Phase { return c.phase }

// Install fetches every manifest resource and stores the complete set under
// the current version. Installation is all-or-nothing: if any fetch fails,
// nothing is stored and the install fails.
func (c *Cache) Install(ctx context.Context) error {
	if len(c.manifest) == 0 {
		c.phase = PhaseInstalled
		return nil
	}

	resources := make(map[string][]byte, len(c.manifest))
	for _, resourceURL := range c.manifest {
		body, err := c.fetch(ctx, resourceURL)
		if err != nil {
			return fmt.Errorf("shell install failed for %s: %w", resourceURL, err)
		}
		resources[resourceURL] = body
	}

	if err := c.store.SaveShellVersion(c.version, resources); err != nil {
		return fmt.Errorf("failed to store shell resources: %w", err)
	}

	c.phase = PhaseInstalled
	c.logger.Info("shell cache installed", "version", c.version, "resources", len(resources))
	return nil
}

// Restore marks the cache installed when the current version's resources
// already exist in the store from a previous run, so intercepts work
// offline without a fresh install.
func (c *Cache) Restore() bool {
	for _, v := range c.store.ShellVersions() {
		if v == c.version {
			c.phase = PhaseInstalled
			return true
		}
	}
	return false
}

// Intercept resolves a resource request cache-first: a stored body under
// the current version is returned without touching the network; a miss
// falls through to a live fetch whose result is not cached.
func (c *Cache) Intercept(ctx context.Context, resourceURL string) ([]byte, error) {
	if c.phase == PhaseNew {
		return nil, fmt.Errorf("shell cache not installed")
	}

	if body, ok := c.store.GetShellResource(c.version, resourceURL); ok {
		c.logger.Debug("shell cache hit", "url", resourceURL)
		return body, nil
	}

	c.logger.Debug("shell cache miss, fetching", "url", resourceURL)
	return c.fetch(ctx, resourceURL)
}

// Activate deletes every stored version whose name differs from the
// current one, leaving at most one version's resources behind
func (c *Cache) Activate() error {
	if c.phase == PhaseNew {
		return fmt.Errorf("shell cache not installed")
	}

	for _, version := range c.store.ShellVersions() {
		if version == c.version {
			continue
		}
		if err := c.store.DeleteShellVersion(version); err != nil {
			return fmt.Errorf("failed to delete shell version %s: %w", version, err)
		}
		c.logger.Info("purged stale shell version", "version", version)
	}

	c.phase = PhaseActivated
	return nil
}

// fetch performs a plain GET for a shell resource
func (c *Cache) fetch(ctx context.Context, resourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
