package font

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Source supplies font outlines by family name.
type Source interface {
	Outline(family string) ([]byte, error)
}

// HTTPSource fetches "<family>.ttf" beneath a base URL; the family
// name is lowercased and stripped of spaces to form the file name.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client // optional; a 10 second timeout applies when nil
}

// Outline downloads the outline for one family.
func (s *HTTPSource) Outline(family string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	name := strings.ToLower(strings.ReplaceAll(family, " ", ""))
	url := strings.TrimSuffix(s.BaseURL, "/") + "/" + name + ".ttf"

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching font %s: %w", family, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching font %s: status %d", family, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxFileSize))
}

// Warm makes each family measurable before an edit pass, loading
// missing outlines through the cache's source when one is installed.
// Families that still cannot be measured are returned; callers fall
// back to estimated widths for those.
func (c *Cache) Warm(families []string) []string {
	c.mu.RLock()
	source := c.source
	c.mu.RUnlock()

	var missing []string
	seen := make(map[string]bool)
	for _, family := range families {
		if family == "" {
			continue
		}
		key := strings.ToLower(family)
		if seen[key] {
			continue
		}
		seen[key] = true

		if c.Measurable(family) {
			continue
		}
		if source != nil {
			if data, err := source.Outline(family); err == nil {
				if c.RegisterData(family, data) == nil {
					continue
				}
			}
		}
		missing = append(missing, family)
	}
	return missing
}
