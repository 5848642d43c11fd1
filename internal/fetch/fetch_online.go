//go:build !offline

package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// fetchURL downloads source with a single blocking GET. Only http and
// https schemes are accepted.
func fetchURL(source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("HTTP error: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("HTTP error: URL scheme is not allowed: %q", u.Scheme)
	}

	resp, err := http.Get(source)
	if err != nil {
		return nil, fmt.Errorf("HTTP error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: unexpected status code %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("HTTP error: %w", err)
	}
	return data, nil
}
