// Package fetch obtains raw archive bytes for a cache update, from a
// local path or an HTTP(S) URL. Networking can be compiled out with
// the "offline" build tag; the offline variant rejects URL sources
// with an explanatory error.
package fetch

import (
	"fmt"
	"net/url"
	"os"
)

// DefaultArchiveURL is the upstream pages archive used by a plain update.
const DefaultArchiveURL = "https://github.com/tldr-pages/tldr/archive/master.tar.gz"

// Fetch returns the raw bytes behind source, which is either a
// filesystem path or a URL. A single attempt, no retries; whether the
// bytes are actually a valid archive is the extractor's concern.
func Fetch(source string) ([]byte, error) {
	if isURL(source) {
		return fetchURL(source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("Could not open file: %w", err)
	}
	return data, nil
}

// isURL reports whether source carries a URL scheme. Scheme validation
// happens later so that a misspelled scheme is reported as such rather
// than being treated as a missing file.
func isURL(source string) bool {
	u, err := url.Parse(source)
	return err == nil && u.Scheme != ""
}
