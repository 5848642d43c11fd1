//go:build offline

package fetch

import "errors"

// fetchURL always fails: this binary was compiled without networking
// support.
func fetchURL(source string) ([]byte, error) {
	return nil, errors.New("tldr was compiled without networking support, cannot update the cache from a network URL")
}
