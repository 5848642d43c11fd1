package main

import (
	"context"
	"fmt"
	"os"

	"github.com/raphi011/tldr/internal/archive"
	"github.com/raphi011/tldr/internal/cache"
	"github.com/raphi011/tldr/internal/fetch"
	"github.com/raphi011/tldr/internal/log"
)

// runUpdate replaces the cache wholesale: fetch the archive, extract
// it into a staging directory, then atomically swap it in. Any failure
// leaves the previous cache intact.
func runUpdate(ctx context.Context, store *cache.Store) error {
	source := updateFrom
	if source == "" {
		source = fetch.DefaultArchiveURL
	}

	data, err := fetch.Fetch(source)
	if err != nil {
		return fmt.Errorf("Could not update cache: %w", err)
	}

	staged, err := store.Staging()
	if err != nil {
		return fmt.Errorf("Could not update cache: %w", err)
	}

	if err := archive.Extract(data, staged); err != nil {
		os.RemoveAll(staged)
		return fmt.Errorf("Could not update cache: %w", err)
	}

	if err := store.Replace(staged); err != nil {
		return fmt.Errorf("Could not update cache: %w", err)
	}

	log.FromContext(ctx).Println("Successfully updated cache.")
	return nil
}

// runClear deletes the cache. Clearing an absent cache succeeds.
func runClear(ctx context.Context, store *cache.Store) error {
	if err := store.Clear(); err != nil {
		return fmt.Errorf("Could not delete cache: %w", err)
	}

	log.FromContext(ctx).Println("Successfully deleted cache.")
	return nil
}
