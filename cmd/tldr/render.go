package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raphi011/tldr/internal/cache"
	"github.com/raphi011/tldr/internal/config"
	"github.com/raphi011/tldr/internal/log"
	"github.com/raphi011/tldr/internal/page"
	"github.com/raphi011/tldr/internal/render"
)

// runRender looks up a page in the cache and renders it.
func runRender(ctx context.Context, w io.Writer, cfg config.Config, store *cache.Store, name string) error {
	warnIfStale(ctx, store)

	lookupPlatform := platform
	if lookupPlatform == "" {
		lookupPlatform = currentPlatform()
	}

	p, err := store.Lookup(name, lookupPlatform)
	switch {
	case errors.Is(err, cache.ErrCacheNotFound):
		return errors.New("Cache not found. Please run `tldr --update`.")
	case errors.Is(err, cache.ErrPageNotFound):
		msg := fmt.Sprintf("Page `%s` not found in cache.", name)
		if suggestion := store.Suggest(name); suggestion != "" {
			msg += fmt.Sprintf(" Did you mean `%s`?", suggestion)
		}
		return errors.New(msg + "\nTry updating with `tldr --update`, or submit a pull request to: https://github.com/tldr-pages/tldr")
	case err != nil:
		return err
	}

	renderText(w, cfg, p.Raw)
	return nil
}

// runRenderFile renders an explicit page file, bypassing the cache.
func runRenderFile(ctx context.Context, w io.Writer, cfg config.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Could not open file: %w", err)
	}

	renderText(w, cfg, string(data))
	return nil
}

func renderText(w io.Writer, cfg config.Config, text string) {
	r := render.New(w, cfg)
	if rawOutput {
		r.Raw(text)
		return
	}
	r.Render(page.Parse(text))
}

// runList prints the names of all cached pages, one per line.
func runList(w io.Writer, store *cache.Store) error {
	names, err := store.List()
	if errors.Is(err, cache.ErrCacheNotFound) {
		return errors.New("Cache not found. Please run `tldr --update`.")
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, strings.Join(names, "\n"))
	return nil
}

// warnIfStale prints an advisory staleness warning. Rendering proceeds
// regardless; quiet mode drops the warning.
func warnIfStale(ctx context.Context, store *cache.Store) {
	if !store.Stale() {
		return
	}
	days := int(cache.MaxAge.Hours() / 24)
	log.FromContext(ctx).Printf("Cache wasn't updated for more than %d days.\nYou should probably run `tldr --update` soon.\n", days)
}
