// Package cache owns the on-disk page cache.
//
// The cache root holds a single live tree (the extracted pages
// archive). Updates never touch the live tree in place: an update
// stages the new tree next to it and commits with directory renames,
// so readers observe either the old tree or the new one, never a
// partial state.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// MaxAge is the age beyond which the cache is considered stale.
// Staleness is advisory: it triggers a warning, never a failure.
const MaxAge = 30 * 24 * time.Hour

// LiveDirName is the name of the live page tree inside the cache root.
// It matches the top-level directory of the upstream pages archive.
const LiveDirName = "tldr-master"

// Sentinel errors distinguishing "no cache at all" from "cache is
// there but has no such page".
var (
	ErrCacheNotFound = errors.New("cache not found")
	ErrPageNotFound  = errors.New("page not found")
)

// Platforms the page tree is organized by, in lookup fallback order.
var Platforms = []string{"common", "linux", "osx", "sunos", "windows"}

// Page is a single cached cheat-sheet document.
type Page struct {
	Name     string
	Platform string
	Path     string
	Raw      string
}

// Store provides access to one cache directory.
type Store struct {
	root string
}

// New creates a store rooted at dir. Nothing is created on disk until
// the first update.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// live returns the path of the live page tree.
func (s *Store) live() string {
	return filepath.Join(s.root, LiveDirName)
}

// Exists reports whether a populated cache is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.live())
	return err == nil && info.IsDir()
}

// Age returns the time since the last successful update, derived from
// the live tree's modification timestamp.
// Returns ErrCacheNotFound if no cache is present.
func (s *Store) Age() (time.Duration, error) {
	info, err := os.Stat(s.live())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, ErrCacheNotFound
		}
		return 0, err
	}
	return time.Since(info.ModTime()), nil
}

// Stale reports whether the cache is older than MaxAge.
// A missing cache is not stale; that case surfaces through Lookup.
func (s *Store) Stale() bool {
	age, err := s.Age()
	return err == nil && age > MaxAge
}

// Clear removes the cache directory entirely. Clearing an absent cache
// is a success, so repeated invocations are side-effect-free.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("could not remove cache directory: %w", err)
	}
	return nil
}

// Staging creates a fresh staging directory under the cache root, on
// the same filesystem as the live tree so the commit rename is atomic.
func (s *Store) Staging() (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", err
	}
	return os.MkdirTemp(s.root, ".staging-")
}

// Replace commits a staged tree as the new live tree. The old tree is
// moved aside before the staged tree is renamed in, then deleted; on a
// failed commit the old tree is restored. The live tree's modification
// time is set to now so freshness checks are accurate.
//
// If the staged directory contains a single LiveDirName subdirectory
// (the archive's own top-level directory) that subdirectory becomes
// the live tree.
func (s *Store) Replace(stagedDir string) error {
	defer os.RemoveAll(stagedDir)

	staged := stagedDir
	if info, err := os.Stat(filepath.Join(stagedDir, LiveDirName)); err == nil && info.IsDir() {
		staged = filepath.Join(stagedDir, LiveDirName)
	}

	live := s.live()
	old := live + ".old"

	hadLive := s.Exists()
	if hadLive {
		if err := os.Rename(live, old); err != nil {
			return fmt.Errorf("could not replace cache: %w", err)
		}
	}

	if err := os.Rename(staged, live); err != nil {
		if hadLive {
			// Restore the previous tree; the update failed cleanly.
			_ = os.Rename(old, live)
		}
		return fmt.Errorf("could not replace cache: %w", err)
	}

	if hadLive {
		_ = os.RemoveAll(old)
	}

	now := time.Now()
	if err := os.Chtimes(live, now, now); err != nil {
		return fmt.Errorf("could not update cache timestamp: %w", err)
	}
	return nil
}

// lookupOrder returns the platform directories to search, in order:
// the requested platform first, then common, then the remaining
// platforms in the fixed order of Platforms. This tie-break order is
// deliberate and stable: a page present under several platforms always
// resolves the same way.
func lookupOrder(platform string) []string {
	order := make([]string, 0, len(Platforms)+1)
	seen := map[string]bool{}
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			order = append(order, p)
		}
	}
	add(platform)
	add("common")
	for _, p := range Platforms {
		add(p)
	}
	return order
}

// Lookup resolves a command name to a page, preferring the requested
// platform, then common, then the remaining platforms.
// Returns ErrCacheNotFound if no cache is present at all, and
// ErrPageNotFound if the cache exists but has no such page.
func (s *Store) Lookup(name, platform string) (*Page, error) {
	if !s.Exists() {
		return nil, ErrCacheNotFound
	}

	for _, p := range lookupOrder(platform) {
		path := filepath.Join(s.live(), "pages", p, name+".md")
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		return &Page{Name: name, Platform: p, Path: path, Raw: string(data)}, nil
	}

	return nil, ErrPageNotFound
}

// List returns the sorted, de-duplicated names of all cached pages.
// Returns ErrCacheNotFound if no cache is present.
func (s *Store) List() ([]string, error) {
	if !s.Exists() {
		return nil, ErrCacheNotFound
	}

	seen := map[string]bool{}
	for _, p := range Platforms {
		entries, err := os.ReadDir(filepath.Join(s.live(), "pages", p))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), ".md")] = true
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Suggest returns the closest cached page name to the given one, for
// "did you mean" hints. Returns "" when nothing is close enough.
func (s *Store) Suggest(name string) string {
	names, err := s.List()
	if err != nil {
		return ""
	}
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 || matches[0].Str == name {
		return ""
	}
	return matches[0].Str
}
