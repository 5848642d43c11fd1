package cache

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// seedPages writes a live page tree under the store root.
// pages maps platform -> page names.
func seedPages(t *testing.T, root string, pages map[string][]string) {
	t.Helper()
	for platform, names := range pages {
		dir := filepath.Join(root, LiveDirName, "pages", platform)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		for _, name := range names {
			content := "# " + name + "\n\n> Page for " + name + " (" + platform + ").\n"
			if err := os.WriteFile(filepath.Join(dir, name+".md"), []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestExists(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s := New(filepath.Join(root, "cache"))
	if s.Exists() {
		t.Error("Exists() = true for absent cache")
	}

	seedPages(t, s.Root(), map[string][]string{"common": {"sl"}})
	if !s.Exists() {
		t.Error("Exists() = false for populated cache")
	}
}

func TestAge(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "cache"))

	if _, err := s.Age(); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Age() on absent cache = %v, want ErrCacheNotFound", err)
	}

	seedPages(t, s.Root(), map[string][]string{"common": {"sl"}})
	age, err := s.Age()
	if err != nil {
		t.Fatalf("Age() error: %v", err)
	}
	if age < 0 || age > time.Minute {
		t.Errorf("Age() = %v, want near zero", age)
	}
	if s.Stale() {
		t.Error("fresh cache reported as stale")
	}
}

func TestStale_OldModTime(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "cache"))
	seedPages(t, s.Root(), map[string][]string{"common": {"sl"}})

	past := time.Now().Add(-MaxAge - 24*time.Hour)
	if err := os.Chtimes(filepath.Join(s.Root(), LiveDirName), past, past); err != nil {
		t.Fatal(err)
	}

	if !s.Stale() {
		t.Error("old cache not reported as stale")
	}
}

func TestClear_Idempotent(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "cache"))
	seedPages(t, s.Root(), map[string][]string{"common": {"sl"}})

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if s.Exists() {
		t.Error("cache still exists after Clear()")
	}
	// Clearing again must also succeed.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear() error: %v", err)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "cache"))
	seedPages(t, s.Root(), map[string][]string{
		"common":  {"tar", "everywhere"},
		"linux":   {"sl", "everywhere"},
		"osx":     {"brew", "everywhere"},
		"windows": {"everywhere"},
	})

	tests := []struct {
		name         string
		page         string
		platform     string
		wantPlatform string
		wantErr      error
	}{
		{"platform page", "sl", "linux", "linux", nil},
		{"common fallback", "tar", "linux", "common", nil},
		{"other platform fallback", "brew", "linux", "osx", nil},
		{"requested platform wins over common", "everywhere", "windows", "windows", nil},
		{"common wins over other platforms", "everywhere", "sunos", "common", nil},
		{"empty platform falls back to common", "tar", "", "common", nil},
		{"missing page", "no-such-page", "linux", "", ErrPageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := s.Lookup(tt.page, tt.platform)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Lookup(%q, %q) error = %v, want %v", tt.page, tt.platform, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got.Platform != tt.wantPlatform {
				t.Errorf("Lookup(%q, %q) platform = %q, want %q", tt.page, tt.platform, got.Platform, tt.wantPlatform)
			}
			if got.Name != tt.page {
				t.Errorf("Lookup(%q, %q) name = %q", tt.page, tt.platform, got.Name)
			}
			if got.Raw == "" {
				t.Error("Lookup returned empty page content")
			}
		})
	}
}

func TestLookup_MissingCache(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "cache"))
	if _, err := s.Lookup("sl", "linux"); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Lookup on absent cache = %v, want ErrCacheNotFound", err)
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "cache"))
	seedPages(t, s.Root(), map[string][]string{"common": {"old-page"}})

	// Stage a replacement tree carrying the archive's top-level dir.
	staged, err := s.Staging()
	if err != nil {
		t.Fatalf("Staging() error: %v", err)
	}
	dir := filepath.Join(staged, LiveDirName, "pages", "common")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "new-page.md"), []byte("# new-page\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Replace(staged); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	// Old contents are fully replaced, not merged.
	if _, err := s.Lookup("old-page", ""); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("old page still present after replace: %v", err)
	}
	if _, err := s.Lookup("new-page", ""); err != nil {
		t.Errorf("new page missing after replace: %v", err)
	}

	age, err := s.Age()
	if err != nil {
		t.Fatalf("Age() error: %v", err)
	}
	if age > time.Minute {
		t.Errorf("Age() = %v after replace, want near zero", age)
	}

	// The staging directory is consumed.
	if _, err := os.Stat(staged); !errors.Is(err, os.ErrNotExist) {
		t.Error("staging directory left behind after Replace")
	}
}

func TestReplace_FirstUpdate(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "cache"))

	staged, err := s.Staging()
	if err != nil {
		t.Fatal(err)
	}
	// No top-level archive dir this time: the staged tree is the pages
	// tree itself.
	dir := filepath.Join(staged, "pages", "common")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sl.md"), []byte("# sl\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Replace(staged); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}
	if !s.Exists() {
		t.Error("cache missing after first update")
	}
	if _, err := s.Lookup("sl", ""); err != nil {
		t.Errorf("Lookup after first update: %v", err)
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "cache"))

	if _, err := s.List(); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("List() on absent cache = %v, want ErrCacheNotFound", err)
	}

	seedPages(t, s.Root(), map[string][]string{
		"common": {"tar", "sl"},
		"linux":  {"sl", "apt"},
	})

	got, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"apt", "sl", "tar"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "cache"))
	seedPages(t, s.Root(), map[string][]string{"common": {"tar", "git-checkout"}})

	if got := s.Suggest("gitcheckout"); got != "git-checkout" {
		t.Errorf("Suggest(gitcheckout) = %q, want git-checkout", got)
	}
	if got := s.Suggest("zzzzqqq"); got != "" {
		t.Errorf("Suggest(zzzzqqq) = %q, want no suggestion", got)
	}
}
