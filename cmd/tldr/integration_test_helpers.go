//go:build integration

package main

import (
	"archive/tar"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/raphi011/tldr/internal/config"
)

// testEnv points the cache and config directories at fresh temp dirs.
// Returns the cache dir and config dir.
func testEnv(t *testing.T) (cacheDir, configDir string) {
	t.Helper()
	cacheDir = t.TempDir()
	configDir = t.TempDir()
	t.Setenv(config.CacheDirEnv, cacheDir)
	t.Setenv(config.ConfigDirEnv, configDir)
	return cacheDir, configDir
}

// resetFlags restores the package-level flag state between in-process
// invocations of the root command.
func resetFlags() {
	quiet = false
	update = false
	updateFrom = ""
	clearCache = false
	renderFile = ""
	platform = ""
	listPages = false
	showConfigPath = false
	seedConfig = false
	rawOutput = false
}

// runTLDR executes the root command in-process with the given args.
// Stdout is captured; errors are returned rather than printed, which
// is what Execute would send to stderr before exiting non-zero.
func runTLDR(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetContext(context.Background())
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	return out.String(), err
}

// pagesArchive builds a gzip-compressed pages tarball with the
// archive's conventional top-level directory.
// pages maps "platform/name" to page content.
func pagesArchive(t *testing.T, pages map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for path, content := range pages {
		hdr := &tar.Header{
			Name:     "tldr-master/pages/" + path + ".md",
			Mode:     0o644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// writeArchiveFile writes a pages archive to disk and returns its path.
func writeArchiveFile(t *testing.T, pages map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pages.tar.gz")
	if err := os.WriteFile(path, pagesArchive(t, pages), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// defaultPages is a minimal page set used by most scenarios.
var defaultPages = map[string]string{
	"common/sl":  "# sl\n\n> Steam locomotive.\n\n- Let it roll:\n\n`sl -e`\n",
	"common/tar": "# tar\n\n> Archiving utility.\n\n- Extract:\n\n`tar xf {{archive.tar}}`\n",
	"linux/apt":  "# apt\n\n> Package manager.\n\n- Install:\n\n`apt install {{package}}`\n",
}
