// Package archive unpacks compressed page tarballs.
package archive

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// unpackErr wraps decompression and tar failures with the user-facing
// unpack message so callers can surface it verbatim.
func unpackErr(err error) error {
	return fmt.Errorf("Could not unpack compressed data: %w", err)
}

// Extract unpacks a gzip-compressed tarball into dest. dest must be an
// existing directory; callers stage into a temporary directory and
// commit separately, so a failed extraction never touches live data.
func Extract(data []byte, dest string) error {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return unpackErr(err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return unpackErr(err)
		}

		path, err := entryPath(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := writeFile(path, tr); err != nil {
				return err
			}
		default:
			// Symlinks and special files don't occur in page
			// archives; skip them rather than fail the update.
		}
	}
}

// entryPath resolves a tar entry name inside dest, rejecting absolute
// names and path traversal.
func entryPath(dest, name string) (string, error) {
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry has invalid path: %q", name)
	}
	return filepath.Join(dest, clean), nil
}

func writeFile(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return unpackErr(err)
	}
	return f.Close()
}
