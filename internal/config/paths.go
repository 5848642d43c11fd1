package config

import (
	"os"
	"path/filepath"
)

// Environment variables overriding the default directory locations.
// Primarily used for test isolation, but part of the documented contract.
const (
	CacheDirEnv  = "TLDR_CACHE_DIR"
	ConfigDirEnv = "TLDR_CONFIG_DIR"
)

// Dir returns the config directory, honoring the TLDR_CONFIG_DIR override.
func Dir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "tldr"), nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// CacheDir returns the cache directory, honoring the TLDR_CACHE_DIR override.
func CacheDir() (string, error) {
	if dir := os.Getenv(CacheDirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "tldr"), nil
}
