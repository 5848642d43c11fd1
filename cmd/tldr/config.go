package main

import (
	"context"
	"fmt"

	"github.com/raphi011/tldr/internal/config"
	"github.com/raphi011/tldr/internal/log"
)

// runConfigPath prints the path of the config file.
func runConfigPath(ctx context.Context) error {
	path, err := config.Path()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	log.FromContext(ctx).Printf("Config path is: %s\n", path)
	return nil
}

// runSeedConfig writes the default config file.
func runSeedConfig(ctx context.Context) error {
	path, err := config.Seed(false)
	if err != nil {
		return fmt.Errorf("Could not create seed config: %w", err)
	}

	log.FromContext(ctx).Printf("Successfully created seed config file: %s\n", path)
	return nil
}
