package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/raphi011/tldr/internal/cache"
	"github.com/raphi011/tldr/internal/config"
	"github.com/raphi011/tldr/internal/log"
)

// Global flags. Exactly one action runs per invocation; the dispatch
// order in run matches the original flag-driven interface.
var (
	quiet          bool
	update         bool
	updateFrom     string
	clearCache     bool
	renderFile     string
	platform       string
	listPages      bool
	showConfigPath bool
	seedConfig     bool
	rawOutput      bool
)

var rootCmd = &cobra.Command{
	Use:   "tldr [command]",
	Short: "Simplified, community-driven man pages",
	Long: `tldr shows short, example-driven help pages for console commands.

Pages come from a locally cached copy of the community page archive;
run with --update to download or refresh it.`,
	Example: `  tldr tar                # Show the page for tar
  tldr -p osx brew        # Show a page for a specific platform
  tldr --update           # Download or refresh the page cache
  tldr --clear-cache      # Delete the page cache
  tldr -f ./my-page.md    # Render a page file directly`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command and maps errors to a non-zero exit.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational messages")
	rootCmd.Flags().BoolVarP(&update, "update", "u", false, "Update the local page cache")
	rootCmd.Flags().StringVar(&updateFrom, "update-from", "", "Update the cache from a local path or URL")
	rootCmd.Flags().BoolVarP(&clearCache, "clear-cache", "c", false, "Delete the local page cache")
	rootCmd.Flags().StringVarP(&renderFile, "render", "f", "", "Render a specific page file")
	rootCmd.Flags().StringVarP(&platform, "platform", "p", "", "Override the page platform (linux, osx, sunos, windows)")
	rootCmd.Flags().BoolVar(&listPages, "list", false, "List all cached pages")
	rootCmd.Flags().BoolVar(&showConfigPath, "config-path", false, "Show the config file path")
	rootCmd.Flags().BoolVar(&seedConfig, "seed-config", false, "Create a default config file")
	rootCmd.Flags().BoolVar(&rawOutput, "raw", false, "Print the page without styling")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// run dispatches the single requested action.
func run(cmd *cobra.Command, args []string) error {
	// Informational output goes to stdout and respects --quiet.
	// Errors bypass the logger and always reach stderr.
	logger := log.New(cmd.OutOrStdout(), quiet)
	ctx := log.WithLogger(cmd.Context(), logger)

	if out, ok := cmd.OutOrStdout().(*os.File); !ok || !isatty.IsTerminal(out.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	cacheDir, err := config.CacheDir()
	if err != nil {
		return fmt.Errorf("could not determine cache directory: %w", err)
	}
	store := cache.New(cacheDir)

	switch {
	case showConfigPath:
		return runConfigPath(ctx)
	case seedConfig:
		return runSeedConfig(ctx)
	case update || updateFrom != "":
		return runUpdate(ctx, store)
	case clearCache:
		return runClear(ctx, store)
	case renderFile != "":
		return runRenderFile(ctx, cmd.OutOrStdout(), cfg, renderFile)
	case listPages:
		return runList(cmd.OutOrStdout(), store)
	case len(args) == 1:
		return runRender(ctx, cmd.OutOrStdout(), cfg, store, args[0])
	}

	return cmd.Help()
}

// currentPlatform maps the runtime OS to a page platform directory.
func currentPlatform() string {
	switch runtime.GOOS {
	case "darwin":
		return "osx"
	case "linux":
		return "linux"
	case "windows":
		return "windows"
	case "solaris", "illumos":
		return "sunos"
	}
	return "common"
}
