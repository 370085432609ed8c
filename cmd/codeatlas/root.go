package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"codeatlas/internal/config"
	"codeatlas/internal/slogutil"
	"codeatlas/internal/version"
)

var (
	// repoFlag is the CLI --repo flag value
	repoFlag string
	// logLevelFlag overrides the configured log level
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "codeatlas",
	Short: "codeatlas - deterministic code graph generator",
	Long: `codeatlas builds typed, navigable code graphs from source repositories.
It analyzes files across languages, links symbols through imports, calls and
inheritance, prunes the graph to the most relevant nodes, clusters related
code, and computes 2D positions for rendering.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("codeatlas version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".",
		"Repository root to operate on")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (default: from config)")
}

// loadConfig reads the repo's .codeatlas/config.json, falling back to
// defaults when no file exists.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(repoFlag)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRunLogger builds the logger for a command run. The --log-level flag
// wins over the config file.
func newRunLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromString(level))
}
