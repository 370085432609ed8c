package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codeatlas/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize codeatlas configuration",
	Long:  "Creates a .codeatlas/ directory with default configuration under the repository root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := filepath.Join(repoFlag, ".codeatlas", "config.json")

	if _, err := os.Stat(configPath); err == nil && !initForce {
		// Idempotent: already initialized is success (CI-friendly)
		fmt.Println("codeatlas already initialized.")
		fmt.Printf("Configuration at: %s\n", configPath)
		fmt.Println("\nRun 'codeatlas init --force' to overwrite.")
		return nil
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(repoFlag); err != nil {
		return err
	}

	fmt.Println("codeatlas initialized.")
	fmt.Printf("Configuration written to: %s\n", configPath)
	return nil
}
