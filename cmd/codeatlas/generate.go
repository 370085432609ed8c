package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codeatlas/internal/engine"
	"codeatlas/internal/export"
	"codeatlas/internal/intent"
	"codeatlas/internal/model"
)

var (
	generateIntentPath string
	generateHintsPath  string
	generateMaxNodes   int
	generateLayout     string
	generateOut        string
	generateCompress   bool
	generatePretty     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a code graph from a repository",
	Long: `Analyze a repository and emit the pruned, clustered, laid-out code graph
as JSON.

The optional intent file (TOML, YAML or JSON) carries query keywords, focus
areas, a preferred layout, and externally inferred relationship hints that
are merged into the graph.

Examples:
  codeatlas generate
  codeatlas generate --repo ./backend --out graph.json
  codeatlas generate --intent query.toml --layout radial
  codeatlas generate --max-nodes 30 --compress --out graph.json.zst`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateIntentPath, "intent", "", "Path to intent sidecar file (.toml, .yaml, .json)")
	generateCmd.Flags().StringVar(&generateHintsPath, "hints", "", "Path to an extra relationship-hints file (same formats)")
	generateCmd.Flags().IntVar(&generateMaxNodes, "max-nodes", 0, "Pruning budget (0 = from config)")
	generateCmd.Flags().StringVar(&generateLayout, "layout", "", "Layout: hierarchical, force, radial (default: intent, then config)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output file (default: stdout)")
	generateCmd.Flags().BoolVar(&generateCompress, "compress", false, "zstd-compress the output")
	generateCmd.Flags().BoolVar(&generatePretty, "pretty", false, "Indent the JSON output")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newRunLogger(cfg)

	req := engine.Request{
		MaxNodes: generateMaxNodes,
		Layout:   model.LayoutKind(generateLayout),
	}

	if generateIntentPath != "" {
		doc, loadErr := intent.Load(generateIntentPath)
		if loadErr != nil {
			return loadErr
		}
		req.Intent = &doc.Intent
		req.Hints = doc.Relationships
	}
	if generateHintsPath != "" {
		doc, loadErr := intent.Load(generateHintsPath)
		if loadErr != nil {
			return loadErr
		}
		req.Hints = append(req.Hints, doc.Relationships...)
	}

	req.Files, err = collectFiles(repoFlag, cfg)
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}
	logger.Info("collected files", "count", len(req.Files))

	result, err := engine.New(cfg, logger).Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	for _, f := range result.Findings {
		logger.Warn("file skipped", "file", f.FilePath, "code", f.Code)
	}

	opts := exportOptions()

	if generateOut == "" {
		if err := export.WriteGraph(os.Stdout, result.Graph, opts); err != nil {
			return err
		}
	} else {
		if err := export.WriteFile(generateOut, result.Graph, opts); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Graph written to %s\n", generateOut)
	}

	logger.Debug("generation finished",
		"nodes", len(result.Graph.Nodes),
		"edges", len(result.Graph.Edges),
		"clusters", len(result.Graph.Clusters),
		"duration", time.Since(start).Milliseconds(),
	)
	return nil
}

// exportOptions maps the generate flags onto the export encoder options.
func exportOptions() export.Options {
	return export.Options{
		Indent:   generatePretty,
		Compress: generateCompress,
	}
}
