package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"codeatlas/internal/analyzer"
	"codeatlas/internal/model"
)

var analyzeResolve bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path-prefix]",
	Short: "Dump per-file structural analysis",
	Long: `Analyze repository files and print the raw per-file extraction (symbols,
imports, calls) as JSON, without building a graph.

An optional path prefix restricts the output to matching files; resolution
still runs over the whole repository so cross-file imports resolve.

Examples:
  codeatlas analyze
  codeatlas analyze src/api
  codeatlas analyze --resolve=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeResolve, "resolve", true, "Resolve imports across files")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newRunLogger(cfg)

	files, err := collectFiles(repoFlag, cfg)
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}

	results := make(map[string]*model.AnalysisResult, len(files))
	for _, f := range files {
		lang := analyzer.FromPath(f.Path)
		res, analyzeErr := analyzer.ForLanguage(lang).AnalyzeSource(cmd.Context(), f.Path, f.Source)
		if analyzeErr != nil {
			logger.Warn("analysis failed", "file", f.Path, "error", analyzeErr)
		}
		results[f.Path] = res
	}

	if analyzeResolve {
		analyzer.ResolveImports(results)
	}

	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}

	var out []*model.AnalysisResult
	for _, f := range files {
		if prefix != "" && !strings.HasPrefix(f.Path, prefix) {
			continue
		}
		out = append(out, results[f.Path])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FilePath < out[j].FilePath })

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
