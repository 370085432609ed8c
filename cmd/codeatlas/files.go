package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeatlas/internal/analyzer"
	"codeatlas/internal/config"
	"codeatlas/internal/engine"
)

// collectFiles walks the repository and loads every analyzable source file,
// honoring the configured include/exclude patterns and size limit. Paths in
// the returned slice are slash-separated and relative to root, sorted.
func collectFiles(root string, cfg *config.Config) ([]engine.File, error) {
	var files []engine.File

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			// Includes are applied per file; only excludes prune whole dirs.
			if analyzer.ShouldSkip(rel+"/", cfg.Analysis.ExcludedDirs, nil, nil, nil) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if analyzer.ShouldSkip(rel,
			cfg.Analysis.ExcludedDirs, cfg.Analysis.ExcludedFiles,
			cfg.Analysis.IncludedDirs, cfg.Analysis.IncludedFiles) {
			return nil
		}
		if analyzer.FromPath(rel) == analyzer.LangUnknown {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		if cfg.Analysis.MaxFileSizeBytes > 0 && info.Size() > int64(cfg.Analysis.MaxFileSizeBytes) {
			return nil
		}

		source, readErr := os.ReadFile(p)
		if readErr != nil {
			return readErr
		}
		files = append(files, engine.File{Path: rel, Source: source})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
