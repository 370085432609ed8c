package analyzer

import (
	"context"
	"strings"

	"codeatlas/internal/model"
)

// Analyzer extracts structural information from one file's source text.
//
// Implementations must treat parse failures as recoverable: they return an
// AnalysisResult with empty symbol/import/call lists together with the error,
// so the caller can log a finding and continue the batch.
type Analyzer interface {
	// AnalyzeSource analyzes source bytes for the file at path (repo-relative).
	AnalyzeSource(ctx context.Context, path string, source []byte) (*model.AnalysisResult, error)
}

// ForLanguage selects the analyzer for a language tag.
//
// Languages with a bundled tree-sitter grammar get the AST analyzer when the
// binary was built with CGO; bracket-brace languages fall back to the lexical
// analyzer; everything else gets the generic analyzer.
func ForLanguage(lang Language) Analyzer {
	if HasGrammar(lang) && ASTAvailable() {
		return newTreeSitterAnalyzer(lang)
	}
	if IsBracketBrace(lang) {
		return NewLexicalAnalyzer(lang)
	}
	return NewGenericAnalyzer(lang)
}

// ShouldSkip checks whether a path is excluded by include/exclude patterns.
// Include patterns, when present, win: a path matching neither included dirs
// nor included files is skipped.
func ShouldSkip(path string, excludedDirs, excludedFiles, includedDirs, includedFiles []string) bool {
	if len(includedDirs) > 0 || len(includedFiles) > 0 {
		for _, pattern := range includedDirs {
			if strings.Contains(path, pattern) {
				return false
			}
		}
		for _, pattern := range includedFiles {
			if strings.Contains(path, pattern) {
				return false
			}
		}
		return true
	}

	for _, pattern := range excludedDirs {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	for _, pattern := range excludedFiles {
		if strings.Contains(path, pattern) {
			return true
		}
	}

	return false
}

// emptyResult returns a valid result with no findings, used after parse
// failures so a broken file never aborts the batch.
func emptyResult(path string, lang Language) *model.AnalysisResult {
	return &model.AnalysisResult{
		FilePath: path,
		Language: string(lang),
		Symbols:  []model.Symbol{},
		Imports:  []model.Import{},
		Calls:    []model.Call{},
	}
}

// lineOfOffset returns the 1-based line number of a byte offset.
func lineOfOffset(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	line := 1
	for _, b := range source[:offset] {
		if b == '\n' {
			line++
		}
	}
	return line
}
