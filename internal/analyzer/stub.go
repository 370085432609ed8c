//go:build !cgo

package analyzer

import (
	"context"

	"codeatlas/internal/errors"
	"codeatlas/internal/model"
)

// ASTAvailable reports whether the tree-sitter analyzer path was compiled in.
// Without cgo the grammars cannot link, so languages that would normally get
// an AST analyzer fall back to the lexical or generic one.
func ASTAvailable() bool {
	return false
}

type treeSitterStub struct {
	lang Language
}

func newTreeSitterAnalyzer(lang Language) Analyzer {
	return &treeSitterStub{lang: lang}
}

func (s *treeSitterStub) AnalyzeSource(_ context.Context, path string, _ []byte) (*model.AnalysisResult, error) {
	return emptyResult(path, s.lang), errors.New(errors.InternalError, "tree-sitter analysis requires cgo", nil)
}
