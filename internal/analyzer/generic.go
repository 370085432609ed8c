package analyzer

import (
	"context"
	"regexp"
	"strings"

	"codeatlas/internal/model"
)

// GenericAnalyzer is the last-resort pass for languages nothing else covers
// (Ruby, shell, and anything unrecognized). It looks for declaration and
// import keywords only; call extraction at this level produces more noise
// than signal, so it is skipped.
type GenericAnalyzer struct {
	lang Language
}

func NewGenericAnalyzer(lang Language) *GenericAnalyzer {
	return &GenericAnalyzer{lang: lang}
}

var (
	genFuncRe   = regexp.MustCompile(`(?m)^[ \t]*(?:def|func|fn|function|sub|proc)\s+([A-Za-z_]\w*[!?]?)`)
	genClassRe  = regexp.MustCompile(`(?m)^[ \t]*(?:class|module|struct)\s+([A-Z]\w*)`)
	genImportRe = regexp.MustCompile(`(?m)^[ \t]*(?:import|require|require_relative|use|include|source)\s+['"]?([\w@./-]+)['"]?`)
)

func (a *GenericAnalyzer) AnalyzeSource(_ context.Context, path string, source []byte) (*model.AnalysisResult, error) {
	result := emptyResult(path, a.lang)
	text := string(source)

	for _, m := range genClassRe.FindAllStringSubmatchIndex(text, -1) {
		result.Symbols = append(result.Symbols, model.Symbol{
			Name:     text[m[2]:m[3]],
			Kind:     model.NodeClass,
			Location: lineLocation(path, lineOfOffset(source, m[0])),
			Exported: true,
		})
	}

	for _, m := range genFuncRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		result.Symbols = append(result.Symbols, model.Symbol{
			Name:     name,
			Kind:     model.NodeFunction,
			Location: lineLocation(path, lineOfOffset(source, m[0])),
			Exported: !strings.HasPrefix(name, "_"),
		})
	}

	for _, m := range genImportRe.FindAllStringSubmatchIndex(text, -1) {
		module := text[m[2]:m[3]]
		if module == "" {
			continue
		}
		loc := lineLocation(path, lineOfOffset(source, m[0]))
		result.Imports = append(result.Imports, model.Import{
			Module:   module,
			Location: &loc,
			Relative: strings.HasPrefix(module, "."),
			Level:    relativeHops(module),
		})
	}

	return result, nil
}
