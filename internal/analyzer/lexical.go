package analyzer

import (
	"context"
	"regexp"
	"strings"

	"codeatlas/internal/model"
)

// LexicalAnalyzer extracts structure from bracket-brace languages with
// line-anchored patterns. It is the fallback for languages without a compiled
// grammar (C, C++, C#, Swift, Scala, PHP) and for all grammar languages when
// built without cgo. Calls cannot be attributed to an enclosing declaration
// at this level, so every call is recorded at module scope.
type LexicalAnalyzer struct {
	lang Language
}

func NewLexicalAnalyzer(lang Language) *LexicalAnalyzer {
	return &LexicalAnalyzer{lang: lang}
}

var (
	lexClassRe = regexp.MustCompile(`(?m)^[ \t]*(?P<prefix>(?:export\s+|default\s+|public\s+|private\s+|internal\s+|abstract\s+|final\s+|sealed\s+|partial\s+|open\s+)*)class\s+(?P<name>[A-Za-z_]\w*)(?:\s*(?::|extends|implements)\s*(?P<bases>[\w.,\s<>]+?))?\s*\{`)

	lexInterfaceRe = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+|public\s+)*(?:interface|protocol|trait)\s+([A-Za-z_]\w*)`)

	// func/function/fn/def style declarations
	lexFuncRe = regexp.MustCompile(`(?m)^[ \t]*(?P<prefix>(?:export\s+|public\s+|private\s+|protected\s+|static\s+|async\s+|override\s+)*)(?:func|function|fn)\s+([A-Za-z_]\w*)\s*\(`)

	// C-style definitions: return type, name, params, opening brace
	lexCFuncRe = regexp.MustCompile(`(?m)^(?:[A-Za-z_][\w:<>,*&\s]*[\s*&])([A-Za-z_]\w*)\s*\([^;{}]*\)\s*\{`)

	// arrow functions bound to a const/let/var
	lexArrowRe = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_]\w*)\s*=\s*(async\s+)?(?:\([^)]*\)|[A-Za-z_]\w*)\s*=>`)

	lexIncludeRe  = regexp.MustCompile(`(?m)^[ \t]*#\s*include\s*[<"]([^>"]+)[>"]`)
	lexUsingRe    = regexp.MustCompile(`(?m)^[ \t]*using\s+(?:namespace\s+)?([\w.:]+)\s*;`)
	lexImportRe   = regexp.MustCompile(`(?m)^[ \t]*import\s+(?:[\w{}*,\s]+\s+from\s+)?['"]?([\w@./-]+)['"]?`)
	lexRequireRe  = regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	lexCallRe     = regexp.MustCompile(`\b([A-Za-z_]\w*(?:\.\w+)*)\s*\(`)
	lexCommentRe  = regexp.MustCompile(`(?m)//[^\n]*|/\*[\s\S]*?\*/`)
	lexKeywordSet = map[string]bool{
		"if": true, "for": true, "while": true, "switch": true, "catch": true,
		"return": true, "sizeof": true, "typeof": true, "new": true,
		"function": true, "func": true, "fn": true, "defer": true,
	}
)

func (a *LexicalAnalyzer) AnalyzeSource(_ context.Context, path string, source []byte) (*model.AnalysisResult, error) {
	result := emptyResult(path, a.lang)
	text := string(source)

	declaredAt := make(map[int]bool)

	for _, m := range lexClassRe.FindAllStringSubmatchIndex(text, -1) {
		name := submatch(text, m, lexClassRe, "name")
		line := lineOfOffset(source, m[0])
		declaredAt[line] = true
		result.Symbols = append(result.Symbols, model.Symbol{
			Name:     name,
			Kind:     model.NodeClass,
			Location: lineLocation(path, line),
			Bases:    splitBases(submatch(text, m, lexClassRe, "bases")),
			Exported: exportedPrefix(submatch(text, m, lexClassRe, "prefix")),
		})
	}

	for _, m := range lexInterfaceRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOfOffset(source, m[0])
		declaredAt[line] = true
		result.Symbols = append(result.Symbols, model.Symbol{
			Name:     text[m[2]:m[3]],
			Kind:     model.NodeInterface,
			Location: lineLocation(path, line),
			Exported: true,
		})
	}

	for _, m := range lexFuncRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[4]:m[5]]
		line := lineOfOffset(source, m[0])
		declaredAt[line] = true
		result.Symbols = append(result.Symbols, model.Symbol{
			Name:     name,
			Kind:     model.NodeFunction,
			Location: lineLocation(path, line),
			Async:    strings.Contains(text[m[2]:m[3]], "async"),
			Exported: exportedPrefix(text[m[2]:m[3]]),
		})
	}

	for _, m := range lexCFuncRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		line := lineOfOffset(source, m[0])
		if declaredAt[line] || lexKeywordSet[name] {
			continue
		}
		declaredAt[line] = true
		result.Symbols = append(result.Symbols, model.Symbol{
			Name:     name,
			Kind:     model.NodeFunction,
			Location: lineLocation(path, line),
		})
	}

	for _, m := range lexArrowRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOfOffset(source, m[0])
		declaredAt[line] = true
		result.Symbols = append(result.Symbols, model.Symbol{
			Name:     text[m[2]:m[3]],
			Kind:     model.NodeFunction,
			Location: lineLocation(path, line),
			Async:    m[4] >= 0,
		})
	}

	a.extractImports(result, path, source, text)
	a.extractCalls(result, path, source, text, declaredAt)

	return result, nil
}

func (a *LexicalAnalyzer) extractImports(result *model.AnalysisResult, path string, source []byte, text string) {
	add := func(module string, offset int) {
		if module == "" {
			return
		}
		loc := lineLocation(path, lineOfOffset(source, offset))
		result.Imports = append(result.Imports, model.Import{
			Module:   module,
			Location: &loc,
			Relative: strings.HasPrefix(module, "."),
			Level:    relativeHops(module),
		})
	}

	for _, m := range lexIncludeRe.FindAllStringSubmatchIndex(text, -1) {
		add(text[m[2]:m[3]], m[0])
	}
	for _, m := range lexUsingRe.FindAllStringSubmatchIndex(text, -1) {
		add(text[m[2]:m[3]], m[0])
	}
	for _, m := range lexImportRe.FindAllStringSubmatchIndex(text, -1) {
		add(text[m[2]:m[3]], m[0])
	}
	for _, m := range lexRequireRe.FindAllStringSubmatchIndex(text, -1) {
		add(text[m[2]:m[3]], m[0])
	}
}

func (a *LexicalAnalyzer) extractCalls(result *model.AnalysisResult, path string, source []byte, text string, declaredAt map[int]bool) {
	// strip comments first so commented-out code does not produce calls
	stripped := lexCommentRe.ReplaceAllStringFunc(text, func(s string) string {
		return strings.Repeat(" ", len(s))
	})

	for _, m := range lexCallRe.FindAllStringSubmatchIndex(stripped, -1) {
		callee := stripped[m[2]:m[3]]
		if lexKeywordSet[callee] {
			continue
		}
		line := lineOfOffset(source, m[0])
		if declaredAt[line] {
			continue
		}
		loc := lineLocation(path, line)
		result.Calls = append(result.Calls, model.Call{
			Caller:     model.ModuleScope,
			Callee:     callee,
			Location:   &loc,
			MethodCall: strings.Contains(callee, "."),
		})
	}
}

func lineLocation(path string, line int) model.SourceLocation {
	return model.SourceLocation{FilePath: path, StartLine: line, EndLine: line}
}

func splitBases(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var bases []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if i := strings.IndexAny(b, "<( "); i > 0 {
			b = b[:i]
		}
		if b != "" {
			bases = append(bases, b)
		}
	}
	return bases
}

func exportedPrefix(prefix string) bool {
	return strings.Contains(prefix, "export") || strings.Contains(prefix, "public")
}

func relativeHops(module string) int {
	level := 0
	for strings.HasPrefix(module, "../") {
		level++
		module = module[3:]
	}
	return level
}

func submatch(text string, m []int, re *regexp.Regexp, name string) string {
	for i, n := range re.SubexpNames() {
		if n == name && m[2*i] >= 0 {
			return text[m[2*i]:m[2*i+1]]
		}
	}
	return ""
}
