// Package analyzer extracts symbols, imports, and calls from source files.
//
// Three analyzer families cover the language spectrum: a tree-sitter AST
// analyzer for languages with an available grammar, a lexical analyzer for
// bracket-brace languages without one, and a generic fallback for everything
// else. Selection is by language tag via ForLanguage.
package analyzer

import (
	"path/filepath"
	"strings"
)

// Language represents a source language tag.
type Language string

const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangKotlin     Language = "kotlin"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangSwift      Language = "swift"
	LangScala      Language = "scala"
	LangPHP        Language = "php"
	LangRuby       Language = "ruby"
	LangUnknown    Language = "unknown"
)

// FromExtension returns the Language for a file extension.
func FromExtension(ext string) (Language, bool) {
	switch strings.ToLower(ext) {
	case ".go":
		return LangGo, true
	case ".js", ".mjs", ".cjs", ".jsx":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	case ".py", ".pyw":
		return LangPython, true
	case ".rs":
		return LangRust, true
	case ".java":
		return LangJava, true
	case ".kt", ".kts":
		return LangKotlin, true
	case ".c", ".h":
		return LangC, true
	case ".cpp", ".cc", ".cxx", ".hpp", ".hh":
		return LangCPP, true
	case ".cs":
		return LangCSharp, true
	case ".swift":
		return LangSwift, true
	case ".scala":
		return LangScala, true
	case ".php":
		return LangPHP, true
	case ".rb":
		return LangRuby, true
	default:
		return LangUnknown, false
	}
}

// FromPath returns the Language for a file path based on its extension.
func FromPath(path string) Language {
	lang, _ := FromExtension(filepath.Ext(path))
	return lang
}

// FromTag normalizes an externally supplied language tag. Unrecognized tags
// map to LangUnknown, which selects the generic analyzer.
func FromTag(tag string) Language {
	switch strings.ToLower(tag) {
	case "go", "golang":
		return LangGo
	case "javascript", "js":
		return LangJavaScript
	case "typescript", "ts":
		return LangTypeScript
	case "tsx":
		return LangTSX
	case "python", "py":
		return LangPython
	case "rust":
		return LangRust
	case "java":
		return LangJava
	case "kotlin":
		return LangKotlin
	case "c":
		return LangC
	case "cpp", "c++":
		return LangCPP
	case "csharp", "c#":
		return LangCSharp
	case "swift":
		return LangSwift
	case "scala":
		return LangScala
	case "php":
		return LangPHP
	case "ruby":
		return LangRuby
	default:
		return LangUnknown
	}
}

// HasGrammar reports whether a tree-sitter grammar is bundled for the language.
func HasGrammar(lang Language) bool {
	switch lang {
	case LangGo, LangJavaScript, LangTypeScript, LangTSX, LangPython,
		LangRust, LangJava, LangKotlin:
		return true
	default:
		return false
	}
}

// IsBracketBrace reports whether the language uses C-family brace syntax,
// making it a candidate for the lexical analyzer.
func IsBracketBrace(lang Language) bool {
	switch lang {
	case LangGo, LangJavaScript, LangTypeScript, LangTSX, LangRust, LangJava,
		LangKotlin, LangC, LangCPP, LangCSharp, LangSwift, LangScala, LangPHP:
		return true
	default:
		return false
	}
}

// SourceExtensions returns candidate file suffixes for resolving an import of
// the given language, ordered by likelihood.
func SourceExtensions(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{".go"}
	case LangJavaScript:
		return []string{".js", ".jsx", ".mjs", "/index.js"}
	case LangTypeScript, LangTSX:
		return []string{".ts", ".tsx", ".js", "/index.ts", "/index.js"}
	case LangPython:
		return []string{".py", "/__init__.py"}
	case LangRust:
		return []string{".rs", "/mod.rs"}
	case LangJava:
		return []string{".java"}
	case LangKotlin:
		return []string{".kt"}
	default:
		return []string{""}
	}
}
