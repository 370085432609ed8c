package analyzer

import (
	"path"
	"sort"
	"strings"

	"codeatlas/internal/model"
)

// ResolveImports runs after all files are analyzed and fills in
// Import.ResolvedPath for every import that maps to another file in the set.
// Imports that resolve nowhere stay empty and later become external nodes.
// Resolution is purely lexical; no module system or package manifest is
// consulted.
func ResolveImports(results map[string]*model.AnalysisResult) {
	files := make(map[string]bool, len(results))
	sorted := make([]string, 0, len(results))
	for p := range results {
		files[p] = true
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	for from, res := range results {
		lang := Language(res.Language)
		for i := range res.Imports {
			res.Imports[i].ResolvedPath = resolveImport(from, lang, res.Imports[i], files, sorted)
		}
	}
}

func resolveImport(from string, lang Language, imp model.Import, files map[string]bool, sorted []string) string {
	module := imp.Module
	suffixes := SourceExtensions(lang)

	if imp.Relative || strings.HasPrefix(module, ".") {
		if module == "" && len(imp.Names) > 0 {
			// "from . import x" names a sibling module directly
			for _, name := range imp.Names {
				probe := imp
				probe.Module = name
				if p := resolveRelative(from, lang, probe, suffixes, files); p != "" {
					return p
				}
			}
			return ""
		}
		return resolveRelative(from, lang, imp, suffixes, files)
	}
	if module == "" {
		return ""
	}

	// dotted module specs become paths; slash specs already are
	rel := module
	if !strings.Contains(module, "/") {
		rel = strings.ReplaceAll(module, ".", "/")
	}

	for _, sfx := range suffixes {
		if candidate := rel + sfx; files[candidate] {
			return candidate
		}
	}

	// fall back to a suffix match anywhere in the tree, lowest path first
	for _, sfx := range suffixes {
		want := "/" + rel + sfx
		for _, p := range sorted {
			if strings.HasSuffix(p, want) {
				return p
			}
		}
	}
	return ""
}

func resolveRelative(from string, lang Language, imp model.Import, suffixes []string, files map[string]bool) string {
	dir := path.Dir(from)

	module := imp.Module
	hops := imp.Level
	if lang == LangPython {
		// level 1 is the current package, each extra level climbs one dir
		if hops > 0 {
			hops--
		}
	} else {
		module = strings.TrimPrefix(module, "./")
		for strings.HasPrefix(module, "../") {
			module = module[3:]
		}
	}
	for i := 0; i < hops; i++ {
		dir = path.Dir(dir)
	}
	if dir == "." {
		dir = ""
	}

	rel := module
	if !strings.Contains(module, "/") {
		rel = strings.ReplaceAll(module, ".", "/")
	}

	base := rel
	if dir != "" {
		base = path.Join(dir, rel)
	}
	for _, sfx := range suffixes {
		if candidate := base + sfx; files[candidate] {
			return candidate
		}
	}
	return ""
}
