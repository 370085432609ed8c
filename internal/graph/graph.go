// Package graph turns per-file analysis results into a typed node/edge graph
// and reduces it: building, clustering, and pruning. All builders are
// deterministic — the same analysis results always produce the same ids in
// the same order.
package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"codeatlas/internal/model"
)

// shortHash returns the first 12 hex chars of the sha256 of s.
func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// FileNodeID returns the node id for a file path. File ids stay human-legible
// so external renderers can reference them without a lookup table.
func FileNodeID(path string) string {
	return "file:" + path
}

// SymbolNodeID derives a stable id for a symbol from its declaring file,
// kind, name, and start line. Two same-named symbols at different lines get
// distinct ids; re-analyzing unchanged code reproduces the same id.
func SymbolNodeID(path string, kind model.NodeKind, name string, startLine int) string {
	return "sym:" + shortHash(fmt.Sprintf("%s:%s:%s:%d", path, kind, name, startLine))
}

// ExternalNodeID returns the placeholder id for an unresolved module or base
// type reference.
func ExternalNodeID(name string) string {
	return "ext:" + name
}

// EdgeID derives a stable id from the (source, kind, target) triple.
func EdgeID(source string, kind model.EdgeKind, target string) string {
	return "edge:" + shortHash(source + ":" + string(kind) + ":" + target)
}

// symbolNodeID is the id for a symbol as extracted, using its own location.
func symbolNodeID(sym model.Symbol) string {
	return SymbolNodeID(sym.Location.FilePath, sym.Kind, sym.Name, sym.Location.StartLine)
}

// GroupForPath extracts a logical group from a file path: the first segment
// that is non-empty, not hidden, and not a generic source-root name.
func GroupForPath(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || strings.HasPrefix(seg, ".") {
			continue
		}
		if seg == "src" || seg == "lib" || seg == "app" {
			continue
		}
		return seg
	}
	return "root"
}

// sortedPaths returns the result map's keys in lexical order. Builders
// iterate in this order so "first wins" dedup is reproducible.
func sortedPaths(results map[string]*model.AnalysisResult) []string {
	paths := make([]string, 0, len(results))
	for p := range results {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
