package graph

import (
	"strings"

	"codeatlas/internal/model"
)

// EdgeBuilder produces edges from imports, calls, inheritance, containment,
// and externally supplied relationship hints. The (source, kind, target)
// triple is the dedup key; the first occurrence wins and later duplicates are
// silently discarded.
type EdgeBuilder struct {
	seen map[edgeKey]bool
}

type edgeKey struct {
	source string
	kind   model.EdgeKind
	target string
}

func NewEdgeBuilder() *EdgeBuilder {
	return &EdgeBuilder{}
}

// Build assembles all edge families over the full result set. Hints come
// from an external relationship-inference stage; their node ids are trusted
// as-is and their weight derives from the stated importance.
func (b *EdgeBuilder) Build(results map[string]*model.AnalysisResult, hints []model.Relationship) []model.Edge {
	b.seen = make(map[edgeKey]bool)
	var edges []model.Edge

	paths := sortedPaths(results)
	index := buildNameIndex(paths, results)

	for _, p := range paths {
		edges = b.importEdges(edges, p, results[p])
	}
	for _, p := range paths {
		edges = b.callEdges(edges, p, results[p], index)
	}
	for _, p := range paths {
		edges = b.inheritanceEdges(edges, results[p])
	}
	for _, p := range paths {
		edges = b.containmentEdges(edges, p, results[p])
	}
	edges = b.hintEdges(edges, hints)

	return edges
}

func (b *EdgeBuilder) add(edges []model.Edge, e model.Edge) []model.Edge {
	key := edgeKey{e.Source, e.Kind, e.Target}
	if b.seen[key] {
		return edges
	}
	b.seen[key] = true
	e.ID = EdgeID(e.Source, e.Kind, e.Target)
	return append(edges, e)
}

func (b *EdgeBuilder) importEdges(edges []model.Edge, filePath string, result *model.AnalysisResult) []model.Edge {
	source := FileNodeID(filePath)

	for _, imp := range result.Imports {
		target := ExternalNodeID(imp.Module)
		if imp.ResolvedPath != "" {
			target = FileNodeID(imp.ResolvedPath)
		}
		edges = b.add(edges, model.Edge{
			Source:      source,
			Target:      target,
			Kind:        model.EdgeImports,
			Label:       "imports",
			Description: "Imports " + imp.Module,
			Weight:      1.0,
			Metadata: map[string]any{
				"names":    imp.Names,
				"relative": imp.Relative,
			},
		})
	}
	return edges
}

// callEdges resolves caller and callee names against the symbol index.
// Unresolved callers fall back to the containing file's node; unresolved
// callees are dropped. When several symbols share a name the index holds the
// first one in path order — a known approximation that can misattribute
// calls across same-named symbols.
func (b *EdgeBuilder) callEdges(edges []model.Edge, filePath string, result *model.AnalysisResult, index *nameIndex) []model.Edge {
	for _, call := range result.Calls {
		source := index.resolve(filePath, call.Caller)
		if source == "" {
			source = FileNodeID(filePath)
		}

		target := index.resolve(filePath, call.Callee)
		if target == "" && call.MethodCall {
			// try the bare method name of a dotted callee
			if i := strings.LastIndex(call.Callee, "."); i >= 0 {
				target = index.resolve(filePath, call.Callee[i+1:])
			}
		}
		if target == "" {
			continue
		}

		edges = b.add(edges, model.Edge{
			Source:      source,
			Target:      target,
			Kind:        model.EdgeCalls,
			Label:       "calls",
			Description: call.Caller + " calls " + call.Callee,
			Weight:      1.5,
		})
	}
	return edges
}

func (b *EdgeBuilder) inheritanceEdges(edges []model.Edge, result *model.AnalysisResult) []model.Edge {
	for _, sym := range result.Symbols {
		if len(sym.Bases) == 0 {
			continue
		}
		source := symbolNodeID(sym)

		for _, base := range sym.Bases {
			target := ExternalNodeID(base)
			for _, other := range result.Symbols {
				if other.Name == base {
					target = symbolNodeID(other)
					break
				}
			}
			edges = b.add(edges, model.Edge{
				Source:      source,
				Target:      target,
				Kind:        model.EdgeExtends,
				Label:       "extends",
				Description: sym.Name + " extends " + base,
				Weight:      2.0,
			})
		}
	}
	return edges
}

func (b *EdgeBuilder) containmentEdges(edges []model.Edge, filePath string, result *model.AnalysisResult) []model.Edge {
	source := FileNodeID(filePath)

	for _, sym := range result.Symbols {
		edges = b.add(edges, model.Edge{
			Source: source,
			Target: symbolNodeID(sym),
			Kind:   model.EdgeContains,
			Label:  "contains",
			Weight: 0.5,
		})
	}
	return edges
}

func (b *EdgeBuilder) hintEdges(edges []model.Edge, hints []model.Relationship) []model.Edge {
	for _, rel := range hints {
		edges = b.add(edges, model.Edge{
			Source:      rel.Source,
			Target:      rel.Target,
			Kind:        rel.Kind,
			Label:       strings.ReplaceAll(string(rel.Kind), "_", " "),
			Description: rel.Description,
			Weight:      hintWeight(rel.Importance),
			Metadata:    map[string]any{"source": "external"},
		})
	}
	return edges
}

func hintWeight(imp model.Importance) float64 {
	switch imp {
	case model.ImportanceCritical:
		return 3.0
	case model.ImportanceHigh:
		return 2.0
	case model.ImportanceLow:
		return 0.5
	default:
		return 1.0
	}
}

// nameIndex maps symbol names to node ids, qualified as "path:name" and
// unqualified as "name". First symbol in path order wins a contested name.
type nameIndex struct {
	byName map[string]string
}

func buildNameIndex(paths []string, results map[string]*model.AnalysisResult) *nameIndex {
	idx := &nameIndex{byName: make(map[string]string)}
	for _, p := range paths {
		for _, sym := range results[p].Symbols {
			id := symbolNodeID(sym)
			qualified := p + ":" + sym.Name
			if _, ok := idx.byName[qualified]; !ok {
				idx.byName[qualified] = id
			}
			if _, ok := idx.byName[sym.Name]; !ok {
				idx.byName[sym.Name] = id
			}
		}
	}
	return idx
}

// resolve prefers a symbol in the same file, then any symbol with the name.
func (idx *nameIndex) resolve(filePath, name string) string {
	if name == "" || name == model.ModuleScope {
		return ""
	}
	if id, ok := idx.byName[filePath+":"+name]; ok {
		return id
	}
	return idx.byName[name]
}
