package graph

import (
	"fmt"
	"path"
	"strings"

	"codeatlas/internal/model"
)

// NodeBuilder produces one node per analyzed file and one per extracted
// symbol. Duplicate ids are dropped, not overwritten.
type NodeBuilder struct{}

func NewNodeBuilder() *NodeBuilder {
	return &NodeBuilder{}
}

// Build creates file and symbol nodes. The intent, when present, only feeds
// relevance into importance scoring; it is never mutated.
func (b *NodeBuilder) Build(results map[string]*model.AnalysisResult, intent *model.QueryIntent) []model.Node {
	seen := make(map[string]bool)
	var nodes []model.Node

	paths := sortedPaths(results)

	for _, p := range paths {
		node := fileNode(p, results[p])
		if seen[node.ID] {
			continue
		}
		seen[node.ID] = true
		nodes = append(nodes, node)
	}

	for _, p := range paths {
		parentID := FileNodeID(p)
		for _, sym := range results[p].Symbols {
			node := symbolNode(sym, parentID, intent)
			if seen[node.ID] {
				continue
			}
			seen[node.ID] = true
			nodes = append(nodes, node)
		}
	}

	return nodes
}

func fileNode(filePath string, result *model.AnalysisResult) model.Node {
	return model.Node{
		ID:    FileNodeID(filePath),
		Label: path.Base(filePath),
		Kind:  model.NodeFile,
		Location: &model.SourceLocation{
			FilePath:  filePath,
			StartLine: 1,
			EndLine:   1,
		},
		Description: "File: " + filePath,
		Importance:  FileImportance(len(result.Symbols)),
		Group:       GroupForPath(filePath),
		Metadata: map[string]any{
			"fullPath":    filePath,
			"language":    result.Language,
			"symbolCount": len(result.Symbols),
		},
	}
}

func symbolNode(sym model.Symbol, parentID string, intent *model.QueryIntent) model.Node {
	loc := sym.Location

	var snippet *model.Snippet
	if sym.Docstring != "" {
		code := sym.Docstring
		if len(code) > 200 {
			code = code[:200] + "..."
		}
		snippet = &model.Snippet{Code: code, Language: "text"}
	}

	return model.Node{
		ID:          symbolNodeID(sym),
		Label:       sym.Name,
		Kind:        sym.Kind,
		Location:    &loc,
		Description: symbolDescription(sym),
		Importance:  SymbolImportance(sym, intent),
		Snippet:     snippet,
		ParentID:    parentID,
		Group:       GroupForPath(loc.FilePath),
		Metadata: map[string]any{
			"decorators": sym.Decorators,
			"bases":      sym.Bases,
			"parameters": sym.Parameters,
			"returnType": sym.ReturnType,
			"async":      sym.Async,
			"exported":   sym.Exported,
		},
	}
}

// FileImportance ranks a file by how much it declares.
func FileImportance(symbolCount int) model.Importance {
	switch {
	case symbolCount > 10:
		return model.ImportanceHigh
	case symbolCount > 5:
		return model.ImportanceMedium
	default:
		return model.ImportanceLow
	}
}

// SymbolImportance scores a symbol into a tier. Pure function of the symbol
// and the intent, independent of build order.
func SymbolImportance(sym model.Symbol, intent *model.QueryIntent) model.Importance {
	score := kindScore(sym.Kind)

	if sym.Exported {
		score += 2
	}
	if sym.Docstring != "" {
		score++
	}
	if len(sym.Bases) > 0 {
		score++
	}

	if intent != nil {
		name := strings.ToLower(sym.Name)
		for _, kw := range intent.Keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				score += 3
			}
		}
		for _, focus := range intent.FocusAreas {
			if strings.Contains(name, strings.ToLower(focus)) {
				score += 2
			}
		}
	}

	switch {
	case score >= 7:
		return model.ImportanceCritical
	case score >= 5:
		return model.ImportanceHigh
	case score >= 3:
		return model.ImportanceMedium
	default:
		return model.ImportanceLow
	}
}

func kindScore(kind model.NodeKind) int {
	switch kind {
	case model.NodeClass, model.NodeInterface:
		return 3
	case model.NodeFunction:
		return 2
	case model.NodeMethod, model.NodeType:
		return 1
	default:
		return 0
	}
}

func symbolDescription(sym model.Symbol) string {
	var parts []string

	if sym.Async {
		parts = append(parts, "async")
	}
	parts = append(parts, string(sym.Kind), sym.Name)

	if len(sym.Parameters) > 0 {
		params := sym.Parameters
		suffix := ""
		if len(params) > 5 {
			params = params[:5]
			suffix = ", ..."
		}
		parts = append(parts, fmt.Sprintf("(%s%s)", strings.Join(params, ", "), suffix))
	}
	if sym.ReturnType != "" {
		parts = append(parts, "-> "+sym.ReturnType)
	}
	if len(sym.Bases) > 0 {
		parts = append(parts, "extends "+strings.Join(sym.Bases, ", "))
	}

	return strings.Join(parts, " ")
}
