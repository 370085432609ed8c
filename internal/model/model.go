// Package model defines the shared data model for the codeatlas pipeline:
// analysis results produced per file, the graph built from them, and the
// externally supplied query intent consumed for relevance scoring.
package model

import "fmt"

// NodeKind classifies a graph node.
type NodeKind string

const (
	NodeFile      NodeKind = "file"
	NodeModule    NodeKind = "module"
	NodeClass     NodeKind = "class"
	NodeFunction  NodeKind = "function"
	NodeMethod    NodeKind = "method"
	NodeVariable  NodeKind = "variable"
	NodeConstant  NodeKind = "constant"
	NodeInterface NodeKind = "interface"
	NodeType      NodeKind = "type"
	NodeExternal  NodeKind = "external"
)

// EdgeKind classifies a directed relationship between two nodes.
type EdgeKind string

const (
	EdgeImports      EdgeKind = "imports"
	EdgeExports      EdgeKind = "exports"
	EdgeCalls        EdgeKind = "calls"
	EdgeExtends      EdgeKind = "extends"
	EdgeImplements   EdgeKind = "implements"
	EdgeUses         EdgeKind = "uses"
	EdgeReturns      EdgeKind = "returns"
	EdgeInstantiates EdgeKind = "instantiates"
	EdgeDataFlow     EdgeKind = "data_flow"
	EdgeControlFlow  EdgeKind = "control_flow"
	EdgeDependsOn    EdgeKind = "depends_on"
	EdgeContains     EdgeKind = "contains"
)

// Importance is a coarse relevance tier used for pruning and rendering emphasis.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

// LayoutKind selects a layout algorithm.
type LayoutKind string

const (
	LayoutHierarchical LayoutKind = "hierarchical"
	LayoutForce        LayoutKind = "force"
	LayoutRadial       LayoutKind = "radial"
)

// ModuleScope is the synthetic caller name for calls that cannot be
// attributed to an enclosing function.
const ModuleScope = "<module>"

// SourceLocation is an exact location in source code. Lines are 1-based;
// columns are optional and 0-based.
type SourceLocation struct {
	FilePath    string `json:"filePath"`
	StartLine   int    `json:"startLine"`
	EndLine     int    `json:"endLine"`
	StartColumn int    `json:"startColumn,omitempty"`
	EndColumn   int    `json:"endColumn,omitempty"`
}

// Validate checks the location invariants.
func (l SourceLocation) Validate() error {
	if l.StartLine < 1 {
		return fmt.Errorf("startLine must be >= 1, got %d", l.StartLine)
	}
	if l.EndLine < l.StartLine {
		return fmt.Errorf("endLine %d must be >= startLine %d", l.EndLine, l.StartLine)
	}
	return nil
}

// Symbol is a named declaration found in a source file. Symbols are immutable
// once produced by an analyzer.
type Symbol struct {
	Name       string         `json:"name"`
	Kind       NodeKind       `json:"kind"`
	Location   SourceLocation `json:"location"`
	Docstring  string         `json:"docstring,omitempty"`
	Decorators []string       `json:"decorators,omitempty"`
	Bases      []string       `json:"bases,omitempty"`
	Parameters []string       `json:"parameters,omitempty"`
	ReturnType string         `json:"returnType,omitempty"`
	Async      bool           `json:"async,omitempty"`
	Exported   bool           `json:"exported,omitempty"`
}

// Import is one import statement. Names is empty for whole-module imports.
// ResolvedPath is filled by the cross-file resolution pass when the module
// string matches another analyzed file.
type Import struct {
	Module       string          `json:"module"`
	Names        []string        `json:"names,omitempty"`
	Alias        string          `json:"alias,omitempty"`
	Location     *SourceLocation `json:"location,omitempty"`
	Relative     bool            `json:"relative,omitempty"`
	Level        int             `json:"level,omitempty"`
	ResolvedPath string          `json:"resolvedPath,omitempty"`
}

// Call is one call expression. Caller is ModuleScope when the analyzer cannot
// attribute the call to an enclosing function.
type Call struct {
	Caller     string          `json:"caller"`
	Callee     string          `json:"callee"`
	Location   *SourceLocation `json:"location,omitempty"`
	MethodCall bool            `json:"methodCall,omitempty"`
}

// AnalysisResult is the complete structural extraction for one file.
type AnalysisResult struct {
	FilePath string   `json:"filePath"`
	Language string   `json:"language"`
	Symbols  []Symbol `json:"symbols"`
	Imports  []Import `json:"imports"`
	Calls    []Call   `json:"calls"`
}

// Snippet is a short code preview attached to a node.
type Snippet struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// Node is a graph vertex representing a file or a symbol. Position fields are
// nil until the layout engine fills them.
type Node struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Kind        NodeKind        `json:"kind"`
	Location    *SourceLocation `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Importance  Importance      `json:"importance"`
	Snippet     *Snippet        `json:"snippet,omitempty"`
	ParentID    string          `json:"parentId,omitempty"`
	Group       string          `json:"group,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`

	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Edge is a directed, typed relationship between two nodes. Weight is a
// non-negative float consumed by clustering and layout.
type Edge struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	Target      string         `json:"target"`
	Kind        EdgeKind       `json:"kind"`
	Label       string         `json:"label,omitempty"`
	Description string         `json:"description,omitempty"`
	Weight      float64        `json:"weight"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Graph is the assembled code graph handed to renderers.
type Graph struct {
	Nodes     []Node              `json:"nodes"`
	Edges     []Edge              `json:"edges"`
	RootNodes []string            `json:"rootNodes"`
	Clusters  map[string][]string `json:"clusters"`
}

// QueryIntent is the externally parsed representation of what a query is
// asking about. The pipeline consumes it read-only.
type QueryIntent struct {
	Keywords        []string   `json:"keywords"`
	FocusAreas      []string   `json:"focusAreas"`
	PreferredLayout LayoutKind `json:"preferredLayout"`
	Depth           int        `json:"depth"`
}

// Relationship is an externally inferred relationship record merged into the
// edge set alongside the statically extracted edges.
type Relationship struct {
	Source      string     `json:"source"`
	Target      string     `json:"target"`
	Kind        EdgeKind   `json:"kind"`
	Description string     `json:"description,omitempty"`
	Importance  Importance `json:"importance,omitempty"`
}
