// Package engine orchestrates a pipeline run: concurrent per-file analysis,
// cross-file import resolution, graph construction, pruning, clustering, and
// layout. A run is a pure function of its inputs; there are no cross-run
// caches here.
package engine

import (
	"context"
	stderrors "errors"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"

	"codeatlas/internal/analyzer"
	"codeatlas/internal/config"
	"codeatlas/internal/errors"
	"codeatlas/internal/graph"
	"codeatlas/internal/layout"
	"codeatlas/internal/model"
)

// File is one unit of analysis input. Language, when set, overrides
// extension-based detection.
type File struct {
	Path     string
	Source   []byte
	Language string
}

// Request carries everything one run needs. Intent and Hints come from
// external collaborators and are consumed read-only.
type Request struct {
	Files  []File
	Intent *model.QueryIntent
	Hints  []model.Relationship

	// MaxNodes overrides the configured pruning budget when > 0.
	MaxNodes int
	// Layout overrides the intent's preferred layout when set.
	Layout model.LayoutKind
}

// Finding records a non-fatal per-file failure.
type Finding struct {
	FilePath string           `json:"filePath"`
	Code     errors.ErrorCode `json:"code"`
	Message  string           `json:"message"`
}

// Result is a completed run.
type Result struct {
	RunID    string
	Graph    *model.Graph
	Analyses map[string]*model.AnalysisResult
	Findings []Finding
}

// Engine runs the pipeline.
type Engine struct {
	cfg *config.Config
	log *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Engine {
	return &Engine{cfg: cfg, log: logger}
}

// Generate analyzes all files and builds the pruned, clustered, laid-out
// graph. Per-file failures become findings; only cancellation or a graph
// contract violation in debug mode aborts the run.
func (e *Engine) Generate(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	log := e.log.With("run", runID)
	log.Info("starting generation", "files", len(req.Files))

	analyses, findings, err := e.analyzeAll(ctx, req.Files)
	if err != nil {
		return nil, err
	}

	analyzer.ResolveImports(analyses)

	nodes := graph.NewNodeBuilder().Build(analyses, req.Intent)
	edges := graph.NewEdgeBuilder().Build(analyses, req.Hints)

	maxNodes := req.MaxNodes
	if maxNodes <= 0 {
		maxNodes = e.cfg.Graph.MaxNodes
	}
	nodes, edges = graph.NewPruner().Prune(nodes, edges, req.Intent, maxNodes)

	if e.cfg.DebugInvariants {
		if err := graph.Verify(nodes, edges); err != nil {
			return nil, err
		}
	}

	clusterer := graph.NewClusterer()
	clusters := clusterer.Refine(
		clusterer.Cluster(nodes, edges),
		nodes,
		e.cfg.Graph.MaxClusterSize,
		e.cfg.Graph.MinClusterSize,
	)

	engine := layout.NewEngine()
	engine.Iterations = e.cfg.Layout.Iterations
	engine.Seed = e.cfg.Layout.Seed
	nodes = engine.Compute(nodes, edges, e.layoutKind(req))

	g := &model.Graph{
		Nodes:     nodes,
		Edges:     edges,
		RootNodes: rootNodes(nodes, edges, e.cfg.Graph.MaxRootNodes),
		Clusters:  clusters,
	}

	log.Info("generation complete",
		"nodes", len(g.Nodes), "edges", len(g.Edges), "findings", len(findings))

	return &Result{
		RunID:    runID,
		Graph:    g,
		Analyses: analyses,
		Findings: findings,
	}, nil
}

// layoutKind picks the layout: explicit request, then intent preference,
// then the configured default.
func (e *Engine) layoutKind(req Request) model.LayoutKind {
	if req.Layout != "" {
		return req.Layout
	}
	if req.Intent != nil && req.Intent.PreferredLayout != "" {
		return req.Intent.PreferredLayout
	}
	return model.LayoutKind(e.cfg.Layout.Default)
}

type outcome struct {
	path    string
	result  *model.AnalysisResult
	finding *Finding
}

// analyzeAll fans the files out over a worker pool. Each worker owns its
// file's bytes and result until they are collected here, after every worker
// has joined. Cancellation is checked at file boundaries; a cancelled run
// merges nothing.
func (e *Engine) analyzeAll(ctx context.Context, files []File) (map[string]*model.AnalysisResult, []Finding, error) {
	workers := e.cfg.Analysis.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan File)
	outcomes := make(chan outcome, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				if ctx.Err() != nil {
					return
				}
				outcomes <- e.analyzeOne(ctx, f)
			}
		}()
	}

feed:
	for _, f := range files {
		select {
		case jobs <- f:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	analyses := make(map[string]*model.AnalysisResult, len(files))
	var findings []Finding
	for o := range outcomes {
		analyses[o.path] = o.result
		if o.finding != nil {
			findings = append(findings, *o.finding)
		}
	}
	sortFindings(findings)
	return analyses, findings, nil
}

// sortFindings orders findings by file path. Outcomes arrive in worker
// completion order, which would otherwise leak scheduling into the Result.
func sortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		return findings[i].FilePath < findings[j].FilePath
	})
}

func (e *Engine) analyzeOne(ctx context.Context, f File) outcome {
	lang := analyzer.FromTag(f.Language)
	if lang == analyzer.LangUnknown {
		lang = analyzer.FromPath(f.Path)
	}

	res, err := analyzer.ForLanguage(lang).AnalyzeSource(ctx, f.Path, f.Source)
	o := outcome{path: f.Path, result: res}
	if err != nil {
		code := errors.ParseFailed
		var ae *errors.AtlasError
		if stderrors.As(err, &ae) {
			code = ae.Code
		}
		e.log.Warn("analysis failed", "file", f.Path, "error", err)
		o.finding = &Finding{FilePath: f.Path, Code: code, Message: err.Error()}
	}
	return o
}

// rootNodes lists nodes with no incoming edge, in node order, capped.
func rootNodes(nodes []model.Node, edges []model.Edge, limit int) []string {
	hasIncoming := make(map[string]bool)
	for _, e := range edges {
		hasIncoming[e.Target] = true
	}

	var roots []string
	for _, n := range nodes {
		if !hasIncoming[n.ID] {
			roots = append(roots, n.ID)
			if limit > 0 && len(roots) == limit {
				break
			}
		}
	}
	return roots
}
