// Package export serializes a graph to deterministic JSON, optionally
// zstd-compressed. It is the reference consumer of the graph contract;
// diagram and HTML renderers live outside this module.
package export

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"

	"codeatlas/internal/errors"
	"codeatlas/internal/model"
)

// Options controls the output encoding.
type Options struct {
	// Indent pretty-prints the JSON.
	Indent bool
	// Compress wraps the output in a zstd stream.
	Compress bool
}

// RoundCoord normalizes a layout coordinate to 4 decimal places so exports
// of the same layout are byte-identical across platforms.
func RoundCoord(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// WriteGraph encodes the graph to w. Map keys are emitted sorted and layout
// coordinates rounded, so equal graphs produce equal bytes. The input graph
// is not modified.
func WriteGraph(w io.Writer, g *model.Graph, opts Options) error {
	out := w
	var enc *zstd.Encoder
	if opts.Compress {
		var err error
		enc, err = zstd.NewWriter(w)
		if err != nil {
			return errors.New(errors.InternalError, "creating zstd writer", err)
		}
		out = enc
	}

	encoder := json.NewEncoder(out)
	if opts.Indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(normalize(g)); err != nil {
		return errors.New(errors.InternalError, "encoding graph", err)
	}

	if enc != nil {
		if err := enc.Close(); err != nil {
			return errors.New(errors.InternalError, "flushing zstd stream", err)
		}
	}
	return nil
}

// WriteFile writes the graph to path, creating or truncating it.
func WriteFile(path string, g *model.Graph, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New(errors.FileUnreadable, "creating "+path, err)
	}
	if err := WriteGraph(f, g, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadGraph decodes a graph written by WriteGraph, detecting zstd framing.
func ReadGraph(r io.Reader, compressed bool) (*model.Graph, error) {
	in := r
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.New(errors.InternalError, "creating zstd reader", err)
		}
		defer dec.Close()
		in = dec
	}
	var g model.Graph
	if err := json.NewDecoder(in).Decode(&g); err != nil {
		return nil, errors.New(errors.InternalError, "decoding graph", err)
	}
	return &g, nil
}

// normalize copies the graph with rounded coordinates.
func normalize(g *model.Graph) *model.Graph {
	out := &model.Graph{
		Nodes:     make([]model.Node, len(g.Nodes)),
		Edges:     g.Edges,
		RootNodes: g.RootNodes,
		Clusters:  g.Clusters,
	}
	copy(out.Nodes, g.Nodes)
	for i := range out.Nodes {
		out.Nodes[i].X = roundPtr(out.Nodes[i].X)
		out.Nodes[i].Y = roundPtr(out.Nodes[i].Y)
	}
	return out
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := RoundCoord(*v)
	return &r
}
