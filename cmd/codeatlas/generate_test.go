package main

import (
	"bytes"
	"strings"
	"testing"

	"codeatlas/internal/export"
	"codeatlas/internal/model"
)

func TestExportOptionsFromFlags(t *testing.T) {
	origPretty, origCompress := generatePretty, generateCompress
	defer func() {
		generatePretty, generateCompress = origPretty, origCompress
	}()

	generatePretty, generateCompress = false, false
	if opts := exportOptions(); opts.Indent || opts.Compress {
		t.Errorf("default opts = %+v, want all off", opts)
	}

	generatePretty, generateCompress = true, true
	opts := exportOptions()
	if !opts.Indent || !opts.Compress {
		t.Errorf("opts = %+v, want indent and compress on", opts)
	}
}

func TestExportOptionsPrettyOutput(t *testing.T) {
	origPretty := generatePretty
	defer func() { generatePretty = origPretty }()
	generatePretty = true

	g := &model.Graph{
		Nodes:     []model.Node{{ID: "file:a.py", Label: "a.py", Kind: model.NodeFile}},
		Edges:     []model.Edge{},
		RootNodes: []string{"file:a.py"},
		Clusters:  map[string][]string{},
	}

	var buf bytes.Buffer
	if err := export.WriteGraph(&buf, g, exportOptions()); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("pretty output not indented: %q", buf.String())
	}
}
