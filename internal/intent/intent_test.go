package intent

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"codeatlas/internal/errors"
	"codeatlas/internal/model"
)

const tomlDoc = `
[intent]
keywords = ["billing", "invoice"]
focus_areas = ["payments"]
preferred_layout = "radial"
depth = 2

[[relationships]]
source = "file:a.py"
target = "file:b.py"
kind = "data_flow"
description = "a feeds b"
importance = "high"
`

func TestParseTOML(t *testing.T) {
	doc, err := Parse([]byte(tomlDoc), ".toml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Intent.Keywords) != 2 || doc.Intent.Keywords[0] != "billing" {
		t.Errorf("keywords = %v", doc.Intent.Keywords)
	}
	if doc.Intent.PreferredLayout != model.LayoutRadial {
		t.Errorf("layout = %q", doc.Intent.PreferredLayout)
	}
	if doc.Intent.Depth != 2 {
		t.Errorf("depth = %d", doc.Intent.Depth)
	}
	if len(doc.Relationships) != 1 {
		t.Fatalf("relationships = %d", len(doc.Relationships))
	}
	rel := doc.Relationships[0]
	if rel.Kind != model.EdgeDataFlow || rel.Importance != model.ImportanceHigh {
		t.Errorf("relationship = %+v", rel)
	}
}

func TestParseYAML(t *testing.T) {
	yamlDoc := `
intent:
  keywords: [auth]
  preferred_layout: force
relationships:
  - source: "file:x.go"
    target: "file:y.go"
    kind: uses
`
	doc, err := Parse([]byte(yamlDoc), ".yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Intent.PreferredLayout != model.LayoutForce {
		t.Errorf("layout = %q", doc.Intent.PreferredLayout)
	}
	if len(doc.Relationships) != 1 || doc.Relationships[0].Kind != model.EdgeUses {
		t.Errorf("relationships = %+v", doc.Relationships)
	}
}

func TestParseJSON(t *testing.T) {
	jsonDoc := `{"intent":{"keywords":["k"],"focusAreas":["f"],"depth":1}}`
	doc, err := Parse([]byte(jsonDoc), ".json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Intent.FocusAreas) != 1 || doc.Intent.FocusAreas[0] != "f" {
		t.Errorf("focus areas = %v", doc.Intent.FocusAreas)
	}
}

func TestParseRejects(t *testing.T) {
	if _, err := Parse([]byte("{}"), ".ini"); !hasCode(err, errors.ConfigInvalid) {
		t.Errorf("unknown extension error = %v", err)
	}
	if _, err := Parse([]byte(`{"intent":{"preferredLayout":"spiral"}}`), ".json"); !hasCode(err, errors.ConfigInvalid) {
		t.Errorf("bad layout error = %v", err)
	}
	if _, err := Parse([]byte(`{"relationships":[{"source":"a"}]}`), ".json"); !hasCode(err, errors.ConfigInvalid) {
		t.Errorf("incomplete relationship error = %v", err)
	}
	if _, err := Parse([]byte("not: [valid"), ".yaml"); !hasCode(err, errors.ConfigInvalid) {
		t.Errorf("bad yaml error = %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intent.toml")
	if err := os.WriteFile(path, []byte(tomlDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Intent.Keywords) != 2 {
		t.Errorf("keywords = %v", doc.Intent.Keywords)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !hasCode(err, errors.FileUnreadable) {
		t.Errorf("missing file error = %v", err)
	}
}

func hasCode(err error, code errors.ErrorCode) bool {
	var ae *errors.AtlasError
	return stderrors.As(err, &ae) && ae.Code == code
}
