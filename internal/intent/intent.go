// Package intent loads the externally produced query intent and relationship
// hints from a sidecar file. The core never parses natural language; it only
// consumes this structured form, read-only.
package intent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"codeatlas/internal/errors"
	"codeatlas/internal/model"
)

// Document is the sidecar file contents: one intent plus optional
// relationship hints referencing graph node ids.
type Document struct {
	Intent        model.QueryIntent
	Relationships []model.Relationship
}

// raw mirrors Document with per-format field tags so all three encodings use
// the same key names.
type raw struct {
	Intent struct {
		Keywords        []string `json:"keywords" toml:"keywords" yaml:"keywords"`
		FocusAreas      []string `json:"focusAreas" toml:"focus_areas" yaml:"focus_areas"`
		PreferredLayout string   `json:"preferredLayout" toml:"preferred_layout" yaml:"preferred_layout"`
		Depth           int      `json:"depth" toml:"depth" yaml:"depth"`
	} `json:"intent" toml:"intent" yaml:"intent"`
	Relationships []struct {
		Source      string `json:"source" toml:"source" yaml:"source"`
		Target      string `json:"target" toml:"target" yaml:"target"`
		Kind        string `json:"kind" toml:"kind" yaml:"kind"`
		Description string `json:"description" toml:"description" yaml:"description"`
		Importance  string `json:"importance" toml:"importance" yaml:"importance"`
	} `json:"relationships" toml:"relationships" yaml:"relationships"`
}

// Load reads a sidecar file, picking the decoder by extension (.toml, .yaml,
// .yml, .json).
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.FileUnreadable, "reading intent file "+path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes sidecar bytes in the format named by ext.
func Parse(data []byte, ext string) (*Document, error) {
	var r raw
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &r)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &r)
	case ".json":
		err = json.Unmarshal(data, &r)
	default:
		return nil, errors.New(errors.ConfigInvalid, "unsupported intent format "+ext, nil)
	}
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, "decoding intent file", err)
	}

	doc := &Document{
		Intent: model.QueryIntent{
			Keywords:   r.Intent.Keywords,
			FocusAreas: r.Intent.FocusAreas,
			Depth:      r.Intent.Depth,
		},
	}
	if r.Intent.PreferredLayout != "" {
		layout, err := parseLayout(r.Intent.PreferredLayout)
		if err != nil {
			return nil, err
		}
		doc.Intent.PreferredLayout = layout
	}
	for i, rel := range r.Relationships {
		if rel.Source == "" || rel.Target == "" || rel.Kind == "" {
			return nil, errors.New(errors.ConfigInvalid,
				fmt.Sprintf("relationship %d missing source, target, or kind", i), nil)
		}
		doc.Relationships = append(doc.Relationships, model.Relationship{
			Source:      rel.Source,
			Target:      rel.Target,
			Kind:        model.EdgeKind(rel.Kind),
			Description: rel.Description,
			Importance:  model.Importance(rel.Importance),
		})
	}
	return doc, nil
}

func parseLayout(s string) (model.LayoutKind, error) {
	switch model.LayoutKind(strings.ToLower(s)) {
	case model.LayoutHierarchical:
		return model.LayoutHierarchical, nil
	case model.LayoutForce:
		return model.LayoutForce, nil
	case model.LayoutRadial:
		return model.LayoutRadial, nil
	default:
		return "", errors.New(errors.ConfigInvalid, "unknown layout "+s, nil)
	}
}
