package graph

import (
	"fmt"

	"codeatlas/internal/errors"
	"codeatlas/internal/model"
)

// Verify checks construction contracts that must hold by design: unique
// (source, kind, target) triples and parent ids that reference nodes in the
// same graph. A violation is a programming error, surfaced only when debug
// invariants are enabled.
func Verify(nodes []model.Node, edges []model.Edge) error {
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if ids[n.ID] {
			return errors.New(errors.GraphInvariant, "duplicate node id "+n.ID, nil)
		}
		ids[n.ID] = true
	}

	for _, n := range nodes {
		if n.ParentID != "" && !ids[n.ParentID] {
			return errors.New(errors.GraphInvariant,
				fmt.Sprintf("node %s has dangling parent %s", n.ID, n.ParentID), nil)
		}
	}

	triples := make(map[edgeKey]bool, len(edges))
	for _, e := range edges {
		key := edgeKey{e.Source, e.Kind, e.Target}
		if triples[key] {
			return errors.New(errors.GraphInvariant,
				fmt.Sprintf("duplicate edge %s -%s-> %s", e.Source, e.Kind, e.Target), nil)
		}
		triples[key] = true
	}
	return nil
}
