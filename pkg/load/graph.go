// Package load defines the JSON documents the front end feeds the planner
// with, and converts them into core types. Decoding stays in the CLI layer;
// this package owns the shapes and the conversion.
package load

import (
	"github.com/iac-reconciler/state-refactor/pkg/addrs"
	"github.com/iac-reconciler/state-refactor/pkg/diag"
	"github.com/iac-reconciler/state-refactor/pkg/state"
)

const (
	// ModeManaged marks resources under management; anything else (data
	// sources and the like) is skipped when building a graph.
	ModeManaged = "managed"
)

// GraphDocument is the wire form of a resource graph, used for both the
// prior-state graph and the desired graph. Expansion of count and for_each
// has already happened upstream: every entry addresses one concrete
// instance.
type GraphDocument struct {
	Version   int                `json:"version"`
	Lineage   string             `json:"lineage,omitempty"`
	Resources []ResourceDocument `json:"resources"`
}

// ResourceDocument is one resource instance in a graph document.
type ResourceDocument struct {
	Address    string         `json:"address"`
	Mode       string         `json:"mode,omitempty"`
	Provider   string         `json:"provider,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Graph converts a graph document into a state graph. Every malformed
// address becomes a ParseError diagnostic; a document with any fatal
// diagnostic yields no graph.
func Graph(doc GraphDocument) (*state.Graph, diag.Diagnostics) {
	var diags diag.Diagnostics
	g := state.NewGraph()
	for _, rd := range doc.Resources {
		if rd.Mode != "" && rd.Mode != ModeManaged {
			continue
		}
		addr, err := addrs.Parse(rd.Address)
		if err != nil {
			diags = diags.Append(diag.Error(diag.ParseError, err.Error()))
			continue
		}
		g.Add(state.Resource{
			Address:    addr,
			Provider:   rd.Provider,
			Attributes: rd.Attributes,
		})
	}
	if diags.HasErrors() {
		diags.Sort()
		return nil, diags
	}
	return g, nil
}
