// Package state models the two resource graphs the planner reconciles: the
// prior-state graph read from persisted state and the desired graph derived
// from configuration.
package state

import (
	"sort"

	"github.com/iac-reconciler/state-refactor/pkg/addrs"
)

// Resource is one object in a graph. Attributes are opaque to the planner;
// they ride along so the consumer of a plan can act on them.
type Resource struct {
	Address    addrs.Address
	Provider   string
	Attributes map[string]any
}

// Graph is a set of resources keyed by canonical address. A graph owns its
// resources exclusively; the same node is never shared between the prior
// and desired graphs.
type Graph struct {
	resources map[string]Resource
}

// NewGraph builds a graph from the given resources. A later resource with
// the same address replaces an earlier one.
func NewGraph(resources ...Resource) *Graph {
	g := &Graph{resources: make(map[string]Resource, len(resources))}
	for _, r := range resources {
		g.Add(r)
	}
	return g
}

func (g *Graph) Add(r Resource) {
	g.resources[r.Address.String()] = r
}

func (g *Graph) Get(addr addrs.Address) (Resource, bool) {
	r, ok := g.resources[addr.String()]
	return r, ok
}

func (g *Graph) Has(addr addrs.Address) bool {
	_, ok := g.resources[addr.String()]
	return ok
}

func (g *Graph) Len() int {
	return len(g.resources)
}

// Addresses returns every address in the graph in lexical order, so all
// iteration over a graph is deterministic.
func (g *Graph) Addresses() []addrs.Address {
	out := make([]addrs.Address, 0, len(g.resources))
	for _, r := range g.resources {
		out = append(out, r.Address)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// InstancesOf returns the addresses in the graph whose whole-resource
// address (instance key stripped) equals the given resource address, in
// lexical order.
func (g *Graph) InstancesOf(resource addrs.Address) []addrs.Address {
	want := resource.Resource().String()
	var out []addrs.Address
	for _, r := range g.resources {
		if r.Address.Resource().String() == want {
			out = append(out, r.Address)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
