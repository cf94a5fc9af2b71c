package plan

import (
	"sort"

	"github.com/google/uuid"

	"github.com/iac-reconciler/state-refactor/pkg/addrs"
)

// Plan is the ordered mutation sequence that reconciles the prior-state
// graph with the desired graph. Applied in order, the ops transform prior
// state into exactly the desired graph's bound set; removals with
// destroy=false additionally drop objects from tracking without touching
// the real world.
type Plan struct {
	ID  string
	Ops []Op
}

// Build turns a correspondence into a plan. Ops are emitted class by class:
// removals first (state hygiene before anything else), then moves, then
// bindings, then destroys, then creates. Moves come before anything that
// could occupy a vacated address. Within a class, ops are ordered by
// lexical address, so identical inputs always produce an identical op
// sequence. Identity pairs need no mutation and emit nothing.
//
// The plan ID is identity metadata for the consuming collaborator; it is
// the only non-deterministic field.
func Build(corr *Correspondence) *Plan {
	p := &Plan{ID: uuid.NewString()}

	removals := append([]Removal(nil), corr.Removals...)
	sort.Slice(removals, func(i, j int) bool { return removals[i].Addr.Less(removals[j].Addr) })
	for _, rm := range removals {
		p.Ops = append(p.Ops, RemoveOp{Addr: rm.Addr, Destroy: rm.Destroy})
	}

	pairs := append([]Pair(nil), corr.Pairs...)
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Prior.Less(pairs[j].Prior) })
	for _, pair := range pairs {
		if pair.Prior.Equal(pair.Desired) {
			continue
		}
		p.Ops = append(p.Ops, MoveOp{From: pair.Prior, To: pair.Desired})
	}

	bindings := append([]Binding(nil), corr.Bindings...)
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].To.Less(bindings[j].To) })
	for _, b := range bindings {
		p.Ops = append(p.Ops, BindOp{To: b.To, ID: b.ID})
	}

	destroys := append([]addrs.Address(nil), corr.Destroys...)
	sort.Slice(destroys, func(i, j int) bool { return destroys[i].Less(destroys[j]) })
	for _, a := range destroys {
		p.Ops = append(p.Ops, DestroyOp{Addr: a})
	}

	creates := append([]addrs.Address(nil), corr.Creates...)
	sort.Slice(creates, func(i, j int) bool { return creates[i].Less(creates[j]) })
	for _, a := range creates {
		p.Ops = append(p.Ops, CreateOp{Addr: a})
	}

	return p
}
