package directive

import (
	"fmt"
	"sort"

	"github.com/iac-reconciler/state-refactor/pkg/addrs"
	"github.com/iac-reconciler/state-refactor/pkg/diag"
)

// ValidatedSet is a directive set that passed validation. Imports are fully
// expanded; all slices are in lexical address order. The set is immutable
// once built.
type ValidatedSet struct {
	moves    []Moved
	imports  []Import
	removals []Removed

	moveFrom map[string]Moved
}

// Moves returns the moved directives, ordered by source address.
func (vs *ValidatedSet) Moves() []Moved {
	out := make([]Moved, len(vs.moves))
	copy(out, vs.moves)
	return out
}

// Imports returns the concrete import directives, ordered by destination.
func (vs *ValidatedSet) Imports() []Import {
	out := make([]Import, len(vs.imports))
	copy(out, vs.imports)
	return out
}

// Removals returns the removed directives, ordered by source address.
func (vs *ValidatedSet) Removals() []Removed {
	out := make([]Removed, len(vs.removals))
	copy(out, vs.removals)
	return out
}

// MoveFrom returns the moved directive whose source is the given address,
// if any.
func (vs *ValidatedSet) MoveFrom(from addrs.Address) (Moved, bool) {
	m, ok := vs.moveFrom[from.String()]
	return m, ok
}

// Validate checks a directive list against the structural rules and returns
// either an immutable validated set or the full list of problems found.
// Validation never partially succeeds: any fatal diagnostic means no set.
//
// The rules:
//   - no two directives may claim the same destination address
//   - no resource may be moved from the same address twice
//   - moved directives must not chain into a cycle (self-moves included)
//   - removed directives must not carry an instance key
func Validate(directives []Directive) (*ValidatedSet, diag.Diagnostics) {
	var diags diag.Diagnostics

	vs := &ValidatedSet{moveFrom: make(map[string]Moved)}
	destinations := make(map[string]Directive)

	claimDestination := func(to addrs.Address, d Directive) {
		key := to.String()
		if prev, ok := destinations[key]; ok {
			diags = diags.Append(diag.Error(diag.DuplicateDestination,
				fmt.Sprintf("two directives claim the same destination: %s and %s", prev, d),
				to))
			return
		}
		destinations[key] = d
	}

	for _, d := range directives {
		switch dd := d.(type) {
		case Moved:
			if prev, ok := vs.moveFrom[dd.From.String()]; ok {
				diags = diags.Append(diag.Error(diag.DuplicateDestination,
					fmt.Sprintf("resource moved to two destinations: %s and %s", prev, dd),
					dd.From))
				continue
			}
			vs.moveFrom[dd.From.String()] = dd
			vs.moves = append(vs.moves, dd)
			claimDestination(dd.To, dd)
		case Import:
			for _, imp := range dd.expand() {
				vs.imports = append(vs.imports, imp)
				claimDestination(imp.To, imp)
			}
		case Removed:
			if dd.From.HasKey() {
				diags = diags.Append(diag.Error(diag.IndexedRemovalForbidden,
					"removed directives address whole resources; an instance key is not allowed",
					dd.From))
				continue
			}
			vs.removals = append(vs.removals, dd)
		default:
			panic(fmt.Sprintf("unhandled directive type %T", d))
		}
	}

	diags = diags.Extend(findMovedCycles(vs.moves))

	if diags.HasErrors() {
		diags.Sort()
		return nil, diags
	}

	sort.Slice(vs.moves, func(i, j int) bool { return vs.moves[i].From.Less(vs.moves[j].From) })
	sort.Slice(vs.imports, func(i, j int) bool { return vs.imports[i].To.Less(vs.imports[j].To) })
	sort.Slice(vs.removals, func(i, j int) bool { return vs.removals[i].From.Less(vs.removals[j].From) })
	return vs, nil
}

// findMovedCycles walks every move chain to its end, reporting each cycle
// once. Every source has at most one outgoing move here, so each walk
// either terminates or closes a loop.
func findMovedCycles(moves []Moved) diag.Diagnostics {
	var diags diag.Diagnostics

	next := make(map[string]Moved, len(moves))
	for _, m := range moves {
		next[m.From.String()] = m
	}

	starts := make([]string, 0, len(moves))
	for _, m := range moves {
		starts = append(starts, m.From.String())
	}
	sort.Strings(starts)

	const (
		unvisited = 0
		inWalk    = 1
		done      = 2
	)
	status := make(map[string]int, len(moves))

	for _, start := range starts {
		if status[start] != unvisited {
			continue
		}
		var path []Moved
		onPath := make(map[string]int)
		cur := start
		for {
			m, ok := next[cur]
			if !ok || status[cur] == done {
				break
			}
			if at, looped := onPath[cur]; looped {
				cycle := path[at:]
				cycleAddrs := make([]addrs.Address, 0, len(cycle))
				for _, cm := range cycle {
					cycleAddrs = append(cycleAddrs, cm.From)
				}
				diags = diags.Append(diag.Error(diag.MovedCycle,
					fmt.Sprintf("moved directives form a cycle of length %d", len(cycle)),
					cycleAddrs...))
				break
			}
			onPath[cur] = len(path)
			path = append(path, m)
			status[cur] = inWalk
			cur = m.To.String()
		}
		for visited := range onPath {
			status[visited] = done
		}
	}
	return diags
}
