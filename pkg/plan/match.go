package plan

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/iac-reconciler/state-refactor/pkg/addrs"
	"github.com/iac-reconciler/state-refactor/pkg/diag"
	"github.com/iac-reconciler/state-refactor/pkg/directive"
	"github.com/iac-reconciler/state-refactor/pkg/state"
)

// Pair matches one prior-state address to one desired address. Prior and
// Desired are equal for implicit identity matches.
type Pair struct {
	Prior   addrs.Address
	Desired addrs.Address
}

// Binding matches a desired address to an external object identifier, with
// no prior-state side.
type Binding struct {
	To addrs.Address
	ID string
}

// Removal marks a prior-state address to be dropped from state, with or
// without destroying the real object.
type Removal struct {
	Addr    addrs.Address
	Destroy bool
}

// Correspondence is the injective mapping between the two graphs: every
// prior address appears in at most one of Pairs, Removals, or Destroys, and
// every desired address in at most one of Pairs, Bindings, or Creates.
type Correspondence struct {
	Pairs    []Pair
	Bindings []Binding
	Removals []Removal
	Creates  []addrs.Address
	Destroys []addrs.Address
}

// Match computes the correspondence between the prior and desired graphs
// under the given directives. It applies removals first, then explicit
// moved chains, then imports, then implicit identity matches, and finally
// classifies the residue as creates and destroys.
//
// Explicit moved directives always win over implicit identity matches.
// A moved chain whose final target is absent from the desired graph is a
// DanglingMove warning, not an error: the dangling hops are skipped and the
// chain lands on its last target that does exist.
func Match(prior, desired *state.Graph, vs *directive.ValidatedSet) (*Correspondence, diag.Diagnostics) {
	var diags diag.Diagnostics
	corr := &Correspondence{}

	consumedPrior := make(map[string]bool)
	claimedDesired := make(map[string]bool)

	// Removals drop addresses from matching candidacy before anything else
	// considers them.
	for _, rm := range vs.Removals() {
		instances := prior.InstancesOf(rm.From)
		if len(instances) == 0 {
			log.Warnf("removed address %s has no instances in prior state; ignoring", rm.From)
			continue
		}
		for _, inst := range instances {
			if desired.Has(inst) {
				log.Warnf("removed address %s is still present in the desired graph; it will be re-created", inst)
			}
			corr.Removals = append(corr.Removals, Removal{Addr: inst, Destroy: rm.Destroy})
			consumedPrior[inst.String()] = true
		}
	}

	// Explicit moved chains.
	for _, a := range prior.Addresses() {
		if consumedPrior[a.String()] {
			continue
		}
		if _, ok := vs.MoveFrom(a); !ok {
			continue
		}
		path := chaseMoves(a, vs)
		target, dangling := landingTarget(path, desired, claimedDesired)
		if dangling {
			diags = diags.Append(diag.Warning(diag.DanglingMove,
				fmt.Sprintf("moved chain from %s ends at %s, which is not in the desired graph; the dangling hop is a no-op", a, path[len(path)-1]),
				a, path[len(path)-1]))
		}
		if target == nil {
			// No hop of the chain lands anywhere; the address falls
			// through to implicit matching or destroy.
			continue
		}
		corr.Pairs = append(corr.Pairs, Pair{Prior: a, Desired: *target})
		consumedPrior[a.String()] = true
		claimedDesired[target.String()] = true
	}

	// Moves whose source never existed are tolerated no-ops. Intermediate
	// hops of a chain are expected to be absent and stay quiet.
	moveTargets := make(map[string]bool)
	for _, m := range vs.Moves() {
		moveTargets[m.To.String()] = true
	}
	for _, m := range vs.Moves() {
		if !prior.Has(m.From) && !moveTargets[m.From.String()] {
			log.Warnf("moved source %s is not in prior state; ignoring", m.From)
		}
	}

	// Import bindings. The prior side is synthetic: only the external ID is
	// recorded, to be resolved by the apply collaborator.
	for _, imp := range vs.Imports() {
		switch {
		case prior.Has(imp.To):
			log.Warnf("import target %s is already tracked in prior state; ignoring", imp.To)
		case !desired.Has(imp.To):
			log.Warnf("import target %s is not in the desired graph; ignoring", imp.To)
		case claimedDesired[imp.To.String()]:
			log.Warnf("import target %s is already claimed by a move; ignoring", imp.To)
		default:
			corr.Bindings = append(corr.Bindings, Binding{To: imp.To, ID: imp.ID})
			claimedDesired[imp.To.String()] = true
		}
	}

	// Implicit identity matches, including the asymmetric count rule:
	// a bare address auto-matches its [0] instance when the bare form left
	// the desired graph, but [0] never auto-matches back to bare.
	for _, a := range prior.Addresses() {
		if consumedPrior[a.String()] {
			continue
		}
		if desired.Has(a) && !claimedDesired[a.String()] {
			corr.Pairs = append(corr.Pairs, Pair{Prior: a, Desired: a})
			consumedPrior[a.String()] = true
			claimedDesired[a.String()] = true
			continue
		}
		if !a.HasKey() {
			zero := a.Instance(addrs.IntKey(0))
			if desired.Has(zero) && !desired.Has(a) && !claimedDesired[zero.String()] {
				corr.Pairs = append(corr.Pairs, Pair{Prior: a, Desired: zero})
				consumedPrior[a.String()] = true
				claimedDesired[zero.String()] = true
			}
		}
	}

	// Residue.
	for _, a := range prior.Addresses() {
		if !consumedPrior[a.String()] {
			corr.Destroys = append(corr.Destroys, a)
		}
	}
	for _, a := range desired.Addresses() {
		if !claimedDesired[a.String()] {
			corr.Creates = append(corr.Creates, a)
		}
	}

	diags.Sort()
	if diags.HasErrors() {
		return nil, diags
	}
	return corr, diags
}

// chaseMoves follows moved directives from the given address to their fixed
// point. Validation has already rejected cycles, so the walk terminates.
// The returned path starts at the address itself and ends at the final
// move target.
func chaseMoves(from addrs.Address, vs *directive.ValidatedSet) []addrs.Address {
	path := []addrs.Address{from}
	cur := from
	for {
		m, ok := vs.MoveFrom(cur)
		if !ok {
			return path
		}
		cur = m.To
		path = append(path, cur)
	}
}

// landingTarget picks the address a moved chain lands on: the last hop of
// the path that exists in the desired graph and is not already claimed.
// dangling reports that the final hop had to be skipped.
func landingTarget(path []addrs.Address, desired *state.Graph, claimed map[string]bool) (target *addrs.Address, dangling bool) {
	last := path[len(path)-1]
	dangling = !desired.Has(last)
	for i := len(path) - 1; i > 0; i-- {
		hop := path[i]
		if desired.Has(hop) && !claimed[hop.String()] {
			return &hop, dangling
		}
	}
	return nil, dangling
}
