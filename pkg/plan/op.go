// Package plan computes the correspondence between a prior-state graph and
// a desired graph under a validated directive set, and turns that
// correspondence into an ordered mutation plan.
package plan

import (
	"fmt"

	"github.com/iac-reconciler/state-refactor/pkg/addrs"
)

// Op is the closed set of state mutations a plan can contain. The
// unexported sigil keeps switches over ops exhaustive.
type Op interface {
	opSigil()
	String() string
}

// MoveOp re-addresses a tracked object from one address to another without
// touching the real object.
type MoveOp struct {
	From addrs.Address
	To   addrs.Address
}

func (o MoveOp) opSigil() {}

func (o MoveOp) String() string {
	return fmt.Sprintf("move %s -> %s", o.From, o.To)
}

// BindOp binds an existing external object, identified by ID, to a desired
// address. The object's attributes are fetched by the apply collaborator.
type BindOp struct {
	To addrs.Address
	ID string
}

func (o BindOp) opSigil() {}

func (o BindOp) String() string {
	return fmt.Sprintf("bind %s id=%q", o.To, o.ID)
}

// RemoveOp drops an address from tracked state. When Destroy is false the
// real object is left in place; it merely stops being managed.
type RemoveOp struct {
	Addr    addrs.Address
	Destroy bool
}

func (o RemoveOp) opSigil() {}

func (o RemoveOp) String() string {
	return fmt.Sprintf("remove %s destroy=%t", o.Addr, o.Destroy)
}

// DestroyOp destroys the real object at an address and drops it from state.
type DestroyOp struct {
	Addr addrs.Address
}

func (o DestroyOp) opSigil() {}

func (o DestroyOp) String() string {
	return fmt.Sprintf("destroy %s", o.Addr)
}

// CreateOp creates the object for a desired address that nothing in prior
// state corresponds to.
type CreateOp struct {
	Addr addrs.Address
}

func (o CreateOp) opSigil() {}

func (o CreateOp) String() string {
	return fmt.Sprintf("create %s", o.Addr)
}
