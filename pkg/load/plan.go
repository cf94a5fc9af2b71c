package load

import (
	"fmt"

	"github.com/iac-reconciler/state-refactor/pkg/plan"
)

// PlanDocument is the wire form of a computed plan, for consumers that want
// machine-readable output.
type PlanDocument struct {
	ID      string       `json:"id"`
	Ops     []OpDocument `json:"ops"`
	Summary plan.Summary `json:"summary"`
}

// OpDocument is one mutation in a plan document. Fields are populated per
// kind: move uses from/to, bind uses to/id, remove uses address/destroy,
// destroy and create use address.
type OpDocument struct {
	Kind    string `json:"kind"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Address string `json:"address,omitempty"`
	ID      string `json:"id,omitempty"`
	Destroy *bool  `json:"destroy,omitempty"`
}

// Plan renders a plan into its wire form, preserving op order.
func Plan(p *plan.Plan) PlanDocument {
	doc := PlanDocument{ID: p.ID, Summary: plan.Summarize(p)}
	for _, op := range p.Ops {
		switch o := op.(type) {
		case plan.MoveOp:
			doc.Ops = append(doc.Ops, OpDocument{Kind: "move", From: o.From.String(), To: o.To.String()})
		case plan.BindOp:
			doc.Ops = append(doc.Ops, OpDocument{Kind: "bind", To: o.To.String(), ID: o.ID})
		case plan.RemoveOp:
			destroy := o.Destroy
			doc.Ops = append(doc.Ops, OpDocument{Kind: "remove", Address: o.Addr.String(), Destroy: &destroy})
		case plan.DestroyOp:
			doc.Ops = append(doc.Ops, OpDocument{Kind: "destroy", Address: o.Addr.String()})
		case plan.CreateOp:
			doc.Ops = append(doc.Ops, OpDocument{Kind: "create", Address: o.Addr.String()})
		default:
			panic(fmt.Sprintf("unhandled op type %T", op))
		}
	}
	return doc
}
