package plan

import "fmt"

// Summary holds op counts for a plan, by mutation kind.
type Summary struct {
	Moves    int `json:"moves"`
	Binds    int `json:"binds"`
	Removals int `json:"removals"`
	Destroys int `json:"destroys"`
	Creates  int `json:"creates"`
	Total    int `json:"total"`
}

// Summarize counts the ops in a plan by kind.
func Summarize(p *Plan) Summary {
	var s Summary
	for _, op := range p.Ops {
		switch op.(type) {
		case MoveOp:
			s.Moves++
		case BindOp:
			s.Binds++
		case RemoveOp:
			s.Removals++
		case DestroyOp:
			s.Destroys++
		case CreateOp:
			s.Creates++
		default:
			panic(fmt.Sprintf("unhandled op type %T", op))
		}
	}
	s.Total = len(p.Ops)
	return s
}
