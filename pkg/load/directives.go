package load

import (
	"sort"

	"github.com/iac-reconciler/state-refactor/pkg/addrs"
	"github.com/iac-reconciler/state-refactor/pkg/diag"
	"github.com/iac-reconciler/state-refactor/pkg/directive"
)

// DirectivesDocument is the wire form of a directive list. For_each maps
// arrive already evaluated to concrete key/value pairs.
type DirectivesDocument struct {
	Moved   []MovedDocument   `json:"moved,omitempty"`
	Import  []ImportDocument  `json:"import,omitempty"`
	Removed []RemovedDocument `json:"removed,omitempty"`
}

type MovedDocument struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ImportDocument struct {
	To      string            `json:"to"`
	ID      string            `json:"id,omitempty"`
	ForEach map[string]string `json:"for_each,omitempty"`
}

type RemovedDocument struct {
	From    string `json:"from"`
	Destroy bool   `json:"destroy"`
}

// Directives converts a directive document into core directives. Malformed
// addresses become ParseError diagnostics; any fatal diagnostic yields no
// directive list. For_each maps are ordered by key so the result is
// deterministic.
func Directives(doc DirectivesDocument) ([]directive.Directive, diag.Diagnostics) {
	var (
		diags diag.Diagnostics
		out   []directive.Directive
	)

	parse := func(text string) (addrs.Address, bool) {
		addr, err := addrs.Parse(text)
		if err != nil {
			diags = diags.Append(diag.Error(diag.ParseError, err.Error()))
			return addrs.Address{}, false
		}
		return addr, true
	}

	for _, md := range doc.Moved {
		from, okFrom := parse(md.From)
		to, okTo := parse(md.To)
		if okFrom && okTo {
			out = append(out, directive.Moved{From: from, To: to})
		}
	}
	for _, id := range doc.Import {
		to, ok := parse(id.To)
		if !ok {
			continue
		}
		imp := directive.Import{To: to, ID: id.ID}
		if len(id.ForEach) > 0 {
			keys := make([]string, 0, len(id.ForEach))
			for k := range id.ForEach {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				imp.ForEach = append(imp.ForEach, directive.ForEachEntry{Key: k, Value: id.ForEach[k]})
			}
		}
		out = append(out, imp)
	}
	for _, rd := range doc.Removed {
		from, ok := parse(rd.From)
		if ok {
			out = append(out, directive.Removed{From: from, Destroy: rd.Destroy})
		}
	}

	if diags.HasErrors() {
		diags.Sort()
		return nil, diags
	}
	return out, nil
}
