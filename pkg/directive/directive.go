// Package directive models the explicit refactor directives a user states
// about their resources: moved, import, and removed. Directives are the
// only way to express intent that the two graphs alone cannot, such as a
// rename or an adoption of an externally-created object.
package directive

import (
	"fmt"
	"sort"

	"github.com/iac-reconciler/state-refactor/pkg/addrs"
)

// Directive is the closed set of refactor directives. The unexported sigil
// keeps the set closed so switches over it stay exhaustive.
type Directive interface {
	directiveSigil()
	String() string
}

// Moved declares that the object tracked at From should be tracked at To
// from now on. Moves may chain: the target of one move can be the source
// of another.
type Moved struct {
	From addrs.Address
	To   addrs.Address
}

func (m Moved) directiveSigil() {}

func (m Moved) String() string {
	return fmt.Sprintf("moved %s -> %s", m.From, m.To)
}

// ForEachEntry is one concrete key/value pair of an already-evaluated
// for_each map. The key becomes the instance key of the expanded address;
// the value is the import identifier for that instance.
type ForEachEntry struct {
	Key   string
	Value string
}

// Import declares that an existing external object, identified by ID,
// should be bound to the desired address To. When ForEach is non-empty the
// directive is a template: it expands to one concrete import per entry,
// keyed by the entry key, and ID on the template is ignored in favor of the
// entry values.
type Import struct {
	To      addrs.Address
	ID      string
	ForEach []ForEachEntry
}

func (i Import) directiveSigil() {}

func (i Import) String() string {
	if len(i.ForEach) > 0 {
		return fmt.Sprintf("import %s for_each(%d)", i.To, len(i.ForEach))
	}
	return fmt.Sprintf("import %s id=%q", i.To, i.ID)
}

// expand resolves a for_each template into concrete imports, in lexical key
// order. An import without ForEach expands to itself.
func (i Import) expand() []Import {
	if len(i.ForEach) == 0 {
		return []Import{i}
	}
	entries := make([]ForEachEntry, len(i.ForEach))
	copy(entries, i.ForEach)
	sort.Slice(entries, func(a, b int) bool { return entries[a].Key < entries[b].Key })
	out := make([]Import, 0, len(entries))
	for _, e := range entries {
		out = append(out, Import{
			To: i.To.Instance(addrs.StringKey(e.Key)),
			ID: e.Value,
		})
	}
	return out
}

// Removed declares that the resource at From should stop being tracked.
// From addresses a whole resource, never a single instance; Destroy says
// whether the real object should also be destroyed or merely forgotten.
type Removed struct {
	From    addrs.Address
	Destroy bool
}

func (r Removed) directiveSigil() {}

func (r Removed) String() string {
	return fmt.Sprintf("removed %s destroy=%t", r.From, r.Destroy)
}
