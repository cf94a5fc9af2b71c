package addrs

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Parse interprets the given text as a resource instance address and returns
// its canonical representation. The grammar is a dotted HCL traversal:
// zero or more module steps (the keyword "module", a call name, and an
// optional index) followed by a resource type, a resource name, and an
// optional instance key.
func Parse(text string) (Address, error) {
	traversal, parseDiags := hclsyntax.ParseTraversalAbs([]byte(text), "", hcl.InitialPos)
	if parseDiags.HasErrors() {
		return Address{}, fmt.Errorf("invalid address %q: %s", text, parseDiags.Error())
	}
	return fromTraversal(text, traversal)
}

// MustParse is Parse for addresses known to be valid, such as literals in
// tests. It panics on error.
func MustParse(text string) Address {
	addr, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return addr
}

func fromTraversal(text string, traversal hcl.Traversal) (Address, error) {
	var addr Address
	i := 0

	// Leading module steps.
	for i < len(traversal) {
		name, ok := traverserName(traversal[i])
		if !ok {
			return Address{}, fmt.Errorf("invalid address %q: unexpected index", text)
		}
		if name != "module" {
			break
		}
		i++
		if i >= len(traversal) {
			return Address{}, fmt.Errorf("invalid address %q: keyword \"module\" must be followed by a call name", text)
		}
		callName, ok := traverserName(traversal[i])
		if !ok {
			return Address{}, fmt.Errorf("invalid address %q: keyword \"module\" must be followed by a call name", text)
		}
		i++
		step := ModuleStep{Name: callName}
		if i < len(traversal) {
			if idx, ok := traversal[i].(hcl.TraverseIndex); ok {
				key, err := keyFromCty(idx.Key)
				if err != nil {
					return Address{}, fmt.Errorf("invalid address %q: %w", text, err)
				}
				step.Key = key
				i++
			}
		}
		addr.Module = append(addr.Module, step)
	}

	// Resource type and name.
	if i >= len(traversal) {
		return Address{}, fmt.Errorf("invalid address %q: expected a resource type", text)
	}
	typeName, ok := traverserName(traversal[i])
	if !ok {
		return Address{}, fmt.Errorf("invalid address %q: expected a resource type", text)
	}
	addr.Type = typeName
	i++
	if i >= len(traversal) {
		return Address{}, fmt.Errorf("invalid address %q: resource type must be followed by a resource name", text)
	}
	resName, ok := traverserName(traversal[i])
	if !ok {
		return Address{}, fmt.Errorf("invalid address %q: resource type must be followed by a resource name", text)
	}
	addr.Name = resName
	i++

	// Optional instance key.
	if i < len(traversal) {
		idx, ok := traversal[i].(hcl.TraverseIndex)
		if !ok {
			return Address{}, fmt.Errorf("invalid address %q: unexpected extra components", text)
		}
		key, err := keyFromCty(idx.Key)
		if err != nil {
			return Address{}, fmt.Errorf("invalid address %q: %w", text, err)
		}
		addr.Key = key
		i++
	}

	if i != len(traversal) {
		return Address{}, fmt.Errorf("invalid address %q: unexpected extra components", text)
	}
	return addr, nil
}

func traverserName(t hcl.Traverser) (string, bool) {
	switch tt := t.(type) {
	case hcl.TraverseRoot:
		return tt.Name, true
	case hcl.TraverseAttr:
		return tt.Name, true
	default:
		return "", false
	}
}
