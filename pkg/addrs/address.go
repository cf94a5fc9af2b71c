package addrs

import (
	"strings"
)

// ModuleStep is one call in a module path: the call name plus the instance
// key of the called module, if the call uses count or for_each.
type ModuleStep struct {
	Name string
	Key  InstanceKey
}

func (s ModuleStep) String() string {
	return "module." + s.Name + KeyString(s.Key)
}

// ModulePath is the sequence of module calls leading from the root module to
// the module containing a resource. An empty path is the root module.
type ModulePath []ModuleStep

// IsRoot reports whether the path addresses the root module.
func (p ModulePath) IsRoot() bool {
	return len(p) == 0
}

func (p ModulePath) String() string {
	var buf strings.Builder
	for i, step := range p {
		if i > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(step.String())
	}
	return buf.String()
}

// Equal reports whether two module paths are step-for-step identical,
// instance keys included.
func (p ModulePath) Equal(other ModulePath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i].Name != other[i].Name || p[i].Key != other[i].Key {
			return false
		}
	}
	return true
}

// Address is the canonical address of one resource instance, in the form
// module.a["x"].module.b.aws_instance.web[0]. It is constructed once, by
// Parse or by the directive loader, and never mutated afterwards.
type Address struct {
	Module ModulePath
	Type   string
	Name   string
	Key    InstanceKey
}

// String renders the canonical text form of the address. Parse(a.String())
// returns an address equal to a.
func (a Address) String() string {
	var buf strings.Builder
	if !a.Module.IsRoot() {
		buf.WriteString(a.Module.String())
		buf.WriteByte('.')
	}
	buf.WriteString(a.Type)
	buf.WriteByte('.')
	buf.WriteString(a.Name)
	buf.WriteString(KeyString(a.Key))
	return buf.String()
}

// Equal reports exact equality of all fields. An address with NoKey is not
// equal to the same address with IntKey(0).
func (a Address) Equal(other Address) bool {
	return a.Module.Equal(other.Module) &&
		a.Type == other.Type &&
		a.Name == other.Name &&
		a.Key == other.Key
}

// Less orders addresses by their canonical text, giving every consumer the
// same deterministic ordering.
func (a Address) Less(other Address) bool {
	return a.String() < other.String()
}

// Resource returns the address with its instance key stripped, i.e. the
// whole-resource address that an instance belongs to.
func (a Address) Resource() Address {
	a.Key = NoKey
	return a
}

// Instance returns the address of the instance of the receiver identified
// by the given key.
func (a Address) Instance(key InstanceKey) Address {
	a.Key = key
	return a
}

// HasKey reports whether the address carries an explicit instance key.
func (a Address) HasKey() bool {
	return a.Key != NoKey
}
