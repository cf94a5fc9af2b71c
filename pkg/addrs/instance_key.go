package addrs

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// InstanceKey identifies one instance of a resource or module that has
// multiple instances due to count or for_each expansion.
//
// NoKey (nil) represents the single instance of a resource that has no
// expansion at all. NoKey is deliberately distinct from IntKey(0): a
// resource without count and instance zero of the same resource with
// count are different addresses.
type InstanceKey interface {
	instanceKeySigil()

	// String renders the key in address syntax, brackets included,
	// e.g. [0] or ["example"]. NoKey renders as the empty string via
	// KeyString.
	String() string
}

// NoKey is the absence of an instance key.
var NoKey InstanceKey

// IntKey is an instance key produced by count expansion.
type IntKey int

func (k IntKey) instanceKeySigil() {}

func (k IntKey) String() string {
	return fmt.Sprintf("[%d]", int(k))
}

// StringKey is an instance key produced by for_each expansion.
type StringKey string

func (k StringKey) instanceKeySigil() {}

func (k StringKey) String() string {
	return fmt.Sprintf("[%q]", string(k))
}

// KeyString renders a possibly-nil key, with NoKey as the empty string.
func KeyString(k InstanceKey) string {
	if k == nil {
		return ""
	}
	return k.String()
}

// keyFromCty converts an index value from a parsed HCL traversal into an
// InstanceKey. HCL only produces string or number index keys for address
// traversals; anything else is a parse error.
func keyFromCty(v cty.Value) (InstanceKey, error) {
	switch v.Type() {
	case cty.String:
		return StringKey(v.AsString()), nil
	case cty.Number:
		f := v.AsBigFloat()
		i, acc := f.Int64()
		if acc != big.Exact {
			return NoKey, fmt.Errorf("instance key must be an integer, got %s", f.String())
		}
		return IntKey(i), nil
	default:
		return NoKey, fmt.Errorf("instance key must be an integer or a string, got %s", v.Type().FriendlyName())
	}
}
