// Package diag carries structured diagnostics through validation and
// matching, where a plain error would lose warnings and force the caller to
// stop at the first problem.
package diag

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iac-reconciler/state-refactor/pkg/addrs"
)

// Code identifies the class of problem a diagnostic reports, independent of
// any source location.
type Code string

const (
	ParseError              Code = "ParseError"
	DuplicateDestination    Code = "DuplicateDestination"
	MovedCycle              Code = "MovedCycle"
	IndexedRemovalForbidden Code = "IndexedRemovalForbidden"
	DanglingMove            Code = "DanglingMove"
)

// Severity distinguishes fatal problems from tolerated ones.
type Severity rune

const (
	SeverityError   Severity = 'E'
	SeverityWarning Severity = 'W'
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is one problem found while validating or matching. Addresses
// lists the addresses involved, in the order they matter to the message
// (e.g. the steps of a moved cycle).
type Diagnostic struct {
	Code      Code
	Severity  Severity
	Addresses []addrs.Address
	Message   string
}

func (d Diagnostic) String() string {
	var buf strings.Builder
	buf.WriteString(string(d.Code))
	buf.WriteString(": ")
	buf.WriteString(d.Message)
	if len(d.Addresses) > 0 {
		parts := make([]string, len(d.Addresses))
		for i, a := range d.Addresses {
			parts[i] = a.String()
		}
		buf.WriteString(" (")
		buf.WriteString(strings.Join(parts, ", "))
		buf.WriteString(")")
	}
	return buf.String()
}

// Error constructs an error-severity diagnostic.
func Error(code Code, message string, addresses ...addrs.Address) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityError, Addresses: addresses, Message: message}
}

// Warning constructs a warning-severity diagnostic.
func Warning(code Code, message string, addresses ...addrs.Address) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityWarning, Addresses: addresses, Message: message}
}

// Diagnostics is a list of diagnostics. A nil Diagnostics is a valid empty
// list, so callers can declare one and build on it only when problems occur.
type Diagnostics []Diagnostic

// Append extends the list. It returns the extended list so it composes the
// same way the builtin append does.
func (diags Diagnostics) Append(more ...Diagnostic) Diagnostics {
	return append(diags, more...)
}

// Extend concatenates another diagnostics list onto the receiver.
func (diags Diagnostics) Extend(other Diagnostics) Diagnostics {
	return append(diags, other...)
}

// HasErrors reports whether any diagnostic in the list is fatal.
func (diags Diagnostics) HasErrors() bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns only the warning-severity diagnostics.
func (diags Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, d := range diags {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Err flattens the list into a single error, or nil if the list carries no
// error-severity diagnostics. Warnings are dropped, so only use this at
// boundaries that speak plain errors.
func (diags Diagnostics) Err() error {
	if !diags.HasErrors() {
		return nil
	}
	msgs := make([]string, 0, len(diags))
	for _, d := range diags {
		if d.Severity == SeverityError {
			msgs = append(msgs, d.String())
		}
	}
	if len(msgs) == 1 {
		return errors.New(msgs[0])
	}
	return fmt.Errorf("%d problems:\n- %s", len(msgs), strings.Join(msgs, "\n- "))
}

// Sort orders the list by code, then by first address, then by message, so
// repeated runs over the same input report in the same order.
func (diags Diagnostics) Sort() {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		aAddr, bAddr := "", ""
		if len(a.Addresses) > 0 {
			aAddr = a.Addresses[0].String()
		}
		if len(b.Addresses) > 0 {
			bAddr = b.Addresses[0].String()
		}
		if aAddr != bAddr {
			return aAddr < bAddr
		}
		return a.Message < b.Message
	})
}
