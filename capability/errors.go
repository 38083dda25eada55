package capability

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by the dispatch, strategy and adapter packages.
var (
	// ErrCapabilityMismatch is returned when a value is bound to a capability
	// it does not implement. It is only ever produced at binding time.
	ErrCapabilityMismatch = errors.New("capability: value does not implement capability")

	// ErrFormatUnsupported is returned as a result value when an adaptee or
	// input kind is outside an adapter's domain.
	ErrFormatUnsupported = errors.New("capability: format unsupported")

	// ErrConstruction is returned when a strategy context is built without a
	// strategy or an adapter without an adaptee.
	ErrConstruction = errors.New("capability: construction error")
)

// MismatchError describes a failed binding. It unwraps to ErrCapabilityMismatch.
type MismatchError struct {
	Capability string
	Variant    string
	Missing    []string
}

func (e *MismatchError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("capability: %s does not implement %q", e.Variant, e.Capability)
	}
	return fmt.Sprintf("capability: %s does not implement %q (missing %s)",
		e.Variant, e.Capability, strings.Join(e.Missing, ", "))
}

func (e *MismatchError) Unwrap() error { return ErrCapabilityMismatch }
