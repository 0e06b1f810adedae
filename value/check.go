package value

import (
	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/errors"
)

// Check verifies that args match params in count and, position by position,
// in kind. sig is only used to label the error.
func Check(sig string, params []descriptor.Class, args []Value) error {
	if len(args) != len(params) {
		return errors.New(errors.PhaseInvoke, errors.KindArgumentMismatch).
			Signature(sig).
			Value(len(args)).
			Detail("want %d arguments, got %d", len(params), len(args)).
			Build()
	}
	for i, p := range params {
		if args[i].kind != p.Kind() {
			return errors.New(errors.PhaseInvoke, errors.KindArgumentMismatch).
				Signature(sig).
				Value(i).
				Detail("argument %d: want %s (%s), got %s", i, p.Kind(), p, args[i].kind).
				Build()
		}
	}
	return nil
}
