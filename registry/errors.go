package registry

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/Code rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindAuth covers failed capability checks.
	KindAuth Kind = "Auth"
	// KindInput covers malformed caller input.
	KindInput Kind = "Input"
	// KindState covers calls rejected by the registry's current state.
	KindState Kind = "State"
)

// Code is a stable identifier naming the violated rule.
type Code string

const (
	// CodeOnlyCreator: caller is not the effective creator or one of its proxies.
	CodeOnlyCreator Code = "REG-AUTH-001"
	// CodeOnlyFullOwner: caller does not hold the entire outstanding supply.
	CodeOnlyFullOwner Code = "REG-AUTH-002"
	// CodeOnlyAdmin: caller is not the registry administrator or a registry-level proxy.
	CodeOnlyAdmin Code = "REG-AUTH-003"

	// CodeZeroQuantity: a mint was requested with amount zero.
	CodeZeroQuantity Code = "REG-IN-001"
	// CodeZeroAddress: the null account was supplied where a real account is required.
	CodeZeroAddress Code = "REG-IN-002"
	// CodeInvalidAddress: an account argument is not acceptable (e.g. null reassignment target).
	CodeInvalidAddress Code = "REG-IN-003"
	// CodeLengthMismatch: parallel batch slices differ in length.
	CodeLengthMismatch Code = "REG-IN-004"

	// CodeMigrateDisabled: migration was invoked after the target was cleared.
	CodeMigrateDisabled Code = "REG-ST-001"
	// CodeReentrancy: a guarded surface was re-entered from callback code.
	CodeReentrancy Code = "REG-ST-002"
	// CodeSupplyExceeded: a migration plan would push issued supply past the cap.
	CodeSupplyExceeded Code = "REG-ST-003"
	// CodePredecessorUnavailable: a predecessor read failed while planning a migration.
	CodePredecessorUnavailable Code = "REG-ST-004"
)

// Error is the registry's structured error type.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, code Code, msg string) error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func wrapError(kind Kind, code Code, msg string, cause error) error {
	if cause == nil {
		return newError(kind, code, msg)
	}
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// IsCode reports whether err is (or wraps) a *Error with the given Code.
func IsCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// CodeOf returns the stable Code for a structured error, or "" if unknown.
func CodeOf(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}
