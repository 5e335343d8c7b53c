package stockfolio

import (
	"errors"
	"fmt"
)

// Sentinel errors for business-rule failures. They are expected runtime
// outcomes, not programming errors, and callers can branch on them with
// errors.Is.
var (
	// ErrInsufficientFunds reports a buy whose cost exceeds the available cash.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientAssets reports a sell larger than the held quantity.
	ErrInsufficientAssets = errors.New("insufficient assets")
	// ErrUnknownAsset reports an operation on a symbol with no holding.
	ErrUnknownAsset = errors.New("unknown asset")
)

// ValidationError reports a malformed argument, rejected at the boundary of
// the call that introduced it, before any state mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// errValidationf builds a ValidationError with a formatted message.
func errValidationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DataIntegrityError reports a structural or semantic inconsistency found
// while reconstructing persisted state. Line is the 1-based line number in
// the source, or 0 when the failure is not tied to a single line.
type DataIntegrityError struct {
	Line    int
	Message string
}

func (e *DataIntegrityError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("data integrity error on line %d: %s", e.Line, e.Message)
	}
	return "data integrity error: " + e.Message
}

// errIntegrityf builds a DataIntegrityError with a formatted message.
func errIntegrityf(line int, format string, args ...any) *DataIntegrityError {
	return &DataIntegrityError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// IsDataIntegrity reports whether err is a data-integrity failure.
func IsDataIntegrity(err error) bool {
	var de *DataIntegrityError
	return errors.As(err, &de)
}
