package builder

import (
	"fmt"
)

// ResolutionError means the cursor context, the call target, its return type
// or the fields of the type could not be determined.
// Callers show it as "action unavailable".
type ResolutionError struct {
	TypeRef string
	Reason  string
	Err     error
}

func (e *ResolutionError) Error() string {
	msg := "resolve"
	if e.TypeRef != "" {
		msg += " " + e.TypeRef
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func resolutionErrorf(typeRef string, err error, format string, args ...any) *ResolutionError {
	return &ResolutionError{
		TypeRef: typeRef,
		Reason:  fmt.Sprintf(format, args...),
		Err:     err,
	}
}
