package mortier

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per error kind. Every *Error matches the sentinel of
// its kind through errors.Is.
var (
	// ErrNotFound is returned for unknown pattern identifiers.
	ErrNotFound = errors.New("mortier: not found")

	// ErrInvalidGeometry is returned for non-hyperbolic {p,q} pairs and
	// degenerate tiles or patterns.
	ErrInvalidGeometry = errors.New("mortier: invalid geometry")

	// ErrResourceLimit is returned when a request would exceed a configured ceiling.
	ErrResourceLimit = errors.New("mortier: resource limit exceeded")

	// ErrInvalidParameter is returned for out-of-range request parameters.
	ErrInvalidParameter = errors.New("mortier: invalid parameter")
)

// ErrorKind classifies an Error.
type ErrorKind uint8

const (
	KindNotFound ErrorKind = iota + 1
	KindInvalidGeometry
	KindResourceLimitExceeded
	KindInvalidParameter
)

var kindNames = [...]string{
	KindNotFound:              "NotFound",
	KindInvalidGeometry:       "InvalidGeometry",
	KindResourceLimitExceeded: "ResourceLimitExceeded",
	KindInvalidParameter:      "InvalidParameter",
}

// String returns the kind name.
func (k ErrorKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindInvalidGeometry:
		return ErrInvalidGeometry
	case KindResourceLimitExceeded:
		return ErrResourceLimit
	case KindInvalidParameter:
		return ErrInvalidParameter
	}
	return nil
}

// Error is the typed error returned by every generator, the writer and the engine.
type Error struct {
	Kind ErrorKind
	// Op names the failing operation, e.g. "hyperbolic" or "hatch".
	Op  string
	Msg string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return "mortier: " + e.Msg
	}
	return "mortier: " + e.Op + ": " + e.Msg
}

// Is reports whether target is the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Errorf builds an *Error with a formatted message.
func Errorf(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
