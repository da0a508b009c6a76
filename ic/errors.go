package ic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarchlab/redstone/world"
)

var (
	// ErrSignMissing is returned when the sign disappears between the moment
	// work is scheduled and the moment it runs.
	ErrSignMissing = errors.New("sign missing")

	// ErrNotWallSign is returned when an IC is placed on anything other than
	// a wall sign.
	ErrNotWallSign = errors.New("only wall signs are used for ICs")

	// ErrDuplicateRegistration is returned when an ID, family suffix or alias
	// is registered twice.
	ErrDuplicateRegistration = errors.New("duplicate registration")

	// ErrMigrationUnstable is returned when rewriting a legacy ID does not
	// reach a canonical ID.
	ErrMigrationUnstable = errors.New("legacy id migration did not settle")
)

// UnknownIdentifierError reports a sign that looks like an IC but names no
// registered IC.
type UnknownIdentifierError struct {
	ID string
}

func (e *UnknownIdentifierError) Error() string {
	return "Unknown IC detected: " + e.ID
}

// PermissionDeniedError reports an actor that may not create an IC.
type PermissionDeniedError struct {
	Actor string
	ID    string
}

func (e *PermissionDeniedError) Error() string {
	return "You don't have permission to use " + strings.ToLower(e.ID) + "."
}

// VerificationError reports a sign that a factory refused.
type VerificationError struct {
	ID  string
	Err error
}

func (e *VerificationError) Error() string {
	return e.Err.Error()
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// Verificationf creates a VerificationError with a formatted message.
func Verificationf(id string, format string, args ...interface{}) error {
	return &VerificationError{ID: id, Err: fmt.Errorf(format, args...)}
}

// UnexpectedInstanceError wraps a failure raised by an IC while it was
// handling an event.
type UnexpectedInstanceError struct {
	Location world.Location
	ID       string
	Op       string
	Err      error
}

func (e *UnexpectedInstanceError) Error() string {
	return fmt.Sprintf("%s at %s failed in %s: %v", e.ID, e.Location, e.Op, e.Err)
}

func (e *UnexpectedInstanceError) Unwrap() error {
	return e.Err
}
