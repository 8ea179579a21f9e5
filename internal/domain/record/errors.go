package record

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidArgument is returned before any I/O when an entity is absent
	// or carries a zero identifier.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCancelled marks operations aborted by the caller's context.
	ErrCancelled = errors.New("operation cancelled")
	// ErrInfrastructure marks database or connectivity failures. The driver
	// error stays in the chain.
	ErrInfrastructure = errors.New("infrastructure failure")
	// ErrDuplicateID additionally marks an Add whose identifier is already
	// stored, active or not. The error keeps its ErrInfrastructure mark.
	ErrDuplicateID = errors.New("identifier already stored")
	// ErrNotUnique is returned by name lookups that match more than one row.
	ErrNotUnique = errors.New("more than one active row matches")
)
