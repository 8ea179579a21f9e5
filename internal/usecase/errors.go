package usecase

import (
	"errors"
	"fmt"

	crerrors "github.com/cockroachdb/errors"
	"github.com/riskibarqy/org-directory/internal/domain/record"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource already exists")
	ErrCancelled             = errors.New("request cancelled")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// repositoryError translates the repository taxonomy into usecase sentinels.
// The repository error stays in the chain.
func repositoryError(action string, err error) error {
	switch {
	case crerrors.Is(err, record.ErrCancelled):
		return fmt.Errorf("%w: %s: %w", ErrCancelled, action, err)
	case crerrors.Is(err, record.ErrInvalidArgument):
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, action, err)
	case crerrors.Is(err, record.ErrNotUnique), crerrors.Is(err, record.ErrDuplicateID):
		return fmt.Errorf("%w: %s: %w", ErrConflict, action, err)
	case crerrors.Is(err, record.ErrInfrastructure):
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, action, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
