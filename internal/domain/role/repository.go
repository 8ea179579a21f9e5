package role

import (
	"context"

	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
)

// Repository describes role persistence needs from use cases.
type Repository interface {
	Add(ctx context.Context, item *Role) (*Role, error)
	Update(ctx context.Context, item *Role) (*Role, record.UpdateResult, error)
	GetByID(ctx context.Context, roleID uuid.UUID) (Role, bool, error)
	GetByName(ctx context.Context, name string) (Role, bool, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Role, error)
	Deactivate(ctx context.Context, roleID uuid.UUID, modifiedBy string) (record.UpdateResult, error)
	AssignUser(ctx context.Context, roleID, userID uuid.UUID) error
	RevokeUser(ctx context.Context, roleID, userID uuid.UUID) (record.UpdateResult, error)
}
