package team

import (
	"context"

	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
)

// Repository describes team persistence needs from use cases.
type Repository interface {
	Add(ctx context.Context, item *Team) (*Team, error)
	Update(ctx context.Context, item *Team) (*Team, record.UpdateResult, error)
	GetByID(ctx context.Context, teamID uuid.UUID) (Team, bool, error)
	GetByName(ctx context.Context, name string) (Team, bool, error)
	// GetByUserID walks Employee -> Employee_Team -> Team, active hops only.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Team, error)
	Deactivate(ctx context.Context, teamID uuid.UUID, modifiedBy string) (record.UpdateResult, error)
	AddEmployee(ctx context.Context, teamID, employeeID uuid.UUID) error
	RemoveEmployee(ctx context.Context, teamID, employeeID uuid.UUID) (record.UpdateResult, error)
	// UpsertEmployees writes Employee rows by id. An inactive row cuts the
	// user off from every team reached through it.
	UpsertEmployees(ctx context.Context, employees []Employee) error
}
