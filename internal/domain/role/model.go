package role

import (
	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
)

// Role is a named permission group users are attached to through User_Role.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
	record.Audit
	Active bool
}

// Assignment is a User_Role edge.
type Assignment struct {
	UserID uuid.UUID
	RoleID uuid.UUID
	Active bool
}
