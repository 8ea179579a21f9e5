package team

import (
	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
)

// Team is a group of employees led by one of them.
type Team struct {
	ID                 uuid.UUID
	TeamLeadEmployeeID uuid.UUID
	Name               string
	Description        string
	record.Audit
	Active bool
}

// Membership is an Employee_Team edge.
type Membership struct {
	EmployeeID uuid.UUID
	TeamID     uuid.UUID
	Active     bool
}

// Employee links a user account to the teams it belongs to.
type Employee struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Active bool
}
