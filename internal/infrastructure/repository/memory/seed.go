package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/role"
	"github.com/riskibarqy/org-directory/internal/domain/team"
)

// Directory is the starting data of an in-process repository pair.
type Directory struct {
	Roles       []role.Role
	Assignments []role.Assignment
	Teams       []team.Team
	Employees   []team.Employee
	Memberships []team.Membership
}

var (
	RoleIDAdmin   = uuid.MustParse("7a0e9d3c-1b2f-4c5d-8e6f-000000000001")
	RoleIDAuditor = uuid.MustParse("7a0e9d3c-1b2f-4c5d-8e6f-000000000002")

	TeamIDPlatform = uuid.MustParse("7a0e9d3c-1b2f-4c5d-8e6f-000000000101")
	TeamIDFinance  = uuid.MustParse("7a0e9d3c-1b2f-4c5d-8e6f-000000000102")

	UserIDAlice = uuid.MustParse("7a0e9d3c-1b2f-4c5d-8e6f-000000000201")
	UserIDBob   = uuid.MustParse("7a0e9d3c-1b2f-4c5d-8e6f-000000000202")

	EmployeeIDAlice = uuid.MustParse("7a0e9d3c-1b2f-4c5d-8e6f-000000000301")
	EmployeeIDBob   = uuid.MustParse("7a0e9d3c-1b2f-4c5d-8e6f-000000000302")
)

func SeedDirectory() Directory {
	seededAt := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	audit := record.Audit{CreatedBy: "seed", CreatedDate: seededAt}

	return Directory{
		Roles: []role.Role{
			{ID: RoleIDAdmin, Name: "Administrator", Description: "Full directory access", Audit: audit, Active: true},
			{ID: RoleIDAuditor, Name: "Auditor", Description: "Read-only access", Audit: audit, Active: true},
		},
		Assignments: []role.Assignment{
			{UserID: UserIDAlice, RoleID: RoleIDAdmin, Active: true},
			{UserID: UserIDBob, RoleID: RoleIDAuditor, Active: true},
		},
		Teams: []team.Team{
			{ID: TeamIDPlatform, TeamLeadEmployeeID: EmployeeIDAlice, Name: "Platform", Description: "Infrastructure and tooling", Audit: audit, Active: true},
			{ID: TeamIDFinance, TeamLeadEmployeeID: EmployeeIDBob, Name: "Finance", Audit: audit, Active: true},
		},
		Employees: []team.Employee{
			{ID: EmployeeIDAlice, UserID: UserIDAlice, Active: true},
			{ID: EmployeeIDBob, UserID: UserIDBob, Active: true},
		},
		Memberships: []team.Membership{
			{EmployeeID: EmployeeIDAlice, TeamID: TeamIDPlatform, Active: true},
			{EmployeeID: EmployeeIDBob, TeamID: TeamIDFinance, Active: true},
			{EmployeeID: EmployeeIDBob, TeamID: TeamIDPlatform, Active: true},
		},
	}
}
