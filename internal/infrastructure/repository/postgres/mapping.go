package postgres

import qb "github.com/riskibarqy/org-directory/internal/platform/querybuilder"

// Mapping is the per-entity table metadata every repository hands to Base.
type Mapping struct {
	Table        string
	Alias        string
	IDColumn     string
	ActiveColumn string
	// Columns lists the selectable columns in scan order. It must include
	// IDColumn and ActiveColumn.
	Columns []string
}

func (m Mapping) tableName() string {
	return qb.Ident(m.Table)
}

// from renders `"Table" alias` for SELECTs.
func (m Mapping) from() string {
	return m.tableName() + " " + m.Alias
}

func (m Mapping) col(name string) string {
	return qb.Qualified(m.Alias, name)
}

func (m Mapping) selectColumns() []string {
	out := make([]string, 0, len(m.Columns))
	for _, c := range m.Columns {
		out = append(out, m.col(c))
	}
	return out
}

// edgeMapping describes a soft-deletable join table between two entities.
type edgeMapping struct {
	Table        string
	LeftColumn   string
	RightColumn  string
	ActiveColumn string
}

var (
	roleMapping = Mapping{
		Table:        "Role",
		Alias:        "r",
		IDColumn:     "RoleId",
		ActiveColumn: "Active",
		Columns: []string{
			"RoleId", "Name", "Description",
			"CreatedBy", "CreatedDate", "ModifiedBy", "ModifiedDate",
			"Active",
		},
	}

	teamMapping = Mapping{
		Table:        "Team",
		Alias:        "t",
		IDColumn:     "TeamId",
		ActiveColumn: "Active",
		Columns: []string{
			"TeamId", "TeamLeadEmployeeId", "Name", "Description",
			"CreatedBy", "CreatedDate", "ModifiedBy", "ModifiedDate",
			"Active",
		},
	}

	userRoleEdge = edgeMapping{
		Table:        "User_Role",
		LeftColumn:   "UserId",
		RightColumn:  "RoleId",
		ActiveColumn: "Active",
	}

	employeeTeamEdge = edgeMapping{
		Table:        "Employee_Team",
		LeftColumn:   "EmployeeId",
		RightColumn:  "TeamId",
		ActiveColumn: "Active",
	}
)
