package postgres

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/team"
)

type teamTableModel struct {
	TeamID             uuid.UUID      `db:"TeamId"`
	TeamLeadEmployeeID uuid.NullUUID  `db:"TeamLeadEmployeeId"`
	Name               string         `db:"Name"`
	Description        sql.NullString `db:"Description"`
	CreatedBy          string         `db:"CreatedBy"`
	CreatedDate        time.Time      `db:"CreatedDate"`
	ModifiedBy         sql.NullString `db:"ModifiedBy"`
	ModifiedDate       sql.NullTime   `db:"ModifiedDate"`
	Active             bool           `db:"Active"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:                 row.TeamID,
		TeamLeadEmployeeID: row.TeamLeadEmployeeID.UUID,
		Name:               row.Name,
		Description:        row.Description.String,
		Audit: record.Audit{
			CreatedBy:    row.CreatedBy,
			CreatedDate:  row.CreatedDate,
			ModifiedBy:   row.ModifiedBy.String,
			ModifiedDate: row.ModifiedDate.Time,
		},
		Active: row.Active,
	}
}

func teamInsertRow(item *team.Team) teamTableModel {
	return teamTableModel{
		TeamID:             item.ID,
		TeamLeadEmployeeID: nullUUID(item.TeamLeadEmployeeID),
		Name:               item.Name,
		Description:        nullString(item.Description),
		CreatedBy:          item.CreatedBy,
		CreatedDate:        item.CreatedDate,
		ModifiedBy:         nullString(item.ModifiedBy),
		ModifiedDate:       nullTime(item.ModifiedDate),
		Active:             true,
	}
}
