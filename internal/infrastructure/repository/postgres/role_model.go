package postgres

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/role"
)

type roleTableModel struct {
	RoleID       uuid.UUID      `db:"RoleId"`
	Name         string         `db:"Name"`
	Description  sql.NullString `db:"Description"`
	CreatedBy    string         `db:"CreatedBy"`
	CreatedDate  time.Time      `db:"CreatedDate"`
	ModifiedBy   sql.NullString `db:"ModifiedBy"`
	ModifiedDate sql.NullTime   `db:"ModifiedDate"`
	Active       bool           `db:"Active"`
}

func roleFromRow(row roleTableModel) role.Role {
	return role.Role{
		ID:          row.RoleID,
		Name:        row.Name,
		Description: row.Description.String,
		Audit: record.Audit{
			CreatedBy:    row.CreatedBy,
			CreatedDate:  row.CreatedDate,
			ModifiedBy:   row.ModifiedBy.String,
			ModifiedDate: row.ModifiedDate.Time,
		},
		Active: row.Active,
	}
}

func roleInsertRow(item *role.Role) roleTableModel {
	return roleTableModel{
		RoleID:       item.ID,
		Name:         item.Name,
		Description:  nullString(item.Description),
		CreatedBy:    item.CreatedBy,
		CreatedDate:  item.CreatedDate,
		ModifiedBy:   nullString(item.ModifiedBy),
		ModifiedDate: nullTime(item.ModifiedDate),
		Active:       true,
	}
}
