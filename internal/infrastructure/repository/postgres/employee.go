package postgres

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/team"
	qb "github.com/riskibarqy/org-directory/internal/platform/querybuilder"
)

// UpsertEmployees writes the Employee rows GetByUserID resolves users
// through, as one statement. A repeated id keeps its last occurrence since
// ON CONFLICT cannot touch the same row twice.
func (r *TeamRepository) UpsertEmployees(ctx context.Context, employees []team.Employee) error {
	rows, err := uniqueEmployees(employees)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	insert := qb.InsertInto(qb.Ident(employeeTable))
	for _, e := range rows {
		insert.Row(employeeTableModel{EmployeeID: e.ID, UserID: e.UserID, Active: e.Active})
	}
	query, args, err := insert.
		Suffix(fmt.Sprintf("ON CONFLICT (%[1]s) DO UPDATE SET %[2]s = EXCLUDED.%[2]s, %[3]s = EXCLUDED.%[3]s",
			qb.Ident(employeeIDColumn), qb.Ident(employeeUserIDColumn), qb.Ident(employeeActiveColumn))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build employee upsert query: %w", err)
	}

	_, err = r.execAffected(ctx, "UpsertEmployees", []any{"employees", len(rows)}, query, args)
	return err
}

type employeeTableModel struct {
	EmployeeID uuid.UUID `db:"EmployeeId"`
	UserID     uuid.UUID `db:"UserId"`
	Active     bool      `db:"Active"`
}

func uniqueEmployees(employees []team.Employee) ([]team.Employee, error) {
	index := make(map[uuid.UUID]int, len(employees))
	out := make([]team.Employee, 0, len(employees))
	for _, e := range employees {
		if e.ID == uuid.Nil || e.UserID == uuid.Nil {
			return nil, errors.Wrap(record.ErrInvalidArgument, "UpsertEmployees Employee: employee and user ids are required")
		}
		if i, seen := index[e.ID]; seen {
			out[i] = e
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	return out, nil
}
