package postgres

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/team"
	qb "github.com/riskibarqy/org-directory/internal/platform/querybuilder"
)

const (
	employeeTable        = "Employee"
	employeeIDColumn     = "EmployeeId"
	employeeUserIDColumn = "UserId"
	employeeActiveColumn = "Active"
)

type TeamRepository struct {
	Base
}

func NewTeamRepository(conns ConnectionProvider, opts ...Option) *TeamRepository {
	return &TeamRepository{Base: newBase(conns, teamMapping, opts...)}
}

func (r *TeamRepository) Add(ctx context.Context, item *team.Team) (*team.Team, error) {
	if err := validateTeam(item, "add"); err != nil {
		return nil, err
	}

	query, args, err := qb.InsertInto(r.mapping.tableName()).Row(teamInsertRow(item)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build insert team query: %w", err)
	}

	_, err = r.execAffected(ctx, "Add", []any{"team_id", item.ID, "name", item.Name}, query, args)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update writes name, description and the modified audit columns of an
// active team. The lead and created audit columns are left untouched.
func (r *TeamRepository) Update(ctx context.Context, item *team.Team) (*team.Team, record.UpdateResult, error) {
	if err := validateTeam(item, "update"); err != nil {
		return nil, record.NotModified, err
	}

	query, args, err := qb.Update(r.mapping.tableName()).
		Set(qb.Ident("Name"), item.Name).
		Set(qb.Ident("Description"), nullString(item.Description)).
		Set(qb.Ident("ModifiedBy"), nullString(item.ModifiedBy)).
		Set(qb.Ident("ModifiedDate"), nullTime(item.ModifiedDate)).
		Where(
			qb.Eq(qb.Ident(r.mapping.IDColumn), item.ID),
			qb.Eq(qb.Ident(r.mapping.ActiveColumn), true),
		).
		ToSQL()
	if err != nil {
		return nil, record.NotModified, fmt.Errorf("build update team query: %w", err)
	}

	fields := []any{"team_id", item.ID, "name", item.Name}
	affected, err := r.execAffected(ctx, "Update", fields, query, args)
	if err != nil {
		return nil, record.NotModified, err
	}

	result := record.ResultFromRows(affected)
	if result == record.NotModified {
		r.logger.WarnContext(ctx, "update matched no active team", logFields("Update", fields, nil)...)
	}
	return item, result, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID uuid.UUID) (team.Team, bool, error) {
	row, found, err := getByID[teamTableModel](ctx, &r.Base, teamID)
	if err != nil || !found {
		return team.Team{}, false, err
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	m := r.mapping
	query, args, err := qb.Select(m.selectColumns()...).
		From(m.from()).
		Where(
			qb.Eq(m.col("Name"), name),
			qb.Eq(m.col(m.ActiveColumn), true),
		).
		Limit(2).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by name query: %w", err)
	}

	var rows []teamTableModel
	err = r.execute(ctx, "GetByName", []any{"name", name}, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return team.Team{}, false, err
	}

	switch len(rows) {
	case 0:
		return team.Team{}, false, nil
	case 1:
		return teamFromRow(rows[0]), true, nil
	default:
		return team.Team{}, false, errors.Wrapf(record.ErrNotUnique, "get team by name %q", name)
	}
}

func (r *TeamRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]team.Team, error) {
	m := r.mapping
	query, args, err := qb.Select(m.selectColumns()...).
		From(m.from()).
		Join(qb.Ident(employeeTeamEdge.Table)+" et",
			qb.Qualified("et", employeeTeamEdge.RightColumn)+" = "+m.col(m.IDColumn)).
		Join(qb.Ident(employeeTable)+" e",
			qb.Qualified("e", employeeIDColumn)+" = "+qb.Qualified("et", employeeTeamEdge.LeftColumn)).
		Where(
			qb.Eq(qb.Qualified("e", employeeUserIDColumn), userID),
			qb.Eq(qb.Qualified("e", employeeActiveColumn), true),
			qb.Eq(qb.Qualified("et", employeeTeamEdge.ActiveColumn), true),
			qb.Eq(m.col(m.ActiveColumn), true),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get teams by user query: %w", err)
	}

	var rows []teamTableModel
	err = r.execute(ctx, "GetByUserID", []any{"user_id", userID}, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) Deactivate(ctx context.Context, teamID uuid.UUID, modifiedBy string) (record.UpdateResult, error) {
	return r.deactivate(ctx, teamID, modifiedBy)
}

func (r *TeamRepository) AddEmployee(ctx context.Context, teamID, employeeID uuid.UUID) error {
	return r.activateEdge(ctx, "AddEmployee", employeeTeamEdge, employeeID, teamID)
}

func (r *TeamRepository) RemoveEmployee(ctx context.Context, teamID, employeeID uuid.UUID) (record.UpdateResult, error) {
	return r.deactivateEdge(ctx, "RemoveEmployee", employeeTeamEdge, employeeID, teamID)
}

func validateTeam(item *team.Team, op string) error {
	if item == nil {
		return errors.Wrapf(record.ErrInvalidArgument, "%s team: team is required", op)
	}
	if item.ID == uuid.Nil {
		return errors.Wrapf(record.ErrInvalidArgument, "%s team: id is required", op)
	}
	return nil
}
