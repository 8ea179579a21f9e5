package postgres

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/role"
	qb "github.com/riskibarqy/org-directory/internal/platform/querybuilder"
)

type RoleRepository struct {
	Base
}

func NewRoleRepository(conns ConnectionProvider, opts ...Option) *RoleRepository {
	return &RoleRepository{Base: newBase(conns, roleMapping, opts...)}
}

func (r *RoleRepository) Add(ctx context.Context, item *role.Role) (*role.Role, error) {
	if err := validateRole(item, "add"); err != nil {
		return nil, err
	}

	query, args, err := qb.InsertInto(r.mapping.tableName()).Row(roleInsertRow(item)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build insert role query: %w", err)
	}

	_, err = r.execAffected(ctx, "Add", []any{"role_id", item.ID, "name", item.Name}, query, args)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update writes the mutable columns of an active role. A missing or inactive
// row is not an error: the call reports record.NotModified and logs a warning.
func (r *RoleRepository) Update(ctx context.Context, item *role.Role) (*role.Role, record.UpdateResult, error) {
	if err := validateRole(item, "update"); err != nil {
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
		return nil, record.NotModified, fmt.Errorf("build update role query: %w", err)
	}

	fields := []any{"role_id", item.ID, "name", item.Name}
	affected, err := r.execAffected(ctx, "Update", fields, query, args)
	if err != nil {
		return nil, record.NotModified, err
	}

	result := record.ResultFromRows(affected)
	if result == record.NotModified {
		r.logger.WarnContext(ctx, "update matched no active role", logFields("Update", fields, nil)...)
	}
	return item, result, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, roleID uuid.UUID) (role.Role, bool, error) {
	row, found, err := getByID[roleTableModel](ctx, &r.Base, roleID)
	if err != nil || !found {
		return role.Role{}, false, err
	}
	return roleFromRow(row), true, nil
}

// GetByName returns the single active role with exactly this name.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (role.Role, bool, error) {
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
		return role.Role{}, false, fmt.Errorf("build get role by name query: %w", err)
	}

	var rows []roleTableModel
	err = r.execute(ctx, "GetByName", []any{"name", name}, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return role.Role{}, false, err
	}

	switch len(rows) {
	case 0:
		return role.Role{}, false, nil
	case 1:
		return roleFromRow(rows[0]), true, nil
	default:
		return role.Role{}, false, errors.Wrapf(record.ErrNotUnique, "get role by name %q", name)
	}
}

// GetByUserID returns the active roles held by the user through active
// User_Role edges.
func (r *RoleRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]role.Role, error) {
	m := r.mapping
	query, args, err := qb.Select(m.selectColumns()...).
		From(m.from()).
		Join(qb.Ident(userRoleEdge.Table)+" ur",
			qb.Qualified("ur", userRoleEdge.RightColumn)+" = "+m.col(m.IDColumn)).
		Where(
			qb.Eq(qb.Qualified("ur", userRoleEdge.LeftColumn), userID),
			qb.Eq(qb.Qualified("ur", userRoleEdge.ActiveColumn), true),
			qb.Eq(m.col(m.ActiveColumn), true),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get roles by user query: %w", err)
	}

	var rows []roleTableModel
	err = r.execute(ctx, "GetByUserID", []any{"user_id", userID}, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, err
	}

	out := make([]role.Role, 0, len(rows))
	for _, row := range rows {
		out = append(out, roleFromRow(row))
	}
	return out, nil
}

func (r *RoleRepository) Deactivate(ctx context.Context, roleID uuid.UUID, modifiedBy string) (record.UpdateResult, error) {
	return r.deactivate(ctx, roleID, modifiedBy)
}

func (r *RoleRepository) AssignUser(ctx context.Context, roleID, userID uuid.UUID) error {
	return r.activateEdge(ctx, "AssignUser", userRoleEdge, userID, roleID)
}

func (r *RoleRepository) RevokeUser(ctx context.Context, roleID, userID uuid.UUID) (record.UpdateResult, error) {
	return r.deactivateEdge(ctx, "RevokeUser", userRoleEdge, userID, roleID)
}

func validateRole(item *role.Role, op string) error {
	if item == nil {
		return errors.Wrapf(record.ErrInvalidArgument, "%s role: role is required", op)
	}
	if item.ID == uuid.Nil {
		return errors.Wrapf(record.ErrInvalidArgument, "%s role: id is required", op)
	}
	return nil
}
