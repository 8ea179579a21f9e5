package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/role"
	"github.com/riskibarqy/org-directory/internal/platform/logging"
)

type userRoleKey struct {
	userID uuid.UUID
	roleID uuid.UUID
}

// RoleRepository keeps roles and User_Role edges in process. Rows are never
// removed, only deactivated.
type RoleRepository struct {
	mu     sync.RWMutex
	roles  map[uuid.UUID]role.Role
	edges  map[userRoleKey]bool
	logger *logging.Logger
	now    func() time.Time
}

func NewRoleRepository(logger *logging.Logger, roles []role.Role, assignments []role.Assignment) *RoleRepository {
	r := &RoleRepository{
		roles:  make(map[uuid.UUID]role.Role, len(roles)),
		edges:  make(map[userRoleKey]bool, len(assignments)),
		logger: logger.Named("repository").With("table", "Role"),
		now:    time.Now,
	}
	for _, item := range roles {
		r.roles[item.ID] = item
	}
	for _, a := range assignments {
		r.edges[userRoleKey{userID: a.UserID, roleID: a.RoleID}] = a.Active
	}
	return r
}

func (r *RoleRepository) Add(ctx context.Context, item *role.Role) (*role.Role, error) {
	if err := validateRole(item, "add"); err != nil {
		return nil, err
	}
	if err := checkContext(ctx, "Add", "Role"); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.roles[item.ID]; exists {
		return nil, errors.Mark(errors.Mark(errors.Newf("add role: id %s already exists", item.ID), record.ErrInfrastructure), record.ErrDuplicateID)
	}
	stored := *item
	stored.Active = true
	r.roles[item.ID] = stored
	return item, nil
}

func (r *RoleRepository) Update(ctx context.Context, item *role.Role) (*role.Role, record.UpdateResult, error) {
	if err := validateRole(item, "update"); err != nil {
		return nil, record.NotModified, err
	}
	if err := checkContext(ctx, "Update", "Role"); err != nil {
		return nil, record.NotModified, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.roles[item.ID]
	if !ok || !current.Active {
		r.logger.WarnContext(ctx, "update matched no active role", "op", "Update", "role_id", item.ID, "name", item.Name)
		return item, record.NotModified, nil
	}

	current.Name = item.Name
	current.Description = item.Description
	current.ModifiedBy = item.ModifiedBy
	current.ModifiedDate = item.ModifiedDate
	r.roles[item.ID] = current
	return item, record.Modified, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, roleID uuid.UUID) (role.Role, bool, error) {
	if err := checkContext(ctx, "GetByID", "Role"); err != nil {
		return role.Role{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.roles[roleID]
	if !ok || !item.Active {
		return role.Role{}, false, nil
	}
	return item, true, nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (role.Role, bool, error) {
	if err := checkContext(ctx, "GetByName", "Role"); err != nil {
		return role.Role{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		match role.Role
		count int
	)
	for _, item := range r.roles {
		if !item.Active || item.Name != name {
			continue
		}
		match = item
		count++
	}

	switch count {
	case 0:
		return role.Role{}, false, nil
	case 1:
		return match, true, nil
	default:
		return role.Role{}, false, errors.Wrapf(record.ErrNotUnique, "get role by name %q", name)
	}
}

// GetByUserID returns the user's active roles ordered by name.
func (r *RoleRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]role.Role, error) {
	if err := checkContext(ctx, "GetByUserID", "Role"); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]role.Role, 0)
	for key, active := range r.edges {
		if !active || key.userID != userID {
			continue
		}
		item, ok := r.roles[key.roleID]
		if !ok || !item.Active {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *RoleRepository) Deactivate(ctx context.Context, roleID uuid.UUID, modifiedBy string) (record.UpdateResult, error) {
	if roleID == uuid.Nil {
		return record.NotModified, errors.Wrap(record.ErrInvalidArgument, "deactivate Role: id is required")
	}
	if err := checkContext(ctx, "Deactivate", "Role"); err != nil {
		return record.NotModified, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.roles[roleID]
	if !ok || !item.Active {
		r.logger.WarnContext(ctx, "deactivate matched no active row", "op", "Deactivate", "id", roleID)
		return record.NotModified, nil
	}
	item.Active = false
	item.Stamp(modifiedBy, r.now().UTC())
	r.roles[roleID] = item
	return record.Modified, nil
}

func (r *RoleRepository) AssignUser(ctx context.Context, roleID, userID uuid.UUID) error {
	if roleID == uuid.Nil || userID == uuid.Nil {
		return errors.Wrap(record.ErrInvalidArgument, "AssignUser User_Role: both ids are required")
	}
	if err := checkContext(ctx, "AssignUser", "Role"); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.edges[userRoleKey{userID: userID, roleID: roleID}] = true
	return nil
}

func (r *RoleRepository) RevokeUser(ctx context.Context, roleID, userID uuid.UUID) (record.UpdateResult, error) {
	if roleID == uuid.Nil || userID == uuid.Nil {
		return record.NotModified, errors.Wrap(record.ErrInvalidArgument, "RevokeUser User_Role: both ids are required")
	}
	if err := checkContext(ctx, "RevokeUser", "Role"); err != nil {
		return record.NotModified, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := userRoleKey{userID: userID, roleID: roleID}
	if !r.edges[key] {
		return record.NotModified, nil
	}
	r.edges[key] = false
	return record.Modified, nil
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
