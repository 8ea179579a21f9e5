package cache

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/role"
	"github.com/riskibarqy/org-directory/internal/domain/team"
	basecache "github.com/riskibarqy/org-directory/internal/platform/cache"
)

const (
	rolePrefix = "role:"
	teamPrefix = "team:"
)

// RoleRepository caches role reads. Every successful write drops the whole
// role keyspace because a rename or revoke can change any lookup.
type RoleRepository struct {
	next  role.Repository
	cache *basecache.Store
}

func NewRoleRepository(next role.Repository, cache *basecache.Store) *RoleRepository {
	return &RoleRepository{next: next, cache: cache}
}

func (r *RoleRepository) Add(ctx context.Context, item *role.Role) (*role.Role, error) {
	out, err := r.next.Add(ctx, item)
	if err != nil {
		return nil, err
	}
	r.cache.DeletePrefix(rolePrefix)
	return out, nil
}

func (r *RoleRepository) Update(ctx context.Context, item *role.Role) (*role.Role, record.UpdateResult, error) {
	out, result, err := r.next.Update(ctx, item)
	if err != nil {
		return nil, result, err
	}
	if result == record.Modified {
		r.cache.DeletePrefix(rolePrefix)
	}
	return out, result, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, roleID uuid.UUID) (role.Role, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, rolePrefix+"id:"+roleID.String(), func(ctx context.Context) (cachedRole, error) {
		item, exists, err := r.next.GetByID(ctx, roleID)
		return cachedRole{value: item, exists: exists}, err
	})
	if err != nil {
		return role.Role{}, false, callerError(ctx, err)
	}
	return cached.value, cached.exists, nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (role.Role, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, rolePrefix+"name:"+name, func(ctx context.Context) (cachedRole, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		return cachedRole{value: item, exists: exists}, err
	})
	if err != nil {
		return role.Role{}, false, callerError(ctx, err)
	}
	return cached.value, cached.exists, nil
}

func (r *RoleRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]role.Role, error) {
	items, err := basecache.Load(ctx, r.cache, rolePrefix+"user:"+userID.String(), func(ctx context.Context) ([]role.Role, error) {
		items, err := r.next.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return append([]role.Role(nil), items...), nil
	})
	if err != nil {
		return nil, callerError(ctx, err)
	}
	return append(make([]role.Role, 0, len(items)), items...), nil
}

func (r *RoleRepository) Deactivate(ctx context.Context, roleID uuid.UUID, modifiedBy string) (record.UpdateResult, error) {
	result, err := r.next.Deactivate(ctx, roleID, modifiedBy)
	if err != nil {
		return result, err
	}
	if result == record.Modified {
		r.cache.DeletePrefix(rolePrefix)
	}
	return result, nil
}

func (r *RoleRepository) AssignUser(ctx context.Context, roleID, userID uuid.UUID) error {
	if err := r.next.AssignUser(ctx, roleID, userID); err != nil {
		return err
	}
	r.cache.Delete(rolePrefix + "user:" + userID.String())
	return nil
}

func (r *RoleRepository) RevokeUser(ctx context.Context, roleID, userID uuid.UUID) (record.UpdateResult, error) {
	result, err := r.next.RevokeUser(ctx, roleID, userID)
	if err != nil {
		return result, err
	}
	r.cache.Delete(rolePrefix + "user:" + userID.String())
	return result, nil
}

type cachedRole struct {
	value  role.Role
	exists bool
}

// TeamRepository caches team reads. Membership writes only know the
// employee, not the user, so they drop every per-user entry.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) Add(ctx context.Context, item *team.Team) (*team.Team, error) {
	out, err := r.next.Add(ctx, item)
	if err != nil {
		return nil, err
	}
	r.cache.DeletePrefix(teamPrefix)
	return out, nil
}

func (r *TeamRepository) Update(ctx context.Context, item *team.Team) (*team.Team, record.UpdateResult, error) {
	out, result, err := r.next.Update(ctx, item)
	if err != nil {
		return nil, result, err
	}
	if result == record.Modified {
		r.cache.DeletePrefix(teamPrefix)
	}
	return out, result, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID uuid.UUID) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, teamPrefix+"id:"+teamID.String(), func(ctx context.Context) (cachedTeam, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		return cachedTeam{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, callerError(ctx, err)
	}
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, teamPrefix+"name:"+name, func(ctx context.Context) (cachedTeam, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		return cachedTeam{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, callerError(ctx, err)
	}
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, teamPrefix+"user:"+userID.String(), func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, callerError(ctx, err)
	}
	return append(make([]team.Team, 0, len(items)), items...), nil
}

func (r *TeamRepository) Deactivate(ctx context.Context, teamID uuid.UUID, modifiedBy string) (record.UpdateResult, error) {
	result, err := r.next.Deactivate(ctx, teamID, modifiedBy)
	if err != nil {
		return result, err
	}
	if result == record.Modified {
		r.cache.DeletePrefix(teamPrefix)
	}
	return result, nil
}

func (r *TeamRepository) AddEmployee(ctx context.Context, teamID, employeeID uuid.UUID) error {
	if err := r.next.AddEmployee(ctx, teamID, employeeID); err != nil {
		return err
	}
	r.cache.DeletePrefix(teamPrefix + "user:")
	return nil
}

func (r *TeamRepository) RemoveEmployee(ctx context.Context, teamID, employeeID uuid.UUID) (record.UpdateResult, error) {
	result, err := r.next.RemoveEmployee(ctx, teamID, employeeID)
	if err != nil {
		return result, err
	}
	r.cache.DeletePrefix(teamPrefix + "user:")
	return result, nil
}

func (r *TeamRepository) UpsertEmployees(ctx context.Context, employees []team.Employee) error {
	if err := r.next.UpsertEmployees(ctx, employees); err != nil {
		return err
	}
	r.cache.DeletePrefix(teamPrefix + "user:")
	return nil
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

// callerError marks the caller's own context error the way the wrapped
// repositories do, since the store returns it bare.
func callerError(ctx context.Context, err error) error {
	if errors.Is(err, record.ErrCancelled) || errors.Is(err, record.ErrInfrastructure) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return errors.Mark(errors.Wrap(err, "cache lookup abandoned"), record.ErrCancelled)
	}
	return err
}
