package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/role"
	"github.com/riskibarqy/org-directory/internal/domain/team"
	"github.com/riskibarqy/org-directory/internal/platform/id"
	"github.com/riskibarqy/org-directory/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultLookupFanout = 8

type CreateRoleInput struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=500"`
	CreatedBy   string `validate:"required,max=100"`
}

type UpdateRoleInput struct {
	RoleID      uuid.UUID
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=500"`
	ModifiedBy  string `validate:"required,max=100"`
}

type CreateTeamInput struct {
	Name string `validate:"required,max=100"`
	// TeamLeadEmployeeID may be uuid.Nil for a team without a lead yet.
	TeamLeadEmployeeID uuid.UUID
	Description        string `validate:"max=500"`
	CreatedBy          string `validate:"required,max=100"`
}

type UpdateTeamInput struct {
	TeamID      uuid.UUID
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=500"`
	ModifiedBy  string `validate:"required,max=100"`
}

type DirectoryOption func(*DirectoryService)

func WithDirectoryClock(now func() time.Time) DirectoryOption {
	return func(s *DirectoryService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLookupFanout bounds how many per-user lookups RolesForUsers runs at once.
func WithLookupFanout(n int) DirectoryOption {
	return func(s *DirectoryService) {
		if n > 0 {
			s.fanout = n
		}
	}
}

// DirectoryService owns the write rules around roles and teams: name
// uniqueness among active rows, audit stamping and id assignment.
type DirectoryService struct {
	roleRepo  role.Repository
	teamRepo  team.Repository
	ids       id.Generator
	logger    *logging.Logger
	validator *validator.Validate
	now       func() time.Time
	fanout    int
}

func NewDirectoryService(
	roleRepo role.Repository,
	teamRepo team.Repository,
	ids id.Generator,
	logger *logging.Logger,
	opts ...DirectoryOption,
) *DirectoryService {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	s := &DirectoryService{
		roleRepo:  roleRepo,
		teamRepo:  teamRepo,
		ids:       ids,
		logger:    logger,
		validator: validator.New(),
		now:       time.Now,
		fanout:    defaultLookupFanout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DirectoryService) CreateRole(ctx context.Context, input CreateRoleInput) (role.Role, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.CreateRole")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.CreatedBy = strings.TrimSpace(input.CreatedBy)
	if err := s.validate(ctx, input); err != nil {
		return role.Role{}, err
	}

	_, exists, err := s.roleRepo.GetByName(ctx, input.Name)
	if err != nil {
		return role.Role{}, repositoryError("get role by name", err)
	}
	if exists {
		return role.Role{}, fmt.Errorf("%w: role name=%s", ErrConflict, input.Name)
	}

	roleID, err := s.ids.NewID()
	if err != nil {
		return role.Role{}, fmt.Errorf("generate role id: %w", err)
	}

	item := &role.Role{
		ID:          roleID,
		Name:        input.Name,
		Description: input.Description,
		Audit:       record.Audit{CreatedBy: input.CreatedBy, CreatedDate: s.now().UTC()},
		Active:      true,
	}
	if _, err := s.roleRepo.Add(ctx, item); err != nil {
		return role.Role{}, repositoryError("add role", err)
	}

	s.logger.InfoContext(ctx, "role created", "role_id", item.ID, "name", item.Name)
	return *item, nil
}

func (s *DirectoryService) UpdateRole(ctx context.Context, input UpdateRoleInput) (role.Role, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.UpdateRole")
	defer span.End()

	if input.RoleID == uuid.Nil {
		return role.Role{}, fmt.Errorf("%w: role id is required", ErrInvalidInput)
	}
	input.Name = strings.TrimSpace(input.Name)
	input.ModifiedBy = strings.TrimSpace(input.ModifiedBy)
	if err := s.validate(ctx, input); err != nil {
		return role.Role{}, err
	}

	current, exists, err := s.roleRepo.GetByID(ctx, input.RoleID)
	if err != nil {
		return role.Role{}, repositoryError("get role by id", err)
	}
	if !exists {
		return role.Role{}, fmt.Errorf("%w: role=%s", ErrNotFound, input.RoleID)
	}

	if current.Name != input.Name {
		other, taken, err := s.roleRepo.GetByName(ctx, input.Name)
		if err != nil {
			return role.Role{}, repositoryError("get role by name", err)
		}
		if taken && other.ID != current.ID {
			return role.Role{}, fmt.Errorf("%w: role name=%s", ErrConflict, input.Name)
		}
	}

	current.Name = input.Name
	current.Description = input.Description
	current.Stamp(input.ModifiedBy, s.now().UTC())

	_, result, err := s.roleRepo.Update(ctx, &current)
	if err != nil {
		return role.Role{}, repositoryError("update role", err)
	}
	if result == record.NotModified {
		return role.Role{}, fmt.Errorf("%w: role=%s", ErrNotFound, input.RoleID)
	}

	return current, nil
}

func (s *DirectoryService) DeactivateRole(ctx context.Context, roleID uuid.UUID, modifiedBy string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.DeactivateRole")
	defer span.End()

	modifiedBy, err := requireActor(roleID, modifiedBy, "role")
	if err != nil {
		return err
	}

	result, err := s.roleRepo.Deactivate(ctx, roleID, modifiedBy)
	if err != nil {
		return repositoryError("deactivate role", err)
	}
	if result == record.NotModified {
		return fmt.Errorf("%w: role=%s", ErrNotFound, roleID)
	}

	s.logger.InfoContext(ctx, "role deactivated", "role_id", roleID, "modified_by", modifiedBy)
	return nil
}

// AssignRole attaches an active role to a user. Re-assigning is a no-op.
func (s *DirectoryService) AssignRole(ctx context.Context, roleID, userID uuid.UUID) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.AssignRole")
	defer span.End()

	if roleID == uuid.Nil || userID == uuid.Nil {
		return fmt.Errorf("%w: role id and user id are required", ErrInvalidInput)
	}

	_, exists, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return repositoryError("get role by id", err)
	}
	if !exists {
		return fmt.Errorf("%w: role=%s", ErrNotFound, roleID)
	}

	if err := s.roleRepo.AssignUser(ctx, roleID, userID); err != nil {
		return repositoryError("assign role", err)
	}
	return nil
}

func (s *DirectoryService) RevokeRole(ctx context.Context, roleID, userID uuid.UUID) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.RevokeRole")
	defer span.End()

	if roleID == uuid.Nil || userID == uuid.Nil {
		return fmt.Errorf("%w: role id and user id are required", ErrInvalidInput)
	}

	result, err := s.roleRepo.RevokeUser(ctx, roleID, userID)
	if err != nil {
		return repositoryError("revoke role", err)
	}
	if result == record.NotModified {
		return fmt.Errorf("%w: role=%s user=%s", ErrNotFound, roleID, userID)
	}
	return nil
}

func (s *DirectoryService) RolesForUser(ctx context.Context, userID uuid.UUID) ([]role.Role, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.RolesForUser")
	defer span.End()

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	roles, err := s.roleRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, repositoryError("get roles by user", err)
	}
	return roles, nil
}

type userRoles struct {
	userID uuid.UUID
	roles  []role.Role
}

// RolesForUsers resolves roles for many users concurrently. Duplicate ids are
// looked up once; the first failure cancels the remaining lookups.
func (s *DirectoryService) RolesForUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]role.Role, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.RolesForUsers")
	defer span.End()

	unique := make([]uuid.UUID, 0, len(userIDs))
	seen := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if userID == uuid.Nil {
			return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
		}
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		unique = append(unique, userID)
	}
	if len(unique) == 0 {
		return map[uuid.UUID][]role.Role{}, nil
	}

	p := pool.NewWithResults[userRoles]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(min(s.fanout, len(unique)))
	for _, userID := range unique {
		p.Go(func(ctx context.Context) (userRoles, error) {
			roles, err := s.roleRepo.GetByUserID(ctx, userID)
			if err != nil {
				return userRoles{}, err
			}
			return userRoles{userID: userID, roles: roles}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, repositoryError("get roles by users", err)
	}

	out := make(map[uuid.UUID][]role.Role, len(results))
	for _, item := range results {
		out[item.userID] = item.roles
	}
	return out, nil
}

func (s *DirectoryService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.CreateTeam")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.CreatedBy = strings.TrimSpace(input.CreatedBy)
	if err := s.validate(ctx, input); err != nil {
		return team.Team{}, err
	}

	_, exists, err := s.teamRepo.GetByName(ctx, input.Name)
	if err != nil {
		return team.Team{}, repositoryError("get team by name", err)
	}
	if exists {
		return team.Team{}, fmt.Errorf("%w: team name=%s", ErrConflict, input.Name)
	}

	teamID, err := s.ids.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := &team.Team{
		ID:                 teamID,
		TeamLeadEmployeeID: input.TeamLeadEmployeeID,
		Name:               input.Name,
		Description:        input.Description,
		Audit:              record.Audit{CreatedBy: input.CreatedBy, CreatedDate: s.now().UTC()},
		Active:             true,
	}
	if _, err := s.teamRepo.Add(ctx, item); err != nil {
		return team.Team{}, repositoryError("add team", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "name", item.Name)
	return *item, nil
}

func (s *DirectoryService) UpdateTeam(ctx context.Context, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.UpdateTeam")
	defer span.End()

	if input.TeamID == uuid.Nil {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	input.Name = strings.TrimSpace(input.Name)
	input.ModifiedBy = strings.TrimSpace(input.ModifiedBy)
	if err := s.validate(ctx, input); err != nil {
		return team.Team{}, err
	}

	current, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return team.Team{}, repositoryError("get team by id", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}

	if current.Name != input.Name {
		other, taken, err := s.teamRepo.GetByName(ctx, input.Name)
		if err != nil {
			return team.Team{}, repositoryError("get team by name", err)
		}
		if taken && other.ID != current.ID {
			return team.Team{}, fmt.Errorf("%w: team name=%s", ErrConflict, input.Name)
		}
	}

	current.Name = input.Name
	current.Description = input.Description
	current.Stamp(input.ModifiedBy, s.now().UTC())

	_, result, err := s.teamRepo.Update(ctx, &current)
	if err != nil {
		return team.Team{}, repositoryError("update team", err)
	}
	if result == record.NotModified {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}

	return current, nil
}

func (s *DirectoryService) DeactivateTeam(ctx context.Context, teamID uuid.UUID, modifiedBy string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.DeactivateTeam")
	defer span.End()

	modifiedBy, err := requireActor(teamID, modifiedBy, "team")
	if err != nil {
		return err
	}

	result, err := s.teamRepo.Deactivate(ctx, teamID, modifiedBy)
	if err != nil {
		return repositoryError("deactivate team", err)
	}
	if result == record.NotModified {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	s.logger.InfoContext(ctx, "team deactivated", "team_id", teamID, "modified_by", modifiedBy)
	return nil
}

func (s *DirectoryService) AddTeamMember(ctx context.Context, teamID, employeeID uuid.UUID) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.AddTeamMember")
	defer span.End()

	if teamID == uuid.Nil || employeeID == uuid.Nil {
		return fmt.Errorf("%w: team id and employee id are required", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return repositoryError("get team by id", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	if err := s.teamRepo.AddEmployee(ctx, teamID, employeeID); err != nil {
		return repositoryError("add team member", err)
	}
	return nil
}

func (s *DirectoryService) RemoveTeamMember(ctx context.Context, teamID, employeeID uuid.UUID) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.RemoveTeamMember")
	defer span.End()

	if teamID == uuid.Nil || employeeID == uuid.Nil {
		return fmt.Errorf("%w: team id and employee id are required", ErrInvalidInput)
	}

	result, err := s.teamRepo.RemoveEmployee(ctx, teamID, employeeID)
	if err != nil {
		return repositoryError("remove team member", err)
	}
	if result == record.NotModified {
		return fmt.Errorf("%w: team=%s employee=%s", ErrNotFound, teamID, employeeID)
	}
	return nil
}

func (s *DirectoryService) TeamsForUser(ctx context.Context, userID uuid.UUID) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.TeamsForUser")
	defer span.End()

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, repositoryError("get teams by user", err)
	}
	return teams, nil
}

func (s *DirectoryService) validate(ctx context.Context, payload any) error {
	if err := s.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	return nil
}

func requireActor(entityID uuid.UUID, actor, kind string) (string, error) {
	if entityID == uuid.Nil {
		return "", fmt.Errorf("%w: %s id is required", ErrInvalidInput, kind)
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "", fmt.Errorf("%w: modified by is required", ErrInvalidInput)
	}
	return actor, nil
}
