package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	crerrors "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/role"
	"github.com/riskibarqy/org-directory/internal/domain/team"
	"github.com/riskibarqy/org-directory/internal/platform/logging"
)

const seedActor = "seed"

type SeedFixture struct {
	Roles       []SeedRole       `json:"roles"`
	Teams       []SeedTeam       `json:"teams"`
	Employees   []SeedEmployee   `json:"employees"`
	Assignments []SeedAssignment `json:"assignments"`
	Memberships []SeedMembership `json:"memberships"`
}

type SeedRole struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SeedTeam struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	LeadEmployeeID string `json:"leadEmployeeId"`
}

type SeedEmployee struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

type SeedAssignment struct {
	RoleID string `json:"roleId"`
	UserID string `json:"userId"`
}

type SeedMembership struct {
	TeamID     string `json:"teamId"`
	EmployeeID string `json:"employeeId"`
}

// SeedResult counts what a seed run wrote.
type SeedResult struct {
	Created     int
	Updated     int
	Skipped     int
	Edges       int
	Employees   int
	FailedCount int
}

// DecodeSeedFixture reads a JSON directory fixture.
func DecodeSeedFixture(r io.Reader) (SeedFixture, error) {
	var fixture SeedFixture
	if err := sonic.ConfigDefault.NewDecoder(r).Decode(&fixture); err != nil {
		return SeedFixture{}, fmt.Errorf("%w: decode seed fixture: %v", ErrInvalidInput, err)
	}
	return fixture, nil
}

// SeedService loads a fixture through the repositories. Entities are
// upserted by id so repeated runs converge on the fixture.
type SeedService struct {
	roleRepo role.Repository
	teamRepo team.Repository
	logger   *logging.Logger
	workers  int
	now      func() time.Time
}

func NewSeedService(roleRepo role.Repository, teamRepo team.Repository, logger *logging.Logger, workers int) *SeedService {
	if workers < 1 {
		workers = 1
	}
	return &SeedService{
		roleRepo: roleRepo,
		teamRepo: teamRepo,
		logger:   logger.Named("seed"),
		workers:  workers,
		now:      time.Now,
	}
}

func (s *SeedService) Run(ctx context.Context, fixture SeedFixture) (SeedResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeedService.Run")
	defer span.End()

	plan, err := parseSeedFixture(fixture)
	if err != nil {
		return SeedResult{}, err
	}

	var result SeedResult
	if len(plan.employees) > 0 {
		if err := s.teamRepo.UpsertEmployees(ctx, plan.employees); err != nil {
			return result, repositoryError("upsert employees", err)
		}
		result.Employees = len(plan.employees)
	}

	var created, updated, skipped, edges, failed atomic.Int32

	// Edges reference roles and teams, so entities go first.
	entityTasks := make([]func(context.Context) error, 0, len(plan.roles)+len(plan.teams))
	for _, item := range plan.roles {
		entityTasks = append(entityTasks, func(ctx context.Context) error {
			return s.upsertRole(ctx, item, &created, &updated, &skipped)
		})
	}
	for _, item := range plan.teams {
		entityTasks = append(entityTasks, func(ctx context.Context) error {
			return s.upsertTeam(ctx, item, &created, &updated, &skipped)
		})
	}
	if err := s.runTasks(ctx, entityTasks, &failed); err != nil {
		return result, err
	}

	edgeTasks := make([]func(context.Context) error, 0, len(plan.assignments)+len(plan.memberships))
	for _, edge := range plan.assignments {
		edgeTasks = append(edgeTasks, func(ctx context.Context) error {
			if err := s.roleRepo.AssignUser(ctx, edge.RoleID, edge.UserID); err != nil {
				return repositoryError("assign user", err)
			}
			edges.Add(1)
			return nil
		})
	}
	for _, edge := range plan.memberships {
		edgeTasks = append(edgeTasks, func(ctx context.Context) error {
			if err := s.teamRepo.AddEmployee(ctx, edge.TeamID, edge.EmployeeID); err != nil {
				return repositoryError("add employee", err)
			}
			edges.Add(1)
			return nil
		})
	}
	if err := s.runTasks(ctx, edgeTasks, &failed); err != nil {
		return result, err
	}

	result.Created = int(created.Load())
	result.Updated = int(updated.Load())
	result.Skipped = int(skipped.Load())
	result.Edges = int(edges.Load())
	result.FailedCount = int(failed.Load())

	s.logger.InfoContext(ctx, "seed finished",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"edges", result.Edges,
		"employees", result.Employees,
		"failed", result.FailedCount,
	)
	if result.FailedCount > 0 {
		return result, fmt.Errorf("seed finished with %d failed task(s)", result.FailedCount)
	}
	return result, nil
}

func (s *SeedService) runTasks(ctx context.Context, tasks []func(context.Context) error, failed *atomic.Int32) error {
	if len(tasks) == 0 {
		return nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if err := task(ctx); err != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "seed task failed", "error", err)
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()
	return ctx.Err()
}

func (s *SeedService) upsertRole(ctx context.Context, item role.Role, created, updated, skipped *atomic.Int32) error {
	existing, found, err := s.roleRepo.GetByID(ctx, item.ID)
	if err != nil {
		return repositoryError("get role", err)
	}
	if !found {
		item.Audit = record.Audit{CreatedBy: seedActor, CreatedDate: s.now().UTC()}
		if _, err := s.roleRepo.Add(ctx, &item); err != nil {
			if crerrors.Is(err, record.ErrDuplicateID) {
				s.logDeactivated(ctx, "Role", item.ID, item.Name)
				skipped.Add(1)
				return nil
			}
			return repositoryError("add role", err)
		}
		created.Add(1)
		return nil
	}
	if existing.Name == item.Name && existing.Description == item.Description {
		return nil
	}

	existing.Name = item.Name
	existing.Description = item.Description
	existing.Stamp(seedActor, s.now().UTC())
	_, result, err := s.roleRepo.Update(ctx, &existing)
	if err != nil {
		return repositoryError("update role", err)
	}
	if result == record.Modified {
		updated.Add(1)
	}
	return nil
}

func (s *SeedService) upsertTeam(ctx context.Context, item team.Team, created, updated, skipped *atomic.Int32) error {
	existing, found, err := s.teamRepo.GetByID(ctx, item.ID)
	if err != nil {
		return repositoryError("get team", err)
	}
	if !found {
		item.Audit = record.Audit{CreatedBy: seedActor, CreatedDate: s.now().UTC()}
		if _, err := s.teamRepo.Add(ctx, &item); err != nil {
			if crerrors.Is(err, record.ErrDuplicateID) {
				s.logDeactivated(ctx, "Team", item.ID, item.Name)
				skipped.Add(1)
				return nil
			}
			return repositoryError("add team", err)
		}
		created.Add(1)
		return nil
	}
	// The lead is fixed at creation; Update only writes name and description.
	if existing.Name == item.Name && existing.Description == item.Description {
		return nil
	}

	existing.Name = item.Name
	existing.Description = item.Description
	existing.Stamp(seedActor, s.now().UTC())
	_, result, err := s.teamRepo.Update(ctx, &existing)
	if err != nil {
		return repositoryError("update team", err)
	}
	if result == record.Modified {
		updated.Add(1)
	}
	return nil
}

// Lookups only see active rows, so an id that is absent yet cannot be added
// belongs to a row someone deactivated. The seeder leaves it deactivated.
func (s *SeedService) logDeactivated(ctx context.Context, table string, id uuid.UUID, name string) {
	s.logger.WarnContext(ctx, "fixture row is deactivated, skipping", "table", table, "id", id, "name", name)
}

type seedPlan struct {
	roles       []role.Role
	teams       []team.Team
	employees   []team.Employee
	assignments []role.Assignment
	memberships []team.Membership
}

func parseSeedFixture(fixture SeedFixture) (seedPlan, error) {
	var plan seedPlan
	for i, item := range fixture.Roles {
		id, err := parseSeedID(fmt.Sprintf("roles[%d].id", i), item.ID)
		if err != nil {
			return seedPlan{}, err
		}
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return seedPlan{}, fmt.Errorf("%w: roles[%d].name is required", ErrInvalidInput, i)
		}
		plan.roles = append(plan.roles, role.Role{ID: id, Name: name, Description: item.Description, Active: true})
	}
	for i, item := range fixture.Teams {
		id, err := parseSeedID(fmt.Sprintf("teams[%d].id", i), item.ID)
		if err != nil {
			return seedPlan{}, err
		}
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return seedPlan{}, fmt.Errorf("%w: teams[%d].name is required", ErrInvalidInput, i)
		}
		var lead uuid.UUID
		if strings.TrimSpace(item.LeadEmployeeID) != "" {
			lead, err = parseSeedID(fmt.Sprintf("teams[%d].leadEmployeeId", i), item.LeadEmployeeID)
			if err != nil {
				return seedPlan{}, err
			}
		}
		plan.teams = append(plan.teams, team.Team{
			ID:                 id,
			TeamLeadEmployeeID: lead,
			Name:               name,
			Description:        item.Description,
			Active:             true,
		})
	}
	for i, item := range fixture.Employees {
		id, err := parseSeedID(fmt.Sprintf("employees[%d].id", i), item.ID)
		if err != nil {
			return seedPlan{}, err
		}
		userID, err := parseSeedID(fmt.Sprintf("employees[%d].userId", i), item.UserID)
		if err != nil {
			return seedPlan{}, err
		}
		plan.employees = append(plan.employees, team.Employee{ID: id, UserID: userID, Active: true})
	}
	for i, item := range fixture.Assignments {
		roleID, err := parseSeedID(fmt.Sprintf("assignments[%d].roleId", i), item.RoleID)
		if err != nil {
			return seedPlan{}, err
		}
		userID, err := parseSeedID(fmt.Sprintf("assignments[%d].userId", i), item.UserID)
		if err != nil {
			return seedPlan{}, err
		}
		plan.assignments = append(plan.assignments, role.Assignment{RoleID: roleID, UserID: userID, Active: true})
	}
	for i, item := range fixture.Memberships {
		teamID, err := parseSeedID(fmt.Sprintf("memberships[%d].teamId", i), item.TeamID)
		if err != nil {
			return seedPlan{}, err
		}
		employeeID, err := parseSeedID(fmt.Sprintf("memberships[%d].employeeId", i), item.EmployeeID)
		if err != nil {
			return seedPlan{}, err
		}
		plan.memberships = append(plan.memberships, team.Membership{TeamID: teamID, EmployeeID: employeeID, Active: true})
	}
	return plan, nil
}

func parseSeedID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a non-nil uuid", ErrInvalidInput, field)
	}
	return id, nil
}
