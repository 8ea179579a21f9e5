package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/team"
	"github.com/riskibarqy/org-directory/internal/platform/logging"
)

type membershipKey struct {
	employeeID uuid.UUID
	teamID     uuid.UUID
}

// TeamRepository keeps teams, Employee rows and Employee_Team edges in
// process.
type TeamRepository struct {
	mu          sync.RWMutex
	teams       map[uuid.UUID]team.Team
	employees   map[uuid.UUID]team.Employee
	memberships map[membershipKey]bool
	logger      *logging.Logger
	now         func() time.Time
}

func NewTeamRepository(logger *logging.Logger, teams []team.Team, employees []team.Employee, memberships []team.Membership) *TeamRepository {
	r := &TeamRepository{
		teams:       make(map[uuid.UUID]team.Team, len(teams)),
		employees:   make(map[uuid.UUID]team.Employee, len(employees)),
		memberships: make(map[membershipKey]bool, len(memberships)),
		logger:      logger.Named("repository").With("table", "Team"),
		now:         time.Now,
	}
	for _, item := range teams {
		r.teams[item.ID] = item
	}
	for _, e := range employees {
		r.employees[e.ID] = e
	}
	for _, m := range memberships {
		r.memberships[membershipKey{employeeID: m.EmployeeID, teamID: m.TeamID}] = m.Active
	}
	return r
}

// UpsertEmployees replaces Employee rows by id.
func (r *TeamRepository) UpsertEmployees(ctx context.Context, employees []team.Employee) error {
	for _, e := range employees {
		if e.ID == uuid.Nil || e.UserID == uuid.Nil {
			return errors.Wrap(record.ErrInvalidArgument, "UpsertEmployees Employee: employee and user ids are required")
		}
	}
	if err := checkContext(ctx, "UpsertEmployees", "Employee"); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range employees {
		r.employees[e.ID] = e
	}
	return nil
}

func (r *TeamRepository) Add(ctx context.Context, item *team.Team) (*team.Team, error) {
	if err := validateTeam(item, "add"); err != nil {
		return nil, err
	}
	if err := checkContext(ctx, "Add", "Team"); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[item.ID]; exists {
		return nil, errors.Mark(errors.Mark(errors.Newf("add team: id %s already exists", item.ID), record.ErrInfrastructure), record.ErrDuplicateID)
	}
	stored := *item
	stored.Active = true
	r.teams[item.ID] = stored
	return item, nil
}

func (r *TeamRepository) Update(ctx context.Context, item *team.Team) (*team.Team, record.UpdateResult, error) {
	if err := validateTeam(item, "update"); err != nil {
		return nil, record.NotModified, err
	}
	if err := checkContext(ctx, "Update", "Team"); err != nil {
		return nil, record.NotModified, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.teams[item.ID]
	if !ok || !current.Active {
		r.logger.WarnContext(ctx, "update matched no active team", "op", "Update", "team_id", item.ID, "name", item.Name)
		return item, record.NotModified, nil
	}

	current.Name = item.Name
	current.Description = item.Description
	current.ModifiedBy = item.ModifiedBy
	current.ModifiedDate = item.ModifiedDate
	r.teams[item.ID] = current
	return item, record.Modified, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID uuid.UUID) (team.Team, bool, error) {
	if err := checkContext(ctx, "GetByID", "Team"); err != nil {
		return team.Team{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	if !ok || !item.Active {
		return team.Team{}, false, nil
	}
	return item, true, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	if err := checkContext(ctx, "GetByName", "Team"); err != nil {
		return team.Team{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		match team.Team
		count int
	)
	for _, item := range r.teams {
		if !item.Active || item.Name != name {
			continue
		}
		match = item
		count++
	}

	switch count {
	case 0:
		return team.Team{}, false, nil
	case 1:
		return match, true, nil
	default:
		return team.Team{}, false, errors.Wrapf(record.ErrNotUnique, "get team by name %q", name)
	}
}

// GetByUserID walks user -> active Employee -> active membership -> active
// team and returns the teams ordered by name.
func (r *TeamRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]team.Team, error) {
	if err := checkContext(ctx, "GetByUserID", "Team"); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for key, active := range r.memberships {
		if !active {
			continue
		}
		employee, ok := r.employees[key.employeeID]
		if !ok || !employee.Active || employee.UserID != userID {
			continue
		}
		item, ok := r.teams[key.teamID]
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

func (r *TeamRepository) Deactivate(ctx context.Context, teamID uuid.UUID, modifiedBy string) (record.UpdateResult, error) {
	if teamID == uuid.Nil {
		return record.NotModified, errors.Wrap(record.ErrInvalidArgument, "deactivate Team: id is required")
	}
	if err := checkContext(ctx, "Deactivate", "Team"); err != nil {
		return record.NotModified, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.teams[teamID]
	if !ok || !item.Active {
		r.logger.WarnContext(ctx, "deactivate matched no active row", "op", "Deactivate", "id", teamID)
		return record.NotModified, nil
	}
	item.Active = false
	item.Stamp(modifiedBy, r.now().UTC())
	r.teams[teamID] = item
	return record.Modified, nil
}

func (r *TeamRepository) AddEmployee(ctx context.Context, teamID, employeeID uuid.UUID) error {
	if teamID == uuid.Nil || employeeID == uuid.Nil {
		return errors.Wrap(record.ErrInvalidArgument, "AddEmployee Employee_Team: both ids are required")
	}
	if err := checkContext(ctx, "AddEmployee", "Team"); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.memberships[membershipKey{employeeID: employeeID, teamID: teamID}] = true
	return nil
}

func (r *TeamRepository) RemoveEmployee(ctx context.Context, teamID, employeeID uuid.UUID) (record.UpdateResult, error) {
	if teamID == uuid.Nil || employeeID == uuid.Nil {
		return record.NotModified, errors.Wrap(record.ErrInvalidArgument, "RemoveEmployee Employee_Team: both ids are required")
	}
	if err := checkContext(ctx, "RemoveEmployee", "Team"); err != nil {
		return record.NotModified, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := membershipKey{employeeID: employeeID, teamID: teamID}
	if !r.memberships[key] {
		return record.NotModified, nil
	}
	r.memberships[key] = false
	return record.Modified, nil
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
