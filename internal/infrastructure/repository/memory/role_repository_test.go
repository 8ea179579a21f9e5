package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/role"
	"github.com/riskibarqy/org-directory/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newRoleRepo(t *testing.T) *RoleRepository {
	t.Helper()
	seed := SeedDirectory()
	return NewRoleRepository(logging.NewNop(), seed.Roles, seed.Assignments)
}

func TestRoleRepository_AddThenGetByName(t *testing.T) {
	t.Parallel()

	repo := NewRoleRepository(logging.NewNop(), nil, nil)
	ctx := context.Background()
	r1 := uuid.New()
	item := &role.Role{
		ID:     r1,
		Name:   "Sales",
		Audit:  record.Audit{CreatedBy: "u1", CreatedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Active: true,
	}

	if _, err := repo.Add(ctx, item); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, found, err := repo.GetByName(ctx, "Sales")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if !found || got.ID != r1 || !got.Active {
		t.Fatalf("unexpected role: found=%v role=%+v", found, got)
	}
}

func TestRoleRepository_AddDuplicateIDFails(t *testing.T) {
	t.Parallel()

	repo := newRoleRepo(t)
	_, err := repo.Add(context.Background(), &role.Role{ID: RoleIDAdmin, Name: "Again"})
	if !errors.Is(err, record.ErrInfrastructure) || !errors.Is(err, record.ErrDuplicateID) {
		t.Fatalf("expected duplicate id infrastructure error, got %v", err)
	}
}

func TestRoleRepository_InvalidInput(t *testing.T) {
	t.Parallel()

	repo := newRoleRepo(t)
	ctx := context.Background()

	if _, err := repo.Add(ctx, nil); !errors.Is(err, record.ErrInvalidArgument) {
		t.Fatalf("Add(nil) error = %v", err)
	}
	if _, _, err := repo.Update(ctx, &role.Role{}); !errors.Is(err, record.ErrInvalidArgument) {
		t.Fatalf("Update(nil id) error = %v", err)
	}
	if err := repo.AssignUser(ctx, uuid.Nil, UserIDAlice); !errors.Is(err, record.ErrInvalidArgument) {
		t.Fatalf("AssignUser(nil role) error = %v", err)
	}
}

func TestRoleRepository_UpdateDeactivatedRoleIsNotModified(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	seed := SeedDirectory()
	repo := NewRoleRepository(logging.FromZap(zap.New(core)), seed.Roles, seed.Assignments)
	ctx := context.Background()

	result, err := repo.Deactivate(ctx, RoleIDAuditor, "admin")
	if err != nil || result != record.Modified {
		t.Fatalf("Deactivate() = %v, %v", result, err)
	}

	_, result, err = repo.Update(ctx, &role.Role{ID: RoleIDAuditor, Name: "Reviewer"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if result != record.NotModified {
		t.Fatalf("Update() result = %v, want NotModified", result)
	}
	if logs.FilterMessage("update matched no active role").Len() != 1 {
		t.Fatalf("expected a warning for the unmatched update, got %v", logs.All())
	}
	if _, found, _ := repo.GetByName(ctx, "Auditor"); found {
		t.Fatalf("deactivated role must not be found by name")
	}
}

func TestRoleRepository_UpdateKeepsCreatedAudit(t *testing.T) {
	t.Parallel()

	repo := newRoleRepo(t)
	ctx := context.Background()
	modifiedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	update := &role.Role{ID: RoleIDAdmin, Name: "Admin", Description: "Renamed"}
	update.Stamp("bob", modifiedAt)
	update.CreatedBy = "someone-else"

	_, result, err := repo.Update(ctx, update)
	if err != nil || result != record.Modified {
		t.Fatalf("Update() = %v, %v", result, err)
	}

	got, found, err := repo.GetByID(ctx, RoleIDAdmin)
	if err != nil || !found {
		t.Fatalf("GetByID() = %v, %v", found, err)
	}
	if got.Name != "Admin" || got.ModifiedBy != "bob" || !got.ModifiedDate.Equal(modifiedAt) {
		t.Fatalf("mutable fields not applied: %+v", got)
	}
	if got.CreatedBy != "seed" {
		t.Fatalf("created audit must not change, got %q", got.CreatedBy)
	}
}

func TestRoleRepository_GetByNameNotUnique(t *testing.T) {
	t.Parallel()

	repo := NewRoleRepository(logging.NewNop(), []role.Role{
		{ID: uuid.New(), Name: "Ops", Active: true},
		{ID: uuid.New(), Name: "Ops", Active: true},
		{ID: uuid.New(), Name: "Dev", Active: false},
	}, nil)

	if _, _, err := repo.GetByName(context.Background(), "Ops"); !errors.Is(err, record.ErrNotUnique) {
		t.Fatalf("expected not unique, got %v", err)
	}
	if _, found, err := repo.GetByName(context.Background(), "Dev"); err != nil || found {
		t.Fatalf("inactive role must be absent: found=%v err=%v", found, err)
	}
}

func TestRoleRepository_GetByUserIDFollowsActiveEdges(t *testing.T) {
	t.Parallel()

	repo := newRoleRepo(t)
	ctx := context.Background()

	if err := repo.AssignUser(ctx, RoleIDAuditor, UserIDAlice); err != nil {
		t.Fatalf("AssignUser() error = %v", err)
	}
	roles, err := repo.GetByUserID(ctx, UserIDAlice)
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if len(roles) != 2 || roles[0].Name != "Administrator" || roles[1].Name != "Auditor" {
		t.Fatalf("unexpected roles %+v", roles)
	}

	result, err := repo.RevokeUser(ctx, RoleIDAdmin, UserIDAlice)
	if err != nil || result != record.Modified {
		t.Fatalf("RevokeUser() = %v, %v", result, err)
	}
	result, err = repo.RevokeUser(ctx, RoleIDAdmin, UserIDAlice)
	if err != nil || result != record.NotModified {
		t.Fatalf("second RevokeUser() = %v, %v", result, err)
	}

	roles, err = repo.GetByUserID(ctx, UserIDAlice)
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if len(roles) != 1 || roles[0].ID != RoleIDAuditor {
		t.Fatalf("revoked edge must drop the role, got %+v", roles)
	}

	none, err := repo.GetByUserID(ctx, uuid.New())
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("unknown user must yield empty list, got %v %v", none, err)
	}
}

func TestRoleRepository_CancelledContext(t *testing.T) {
	t.Parallel()

	repo := newRoleRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := repo.GetByName(ctx, "Administrator")
	if !errors.Is(err, record.ErrCancelled) {
		t.Fatalf("expected cancelled, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}
