package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/domain/role"
	"github.com/riskibarqy/org-directory/internal/platform/resilience"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const roleSelectColumns = `r."RoleId", r."Name", r."Description", r."CreatedBy", r."CreatedDate", r."ModifiedBy", r."ModifiedDate", r."Active"`

var roleColumns = []string{"RoleId", "Name", "Description", "CreatedBy", "CreatedDate", "ModifiedBy", "ModifiedDate", "Active"}

var (
	salesRoleID = uuid.MustParse("0b5d8f2e-6d7a-4c1e-9a51-3f2a7f1b0a01")
	opsRoleID   = uuid.MustParse("0b5d8f2e-6d7a-4c1e-9a51-3f2a7f1b0a02")
	userU       = uuid.MustParse("9e0c4b7a-1f2d-4e3c-8b5a-6d7e8f9a0b01")
	createdAt   = time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
)

func salesRole() *role.Role {
	return &role.Role{
		ID:          salesRoleID,
		Name:        "Sales",
		Description: "Sales team members",
		Audit:       record.Audit{CreatedBy: "seed", CreatedDate: createdAt},
		Active:      true,
	}
}

func TestRoleRepository_AddRejectsMissingIdentity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	_, err := repo.Add(context.Background(), nil)
	if !errors.Is(err, record.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for nil role, got %v", err)
	}

	_, err = repo.Add(context.Background(), &role.Role{Name: "Sales"})
	if !errors.Is(err, record.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for nil id, got %v", err)
	}

	_, _, err = repo.Update(context.Background(), &role.Role{Name: "Sales"})
	if !errors.Is(err, record.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument on update, got %v", err)
	}

	assertMockExpectations(t, mock)
}

func TestRoleRepository_AddInsertsActiveRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)
	item := salesRole()
	item.Active = false

	mock.ExpectExec(`INSERT INTO "Role" ("RoleId", "Name", "Description", "CreatedBy", "CreatedDate", "ModifiedBy", "ModifiedDate", "Active") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`).
		WithArgs(salesRoleID, "Sales", "Sales team members", "seed", createdAt, nil, nil, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Add(context.Background(), item)
	require.NoError(t, err)
	require.Same(t, item, got)
	require.False(t, got.Active, "returned entity must be the input as given")
	assertMockExpectations(t, mock)
}

func TestRoleRepository_UpdateReportsModified(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)
	item := salesRole()
	item.Name = "Field Sales"
	item.Stamp("ops", createdAt.Add(time.Hour))

	mock.ExpectExec(`UPDATE "Role" SET "Name" = $1, "Description" = $2, "ModifiedBy" = $3, "ModifiedDate" = $4 WHERE "RoleId" = $5 AND "Active" = $6`).
		WithArgs("Field Sales", "Sales team members", "ops", createdAt.Add(time.Hour), salesRoleID, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, result, err := repo.Update(context.Background(), item)
	require.NoError(t, err)
	require.Equal(t, record.Modified, result)
	require.Same(t, item, got)
	assertMockExpectations(t, mock)
}

func TestRoleRepository_UpdateInactiveRowIsNotModified(t *testing.T) {
	db, mock := newMockDB(t)
	logger, logs := newObservedLogger()
	repo := NewRoleRepository(db, WithLogger(logger))
	item := salesRole()
	before := *item

	mock.ExpectExec(`UPDATE "Role" SET "Name" = $1, "Description" = $2, "ModifiedBy" = $3, "ModifiedDate" = $4 WHERE "RoleId" = $5 AND "Active" = $6`).
		WithArgs("Sales", "Sales team members", nil, nil, salesRoleID, true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	got, result, err := repo.Update(context.Background(), item)
	require.NoError(t, err)
	require.Equal(t, record.NotModified, result)
	require.Equal(t, before, *got)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	require.Equal(t, "Update", warnings[0].ContextMap()["op"])
	assertMockExpectations(t, mock)
}

func TestRoleRepository_GetByName(t *testing.T) {
	query := `SELECT ` + roleSelectColumns + ` FROM "Role" r WHERE r."Name" = $1 AND r."Active" = $2 LIMIT 2`

	t.Run("single match", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRoleRepository(db)

		mock.ExpectQuery(query).
			WithArgs("Sales", true).
			WillReturnRows(sqlmock.NewRows(roleColumns).
				AddRow(salesRoleID.String(), "Sales", "Sales team members", "seed", createdAt, nil, nil, true))

		got, found, err := repo.GetByName(context.Background(), "Sales")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, salesRoleID, got.ID)
		require.Equal(t, "seed", got.CreatedBy)
		require.Empty(t, got.ModifiedBy)
		assertMockExpectations(t, mock)
	})

	t.Run("no match is absent not error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRoleRepository(db)

		mock.ExpectQuery(query).
			WithArgs("Nobody", true).
			WillReturnRows(sqlmock.NewRows(roleColumns))

		_, found, err := repo.GetByName(context.Background(), "Nobody")
		require.NoError(t, err)
		require.False(t, found)
		assertMockExpectations(t, mock)
	})

	t.Run("duplicate names fail", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRoleRepository(db)

		mock.ExpectQuery(query).
			WithArgs("Sales", true).
			WillReturnRows(sqlmock.NewRows(roleColumns).
				AddRow(salesRoleID.String(), "Sales", nil, "seed", createdAt, nil, nil, true).
				AddRow(opsRoleID.String(), "Sales", nil, "seed", createdAt, nil, nil, true))

		_, _, err := repo.GetByName(context.Background(), "Sales")
		require.True(t, errors.Is(err, record.ErrNotUnique), "got %v", err)
		assertMockExpectations(t, mock)
	})
}

func TestRoleRepository_GetByUserIDFiltersEveryRelation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	mock.ExpectQuery(`SELECT `+roleSelectColumns+` FROM "Role" r JOIN "User_Role" ur ON ur."RoleId" = r."RoleId" WHERE ur."UserId" = $1 AND ur."Active" = $2 AND r."Active" = $3`).
		WithArgs(userU, true, true).
		WillReturnRows(sqlmock.NewRows(roleColumns).
			AddRow(salesRoleID.String(), "Sales", nil, "seed", createdAt, "ops", createdAt, true))

	got, err := repo.GetByUserID(context.Background(), userU)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ops", got[0].ModifiedBy)
	assertMockExpectations(t, mock)
}

func TestRoleRepository_GetByUserIDEmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	mock.ExpectQuery(`SELECT `+roleSelectColumns+` FROM "Role" r JOIN "User_Role" ur ON ur."RoleId" = r."RoleId" WHERE ur."UserId" = $1 AND ur."Active" = $2 AND r."Active" = $3`).
		WithArgs(userU, true, true).
		WillReturnRows(sqlmock.NewRows(roleColumns))

	got, err := repo.GetByUserID(context.Background(), userU)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
	assertMockExpectations(t, mock)
}

func TestRoleRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoleRepository(db)

	mock.ExpectQuery(`SELECT ` + roleSelectColumns + ` FROM "Role" r WHERE r."RoleId" = $1 AND r."Active" = $2`).
		WithArgs(opsRoleID, true).
		WillReturnRows(sqlmock.NewRows(roleColumns))

	_, found, err := repo.GetByID(context.Background(), opsRoleID)
	require.NoError(t, err)
	require.False(t, found)
	assertMockExpectations(t, mock)
}

func TestRoleRepository_DeactivateAndEdges(t *testing.T) {
	db, mock := newMockDB(t)
	now := createdAt.Add(48 * time.Hour)
	repo := NewRoleRepository(db, WithClock(func() time.Time { return now }))

	mock.ExpectExec(`INSERT INTO "User_Role" ("UserId", "RoleId", "Active") VALUES ($1, $2, $3) ON CONFLICT ("UserId", "RoleId") DO UPDATE SET "Active" = TRUE`).
		WithArgs(userU, salesRoleID, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "User_Role" SET "Active" = $1 WHERE "UserId" = $2 AND "RoleId" = $3 AND "Active" = $4`).
		WithArgs(false, userU, salesRoleID, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "Role" SET "Active" = $1, "ModifiedBy" = $2, "ModifiedDate" = $3 WHERE "RoleId" = $4 AND "Active" = $5`).
		WithArgs(false, "ops", now, salesRoleID, true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	require.NoError(t, repo.AssignUser(ctx, salesRoleID, userU))

	revoked, err := repo.RevokeUser(ctx, salesRoleID, userU)
	require.NoError(t, err)
	require.Equal(t, record.Modified, revoked)

	deactivated, err := repo.Deactivate(ctx, salesRoleID, "ops")
	require.NoError(t, err)
	require.Equal(t, record.NotModified, deactivated)

	_, err = repo.RevokeUser(ctx, uuid.Nil, userU)
	require.ErrorIs(t, err, record.ErrInvalidArgument)
	assertMockExpectations(t, mock)
}

func TestRoleRepository_InfrastructureFailureIsLoggedAndMarked(t *testing.T) {
	db, mock := newMockDB(t)
	logger, logs := newObservedLogger()
	repo := NewRoleRepository(db, WithLogger(logger))
	driverErr := errors.New("read tcp: connection reset by peer")

	mock.ExpectQuery(`SELECT `+roleSelectColumns+` FROM "Role" r WHERE r."Name" = $1 AND r."Active" = $2 LIMIT 2`).
		WithArgs("Sales", true).
		WillReturnError(driverErr)

	_, _, err := repo.GetByName(context.Background(), "Sales")
	require.Error(t, err)
	require.True(t, crerr.Is(err, record.ErrInfrastructure), "expected infrastructure mark, got %v", err)
	require.True(t, crerr.Is(err, driverErr), "driver error must stay in the chain")
	require.False(t, crerr.Is(err, record.ErrCancelled))

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "GetByName", fields["op"])
	require.Equal(t, "Sales", fields["name"])
	require.Equal(t, "Role", fields["table"])
	assertMockExpectations(t, mock)
}

func TestRoleRepository_Cancellation(t *testing.T) {
	t.Run("cancelled before start issues no query", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRoleRepository(db)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repo.Add(ctx, salesRole())
		require.True(t, crerr.Is(err, record.ErrCancelled), "got %v", err)
		require.True(t, crerr.Is(err, context.Canceled))
		require.False(t, crerr.Is(err, record.ErrInfrastructure))
		assertMockExpectations(t, mock)
	})

	t.Run("driver cancellation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRoleRepository(db)

		mock.ExpectQuery(`SELECT `+roleSelectColumns+` FROM "Role" r JOIN "User_Role" ur ON ur."RoleId" = r."RoleId" WHERE ur."UserId" = $1 AND ur."Active" = $2 AND r."Active" = $3`).
			WithArgs(userU, true, true).
			WillReturnError(&pq.Error{Code: "57014", Message: "canceling statement due to user request"})

		_, err := repo.GetByUserID(context.Background(), userU)
		require.True(t, crerr.Is(err, record.ErrCancelled), "got %v", err)
		assertMockExpectations(t, mock)
	})
}

func TestRoleRepository_CircuitBreakerStopsCallsAfterFailures(t *testing.T) {
	db, mock := newMockDB(t)
	breaker := resilience.NewCircuitBreaker(1, time.Minute, 1)
	repo := NewRoleRepository(db, WithCircuitBreaker(breaker))

	mock.ExpectQuery(`SELECT ` + roleSelectColumns + ` FROM "Role" r WHERE r."RoleId" = $1 AND r."Active" = $2`).
		WithArgs(salesRoleID, true).
		WillReturnError(errors.New("connection refused"))

	_, _, err := repo.GetByID(context.Background(), salesRoleID)
	require.True(t, crerr.Is(err, record.ErrInfrastructure))

	_, _, err = repo.GetByID(context.Background(), salesRoleID)
	require.True(t, crerr.Is(err, resilience.ErrCircuitOpen), "got %v", err)
	require.True(t, crerr.Is(err, record.ErrInfrastructure))
	assertMockExpectations(t, mock)
}

func TestRoleRepository_CancellationDoesNotTripBreaker(t *testing.T) {
	db, mock := newMockDB(t)
	breaker := resilience.NewCircuitBreaker(1, time.Minute, 1)
	repo := NewRoleRepository(db, WithCircuitBreaker(breaker))

	mock.ExpectQuery(`SELECT `+roleSelectColumns+` FROM "Role" r WHERE r."RoleId" = $1 AND r."Active" = $2`).
		WithArgs(salesRoleID, true).
		WillReturnError(context.Canceled)

	_, _, err := repo.GetByID(context.Background(), salesRoleID)
	require.True(t, crerr.Is(err, record.ErrCancelled))
	require.Equal(t, resilience.CircuitStateClosed, breaker.State())
	assertMockExpectations(t, mock)
}
