package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/org-directory/internal/domain/record"
	"github.com/riskibarqy/org-directory/internal/platform/logging"
	qb "github.com/riskibarqy/org-directory/internal/platform/querybuilder"
	"github.com/riskibarqy/org-directory/internal/platform/resilience"
	"go.opentelemetry.io/otel/codes"
)

// ConnectionProvider hands out one connection per unit of work. *sqlx.DB
// satisfies it.
type ConnectionProvider interface {
	Connx(ctx context.Context) (*sqlx.Conn, error)
}

type Option func(*Base)

func WithLogger(logger *logging.Logger) Option {
	return func(b *Base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithCircuitBreaker guards every call with breaker. A nil breaker disables
// the guard.
func WithCircuitBreaker(breaker *resilience.CircuitBreaker) Option {
	return func(b *Base) {
		b.breaker = breaker
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Base) {
		if now != nil {
			b.now = now
		}
	}
}

// Base is the shared skeleton of the entity repositories: table metadata
// plus the execute helper every query goes through.
type Base struct {
	conns   ConnectionProvider
	mapping Mapping
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
	now     func() time.Time
}

func newBase(conns ConnectionProvider, mapping Mapping, opts ...Option) Base {
	b := Base{
		conns:   conns,
		mapping: mapping,
		logger:  logging.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.logger = b.logger.Named("repository").With("table", mapping.Table)
	return b
}

func (b *Base) Mapping() Mapping {
	return b.mapping
}

// execute runs fn on a dedicated connection. Failures are logged with op and
// fields, then returned marked as record.ErrCancelled or
// record.ErrInfrastructure with the driver error kept in the chain.
func (b *Base) execute(ctx context.Context, op string, fields []any, fn func(context.Context, *sqlx.Conn) error) error {
	ctx, span := startRepositorySpan(ctx, b.mapping.Table+"."+op)
	defer span.End()

	if err := ctx.Err(); err != nil {
		b.logger.WarnContext(ctx, "repository call cancelled before start", logFields(op, fields, err)...)
		return errors.Mark(errors.Wrapf(err, "%s %s", op, b.mapping.Table), record.ErrCancelled)
	}

	run := func() error {
		conn, err := b.conns.Connx(ctx)
		if err != nil {
			return fmt.Errorf("acquire connection: %w", err)
		}
		defer func() {
			_ = conn.Close()
		}()
		return fn(ctx, conn)
	}

	var err error
	if b.breaker != nil {
		err = b.breaker.Do(run, func(err error) bool { return !isCancellation(err) && !isUniqueViolation(err) })
	} else {
		err = run()
	}
	if err == nil {
		return nil
	}

	span.RecordError(err)
	if isCancellation(err) {
		b.logger.WarnContext(ctx, "repository call cancelled", logFields(op, fields, err)...)
		return errors.Mark(errors.Wrapf(err, "%s %s", op, b.mapping.Table), record.ErrCancelled)
	}

	span.SetStatus(codes.Error, err.Error())
	b.logger.ErrorContext(ctx, "repository call failed", logFields(op, fields, err)...)
	marked := errors.Mark(errors.Wrapf(err, "%s %s", op, b.mapping.Table), record.ErrInfrastructure)
	if isUniqueViolation(err) {
		marked = errors.Mark(marked, record.ErrDuplicateID)
	}
	return marked
}

func logFields(op string, fields []any, err error) []any {
	out := make([]any, 0, len(fields)+4)
	out = append(out, "op", op)
	out = append(out, fields...)
	if err != nil {
		out = append(out, "error", err)
	}
	return out
}

// getByID loads the active row with the given id into M.
func getByID[M any](ctx context.Context, b *Base, id uuid.UUID) (M, bool, error) {
	var row M
	m := b.mapping
	query, args, err := qb.Select(m.selectColumns()...).
		From(m.from()).
		Where(
			qb.Eq(m.col(m.IDColumn), id),
			qb.Eq(m.col(m.ActiveColumn), true),
		).
		ToSQL()
	if err != nil {
		return row, false, fmt.Errorf("build get %s by id query: %w", m.Table, err)
	}

	found := true
	err = b.execute(ctx, "GetByID", []any{"id", id}, func(ctx context.Context, conn *sqlx.Conn) error {
		if err := conn.GetContext(ctx, &row, query, args...); err != nil {
			if isNotFound(err) {
				found = false
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return row, false, err
	}
	return row, found, nil
}

// deactivate flips the active flag off. It is the only removal path.
func (b *Base) deactivate(ctx context.Context, id uuid.UUID, modifiedBy string) (record.UpdateResult, error) {
	if id == uuid.Nil {
		return record.NotModified, errors.Wrapf(record.ErrInvalidArgument, "deactivate %s: id is required", b.mapping.Table)
	}

	m := b.mapping
	query, args, err := qb.Update(m.tableName()).
		Set(qb.Ident(m.ActiveColumn), false).
		Set(qb.Ident("ModifiedBy"), nullString(modifiedBy)).
		Set(qb.Ident("ModifiedDate"), b.now().UTC()).
		Where(
			qb.Eq(qb.Ident(m.IDColumn), id),
			qb.Eq(qb.Ident(m.ActiveColumn), true),
		).
		ToSQL()
	if err != nil {
		return record.NotModified, fmt.Errorf("build deactivate %s query: %w", m.Table, err)
	}

	fields := []any{"id", id}
	affected, err := b.execAffected(ctx, "Deactivate", fields, query, args)
	if err != nil {
		return record.NotModified, err
	}
	result := record.ResultFromRows(affected)
	if result == record.NotModified {
		b.logger.WarnContext(ctx, "deactivate matched no active row", logFields("Deactivate", fields, nil)...)
	}
	return result, nil
}

// execAffected runs a write and returns the rows-affected count.
func (b *Base) execAffected(ctx context.Context, op string, fields []any, query string, args []any) (int64, error) {
	var affected int64
	err := b.execute(ctx, op, fields, func(ctx context.Context, conn *sqlx.Conn) error {
		result, err := conn.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	return affected, err
}

// activateEdge inserts an active edge or reactivates an existing one.
func (b *Base) activateEdge(ctx context.Context, op string, edge edgeMapping, left, right uuid.UUID) error {
	if left == uuid.Nil || right == uuid.Nil {
		return errors.Wrapf(record.ErrInvalidArgument, "%s %s: both ids are required", op, edge.Table)
	}

	query, args, err := qb.InsertInto(qb.Ident(edge.Table)).
		Columns(qb.Ident(edge.LeftColumn), qb.Ident(edge.RightColumn), qb.Ident(edge.ActiveColumn)).
		Values(left, right, true).
		Suffix(fmt.Sprintf("ON CONFLICT (%s, %s) DO UPDATE SET %s = TRUE",
			qb.Ident(edge.LeftColumn), qb.Ident(edge.RightColumn), qb.Ident(edge.ActiveColumn))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build %s upsert query: %w", edge.Table, err)
	}

	_, err = b.execAffected(ctx, op, []any{edge.LeftColumn, left, edge.RightColumn, right}, query, args)
	return err
}

// deactivateEdge soft-deletes an active edge.
func (b *Base) deactivateEdge(ctx context.Context, op string, edge edgeMapping, left, right uuid.UUID) (record.UpdateResult, error) {
	if left == uuid.Nil || right == uuid.Nil {
		return record.NotModified, errors.Wrapf(record.ErrInvalidArgument, "%s %s: both ids are required", op, edge.Table)
	}

	query, args, err := qb.Update(qb.Ident(edge.Table)).
		Set(qb.Ident(edge.ActiveColumn), false).
		Where(
			qb.Eq(qb.Ident(edge.LeftColumn), left),
			qb.Eq(qb.Ident(edge.RightColumn), right),
			qb.Eq(qb.Ident(edge.ActiveColumn), true),
		).
		ToSQL()
	if err != nil {
		return record.NotModified, fmt.Errorf("build %s deactivate query: %w", edge.Table, err)
	}

	affected, err := b.execAffected(ctx, op, []any{edge.LeftColumn, left, edge.RightColumn, right}, query, args)
	if err != nil {
		return record.NotModified, err
	}
	return record.ResultFromRows(affected), nil
}
