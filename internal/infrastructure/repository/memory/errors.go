package memory

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/org-directory/internal/domain/record"
)

// checkContext fails with record.ErrCancelled once the caller has given up,
// matching what the SQL repositories report.
func checkContext(ctx context.Context, op, table string) error {
	if err := ctx.Err(); err != nil {
		return errors.Mark(errors.Wrapf(err, "%s %s", op, table), record.ErrCancelled)
	}
	return nil
}
