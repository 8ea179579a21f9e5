package record

import "time"

// Audit carries the bookkeeping columns shared by every directory entity.
type Audit struct {
	CreatedBy    string
	CreatedDate  time.Time
	ModifiedBy   string
	ModifiedDate time.Time
}

// Stamp marks the audit as modified by actor at the given time.
func (a *Audit) Stamp(actor string, at time.Time) {
	a.ModifiedBy = actor
	a.ModifiedDate = at
}

// UpdateResult tells callers whether a write touched a stored row.
type UpdateResult int

const (
	NotModified UpdateResult = iota
	Modified
)

func (r UpdateResult) String() string {
	if r == Modified {
		return "modified"
	}
	return "not_modified"
}

// ResultFromRows converts a rows-affected count into an UpdateResult.
func ResultFromRows(affected int64) UpdateResult {
	if affected > 0 {
		return Modified
	}
	return NotModified
}
