package numbering

import (
	"context"
	"time"
)

// Counter is the per-(category, year) monotonic sequence state. Value is the
// last issued sequence for the key; it only ever grows and is never reused.
// Counters are created lazily on the first allocation for a new key and are
// mutated exclusively through CounterRepository.Next inside the transaction
// that persists the row(s) being numbered.
type Counter struct {
	Category  Category `gorm:"primaryKey;type:varchar(20)"`
	Year      int      `gorm:"primaryKey"`
	Value     int      `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Counter) TableName() string {
	return "counters"
}

// NextValue returns the sequence a fresh allocation against this counter
// would yield.
func (c *Counter) NextValue() int {
	return c.Value + 1
}

// CounterRepository is the single mutation path for counters. Every
// increment in the system goes through Next; there is no ad hoc counter SQL
// at call sites.
type CounterRepository interface {
	// Next atomically increments the counter for (category, year) and
	// returns the newly issued sequence, starting at 1 for a never-seen
	// key. It must run inside the same transaction as the insert of the
	// row(s) being numbered: a crash between the two leaves a gap in the
	// sequence, never a duplicate.
	Next(ctx context.Context, category Category, year int) (int, error)

	// Current returns the last issued sequence for (category, year), or 0
	// when the counter does not exist yet. Read-only.
	Current(ctx context.Context, category Category, year int) (int, error)
}
