package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/cylserv/backend/internal/domain/numbering"
	"gorm.io/gorm"
)

// GormCounterRepository implements numbering.CounterRepository using GORM.
// It is the only code that touches the counters table.
type GormCounterRepository struct {
	db *gorm.DB
}

// NewGormCounterRepository creates a new GormCounterRepository
func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// Next atomically increments the counter for (category, year) and returns
// the newly issued sequence. The increment is a single in-place UPDATE, so
// the pre-increment value is never observable by another statement; a
// never-seen key is created at value 1. Callers run Next inside the same
// transaction as the insert being numbered.
func (r *GormCounterRepository) Next(ctx context.Context, category numbering.Category, year int) (int, error) {
	if !category.IsValid() {
		return 0, fmt.Errorf("unknown numbering category %q", category)
	}
	if year <= 0 {
		return 0, fmt.Errorf("invalid counter year %d", year)
	}

	res := r.db.WithContext(ctx).
		Model(&numbering.Counter{}).
		Where("category = ? AND year = ?", category, year).
		UpdateColumn("value", gorm.Expr("value + ?", 1))
	if res.Error != nil {
		return 0, fmt.Errorf("increment counter %s/%d: %w", category, year, res.Error)
	}

	if res.RowsAffected == 0 {
		counter := numbering.Counter{Category: category, Year: year, Value: 1}
		if err := r.db.WithContext(ctx).Create(&counter).Error; err != nil {
			return 0, fmt.Errorf("create counter %s/%d: %w", category, year, err)
		}
		return 1, nil
	}

	var counter numbering.Counter
	if err := r.db.WithContext(ctx).
		Where("category = ? AND year = ?", category, year).
		First(&counter).Error; err != nil {
		return 0, fmt.Errorf("read counter %s/%d: %w", category, year, err)
	}
	return counter.Value, nil
}

// Current returns the last issued sequence for (category, year), or 0 when
// no counter exists yet.
func (r *GormCounterRepository) Current(ctx context.Context, category numbering.Category, year int) (int, error) {
	var counter numbering.Counter
	err := r.db.WithContext(ctx).
		Where("category = ? AND year = ?", category, year).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter %s/%d: %w", category, year, err)
	}
	return counter.Value, nil
}

var _ numbering.CounterRepository = (*GormCounterRepository)(nil)
