package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/cylserv/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCylinderRepository implements fleet.CylinderRepository using GORM
type GormCylinderRepository struct {
	db *gorm.DB
}

// NewGormCylinderRepository creates a new GormCylinderRepository
func NewGormCylinderRepository(db *gorm.DB) *GormCylinderRepository {
	return &GormCylinderRepository{db: db}
}

// FindByID finds a cylinder by its ID
func (r *GormCylinderRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Cylinder, error) {
	var model models.CylinderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySerial finds a cylinder by its serial
func (r *GormCylinderRepository) FindBySerial(ctx context.Context, serial string) (*fleet.Cylinder, error) {
	var model models.CylinderModel
	if err := r.db.WithContext(ctx).First(&model, "serial = ?", serial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds all cylinders belonging to a customer
func (r *GormCylinderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]fleet.Cylinder, error) {
	var rows []models.CylinderModel
	query := applyFilter(r.db.WithContext(ctx), filter).Where("customer_id = ?", customerID)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainCylinders(rows), nil
}

// FindAll finds cylinders matching the filter
func (r *GormCylinderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Cylinder, error) {
	var rows []models.CylinderModel
	query := applyFilter(r.db.WithContext(ctx), filter)
	if filter.Search != "" {
		query = query.Where("serial LIKE ? OR category LIKE ? OR location LIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainCylinders(rows), nil
}

// FindExpiringBy returns cylinders expiring on or before the cutoff,
// soonest first
func (r *GormCylinderRepository) FindExpiringBy(ctx context.Context, cutoff time.Time) ([]fleet.Cylinder, error) {
	var rows []models.CylinderModel
	if err := r.db.WithContext(ctx).
		Where("expiry_date <= ?", cutoff).
		Order("expiry_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainCylinders(rows), nil
}

// ExistsBySerial checks whether a serial is already taken
func (r *GormCylinderRepository) ExistsBySerial(ctx context.Context, serial string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CylinderModel{}).
		Where("serial = ?", serial).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts or updates a cylinder
func (r *GormCylinderRepository) Save(ctx context.Context, cylinder *fleet.Cylinder) error {
	var model models.CylinderModel
	model.FromDomain(cylinder)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a cylinder by id. Dependent certificate rows cascade.
func (r *GormCylinderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.CylinderModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts cylinders matching the filter
func (r *GormCylinderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CylinderModel{})
	if filter.Search != "" {
		query = query.Where("serial LIKE ? OR category LIKE ? OR location LIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCustomer counts a customer's cylinders
func (r *GormCylinderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CylinderModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainCylinders(rows []models.CylinderModel) []fleet.Cylinder {
	cylinders := make([]fleet.Cylinder, len(rows))
	for i := range rows {
		cylinders[i] = *rows[i].ToDomain()
	}
	return cylinders
}

var _ fleet.CylinderRepository = (*GormCylinderRepository)(nil)
