package persistence

import (
	"context"
	"errors"

	"github.com/cylserv/backend/internal/domain/cert"
	"github.com/cylserv/backend/internal/domain/docs"
	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/cylserv/backend/internal/domain/partner"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/cylserv/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var rows []models.CustomerModel
	query := applyFilter(r.db.WithContext(ctx), filter)
	if filter.Search != "" {
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ? OR vessel_name LIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	customers := make([]partner.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, nil
}

// ExistsByID checks whether a customer exists
func (r *GormCustomerRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	var model models.CustomerModel
	model.FromDomain(customer)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a customer by id. Callers must run the relation guard
// first; this method does not re-check.
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CustomerModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ? OR vessel_name LIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)

// GormRelationCounter counts the rows referencing a customer across the
// cylinder, quote, invoice, and certificate tables, delegating to each
// repository's own count. Certificate rows are counted as distinct batches,
// matching what the user sees as "a certificate".
type GormRelationCounter struct {
	cylinders    fleet.CylinderRepository
	quotes       docs.QuoteRepository
	invoices     docs.InvoiceRepository
	certificates cert.CertificateRepository
}

// NewGormRelationCounter creates a relation counter over the GORM repositories
func NewGormRelationCounter(db *gorm.DB) *GormRelationCounter {
	return &GormRelationCounter{
		cylinders:    NewGormCylinderRepository(db),
		quotes:       NewGormQuoteRepository(db),
		invoices:     NewGormInvoiceRepository(db),
		certificates: NewGormCertificateRepository(db),
	}
}

// CountRelations returns the itemized dependent-row counts for a customer
func (r *GormRelationCounter) CountRelations(ctx context.Context, customerID uuid.UUID) (shared.RelationCounts, error) {
	var counts shared.RelationCounts
	var err error

	if counts.Tubes, err = r.cylinders.CountByCustomer(ctx, customerID); err != nil {
		return shared.RelationCounts{}, err
	}
	if counts.Quotes, err = r.quotes.CountByCustomer(ctx, customerID); err != nil {
		return shared.RelationCounts{}, err
	}
	if counts.Invoices, err = r.invoices.CountByCustomer(ctx, customerID); err != nil {
		return shared.RelationCounts{}, err
	}
	if counts.Certificates, err = r.certificates.CountBatchesByCustomer(ctx, customerID); err != nil {
		return shared.RelationCounts{}, err
	}
	return counts, nil
}

var _ partner.RelationCounter = (*GormRelationCounter)(nil)
