package persistence

import (
	"context"

	"github.com/cylserv/backend/internal/domain/cert"
	"github.com/cylserv/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCertificateRepository implements cert.CertificateRepository using GORM
type GormCertificateRepository struct {
	db *gorm.DB
}

// NewGormCertificateRepository creates a new GormCertificateRepository
func NewGormCertificateRepository(db *gorm.DB) *GormCertificateRepository {
	return &GormCertificateRepository{db: db}
}

// InsertBatch persists every row of one certificate batch
func (r *GormCertificateRepository) InsertBatch(ctx context.Context, rows []cert.Certificate) error {
	if len(rows) == 0 {
		return nil
	}
	batch := make([]models.CertificateModel, len(rows))
	for i := range rows {
		batch[i].FromDomain(&rows[i])
	}
	return r.db.WithContext(ctx).Create(&batch).Error
}

// FindByNumber returns every row sharing the certificate number
func (r *GormCertificateRepository) FindByNumber(ctx context.Context, certificateNumber string) ([]cert.Certificate, error) {
	var rows []models.CertificateModel
	if err := r.db.WithContext(ctx).
		Where("certificate_number = ?", certificateNumber).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainCertificates(rows), nil
}

// FindByCustomer returns every certificate row issued to a customer
func (r *GormCertificateRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]cert.Certificate, error) {
	var rows []models.CertificateModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("issue_date DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainCertificates(rows), nil
}

// DeleteByNumber removes the whole batch sharing the certificate number
func (r *GormCertificateRepository) DeleteByNumber(ctx context.Context, certificateNumber string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("certificate_number = ?", certificateNumber).
		Delete(&models.CertificateModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// CountBatchesByCustomer counts distinct certificate numbers issued to a customer
func (r *GormCertificateRepository) CountBatchesByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CertificateModel{}).
		Where("customer_id = ?", customerID).
		Distinct("certificate_number").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainCertificates(rows []models.CertificateModel) []cert.Certificate {
	certificates := make([]cert.Certificate, len(rows))
	for i := range rows {
		certificates[i] = *rows[i].ToDomain()
	}
	return certificates
}

var _ cert.CertificateRepository = (*GormCertificateRepository)(nil)
