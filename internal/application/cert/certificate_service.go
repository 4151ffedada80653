package cert

import (
	"context"
	"fmt"
	"time"

	"github.com/cylserv/backend/internal/domain/cert"
	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/cylserv/backend/internal/domain/numbering"
	"github.com/cylserv/backend/internal/domain/partner"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IssueBatchRequest describes one certificate batch: a set of cylinders of
// one customer covered by a single certificate number, sharing the voyage
// metadata.
type IssueBatchRequest struct {
	CustomerID  uuid.UUID
	CylinderIDs []uuid.UUID
	IssueDate   time.Time
	VesselName  string
	Tonnage     decimal.Decimal
	Flag        string
	Port        string
}

// IssueBatchResult carries the minted certificate number and the rows written
type IssueBatchResult struct {
	CertificateNumber string      `json:"certificate_number"`
	CylinderIDs       []uuid.UUID `json:"cylinder_ids"`
	Rows              int         `json:"rows"`
}

// BatchResponse is the read-model view of one certificate batch
type BatchResponse struct {
	CertificateNumber string             `json:"certificate_number"`
	CustomerID        uuid.UUID          `json:"customer_id"`
	IssueDate         time.Time          `json:"issue_date"`
	VesselName        string             `json:"vessel_name,omitempty"`
	Tonnage           decimal.Decimal    `json:"tonnage"`
	Flag              string             `json:"flag,omitempty"`
	Port              string             `json:"port,omitempty"`
	Rows              []cert.Certificate `json:"rows"`
}

// CertificateService coordinates certificate issuance and deletion. Unlike
// bulk cylinder adds, issuance is strictly all-or-nothing: either every row
// of the batch is written under one minted number or none are.
type CertificateService struct {
	scope        TransactionScope
	certRepo     cert.CertificateRepository
	cylinderRepo fleet.CylinderRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(scope TransactionScope, certRepo cert.CertificateRepository, cylinderRepo fleet.CylinderRepository, customerRepo partner.CustomerRepository, logger *zap.Logger) *CertificateService {
	return &CertificateService{
		scope:        scope,
		certRepo:     certRepo,
		cylinderRepo: cylinderRepo,
		customerRepo: customerRepo,
		logger:       logger.Named("cert"),
	}
}

// IssueBatch mints one certificate number and writes one row per cylinder,
// all in a single transaction. Every cylinder must belong to the requested
// customer; a cross-customer batch is rejected before any store write.
func (s *CertificateService) IssueBatch(ctx context.Context, req IssueBatchRequest) (*IssueBatchResult, error) {
	if req.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_CUSTOMER", "A customer must be selected")
	}
	if len(req.CylinderIDs) == 0 {
		return nil, shared.ErrEmptySelection
	}

	exists, err := s.customerRepo.ExistsByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	// Resolve every cylinder up front; a single foreign cylinder rejects
	// the whole request with zero rows written.
	for _, id := range req.CylinderIDs {
		cylinder, err := s.cylinderRepo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve cylinder %s: %w", id, err)
		}
		if cylinder.CustomerID != req.CustomerID {
			return nil, shared.NewDomainError("CROSS_CUSTOMER_BATCH",
				"All cylinders of a certificate must belong to the selected customer")
		}
	}

	issueDate := req.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	meta := cert.VoyageMetadata{
		VesselName: req.VesselName,
		Tonnage:    req.Tonnage,
		Flag:       req.Flag,
		Port:       req.Port,
	}

	var result *IssueBatchResult
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		year := issueDate.Year()
		seq, err := repos.Counters().Next(ctx, numbering.CategoryCertificate, year)
		if err != nil {
			return fmt.Errorf("allocate certificate number: %w", err)
		}
		number := numbering.FormatSerial(numbering.CategoryCertificate, year, seq)

		rows := make([]cert.Certificate, 0, len(req.CylinderIDs))
		for _, cylinderID := range req.CylinderIDs {
			row, err := cert.NewCertificate(number, req.CustomerID, cylinderID, issueDate, meta)
			if err != nil {
				return err
			}
			rows = append(rows, *row)
		}

		if err := repos.Certificates().InsertBatch(ctx, rows); err != nil {
			return fmt.Errorf("insert certificate batch: %w", err)
		}

		result = &IssueBatchResult{
			CertificateNumber: number,
			CylinderIDs:       req.CylinderIDs,
			Rows:              len(rows),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("certificate batch issued",
		zap.String("certificate_number", result.CertificateNumber),
		zap.Int("rows", result.Rows))
	return result, nil
}

// GetByNumber returns one certificate batch
func (s *CertificateService) GetByNumber(ctx context.Context, certificateNumber string) (*BatchResponse, error) {
	rows, err := s.certRepo.FindByNumber(ctx, certificateNumber)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}

	head := rows[0]
	return &BatchResponse{
		CertificateNumber: head.CertificateNumber,
		CustomerID:        head.CustomerID,
		IssueDate:         head.IssueDate,
		VesselName:        head.VesselName,
		Tonnage:           head.Tonnage,
		Flag:              head.Flag,
		Port:              head.Port,
		Rows:              rows,
	}, nil
}

// ListByCustomer returns every certificate row issued to a customer
func (s *CertificateService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]cert.Certificate, error) {
	return s.certRepo.FindByCustomer(ctx, customerID)
}

// DeleteByNumber removes the whole batch sharing the certificate number
func (s *CertificateService) DeleteByNumber(ctx context.Context, certificateNumber string) (int64, error) {
	deleted, err := s.certRepo.DeleteByNumber(ctx, certificateNumber)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, shared.ErrNotFound
	}

	s.logger.Info("certificate batch deleted",
		zap.String("certificate_number", certificateNumber),
		zap.Int64("rows", deleted))
	return deleted, nil
}
