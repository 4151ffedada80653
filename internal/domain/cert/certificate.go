package cert

import (
	"strings"
	"time"

	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoyageMetadata is the free-form vessel detail block the caller supplies
// for a certificate batch. It is shared verbatim by every row of the batch.
type VoyageMetadata struct {
	VesselName string
	Tonnage    decimal.Decimal
	Flag       string
	Port       string
}

// Certificate is one row of a certificate batch: the coverage of a single
// cylinder under one certificate number. The batch is the set of rows
// sharing the number; it is issued atomically and deleted as a unit, always
// by number, never by per-row id.
type Certificate struct {
	shared.BaseEntity
	CertificateNumber string
	CustomerID        uuid.UUID
	CylinderID        uuid.UUID
	IssueDate         time.Time
	VesselName        string
	Tonnage           decimal.Decimal
	Flag              string
	Port              string
}

// NewCertificate creates one coverage row for a batch
func NewCertificate(number string, customerID, cylinderID uuid.UUID, issueDate time.Time, meta VoyageMetadata) (*Certificate, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("MISSING_NUMBER", "Certificate number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_CUSTOMER", "Certificate must reference a customer")
	}
	if cylinderID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_CYLINDER", "Certificate must reference a cylinder")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	return &Certificate{
		BaseEntity:        shared.NewBaseEntity(),
		CertificateNumber: strings.TrimSpace(number),
		CustomerID:        customerID,
		CylinderID:        cylinderID,
		IssueDate:         issueDate,
		VesselName:        strings.TrimSpace(meta.VesselName),
		Tonnage:           meta.Tonnage,
		Flag:              strings.TrimSpace(meta.Flag),
		Port:              strings.TrimSpace(meta.Port),
	}, nil
}
