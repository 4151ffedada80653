package models

import (
	"time"

	"github.com/cylserv/backend/internal/domain/cert"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CertificateModel is the persistence model for one certificate row. The
// batch is the set of rows sharing CertificateNumber; the unique index on
// (certificate_number, cylinder_id) keeps a cylinder from appearing twice in
// one batch.
type CertificateModel struct {
	BaseModel
	CertificateNumber string          `gorm:"type:varchar(30);not null;index;uniqueIndex:idx_cert_number_cylinder,priority:1"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CylinderID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cert_number_cylinder,priority:2"`
	IssueDate         time.Time       `gorm:"not null"`
	VesselName        string          `gorm:"type:varchar(200)"`
	Tonnage           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Flag              string          `gorm:"type:varchar(100)"`
	Port              string          `gorm:"type:varchar(100)"`

	Customer *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Cylinder *CylinderModel `gorm:"foreignKey:CylinderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CertificateModel) TableName() string {
	return "certificates"
}

// ToDomain converts the model to the domain entity
func (m *CertificateModel) ToDomain() *cert.Certificate {
	return &cert.Certificate{
		BaseEntity:        m.BaseModel.ToDomain(),
		CertificateNumber: m.CertificateNumber,
		CustomerID:        m.CustomerID,
		CylinderID:        m.CylinderID,
		IssueDate:         m.IssueDate,
		VesselName:        m.VesselName,
		Tonnage:           m.Tonnage,
		Flag:              m.Flag,
		Port:              m.Port,
	}
}

// FromDomain populates the model from the domain entity
func (m *CertificateModel) FromDomain(c *cert.Certificate) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.CertificateNumber = c.CertificateNumber
	m.CustomerID = c.CustomerID
	m.CylinderID = c.CylinderID
	m.IssueDate = c.IssueDate
	m.VesselName = c.VesselName
	m.Tonnage = c.Tonnage
	m.Flag = c.Flag
	m.Port = c.Port
}
