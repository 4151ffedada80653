package models

import (
	"time"

	"github.com/cylserv/backend/internal/domain/docs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteModel is the persistence model for quotes
type QuoteModel struct {
	BaseModel
	QuoteNumber string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	IssueDate   time.Time       `gorm:"not null"`
	Total       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Notes       string          `gorm:"type:text"`

	Customer *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (QuoteModel) TableName() string {
	return "quotes"
}

// ToDomain converts the model to the domain entity
func (m *QuoteModel) ToDomain() *docs.Quote {
	return &docs.Quote{
		BaseEntity:  m.BaseModel.ToDomain(),
		QuoteNumber: m.QuoteNumber,
		CustomerID:  m.CustomerID,
		IssueDate:   m.IssueDate,
		Total:       m.Total,
		Notes:       m.Notes,
	}
}

// FromDomain populates the model from the domain entity
func (m *QuoteModel) FromDomain(q *docs.Quote) {
	m.FromDomainBaseEntity(q.BaseEntity)
	m.QuoteNumber = q.QuoteNumber
	m.CustomerID = q.CustomerID
	m.IssueDate = q.IssueDate
	m.Total = q.Total
	m.Notes = q.Notes
}

// InvoiceModel is the persistence model for invoices
type InvoiceModel struct {
	BaseModel
	InvoiceNumber string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	IssueDate     time.Time       `gorm:"not null"`
	Total         decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Paid          bool            `gorm:"not null;default:false"`
	Notes         string          `gorm:"type:text"`

	Customer *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the model to the domain entity
func (m *InvoiceModel) ToDomain() *docs.Invoice {
	return &docs.Invoice{
		BaseEntity:    m.BaseModel.ToDomain(),
		InvoiceNumber: m.InvoiceNumber,
		CustomerID:    m.CustomerID,
		IssueDate:     m.IssueDate,
		Total:         m.Total,
		Paid:          m.Paid,
		Notes:         m.Notes,
	}
}

// FromDomain populates the model from the domain entity
func (m *InvoiceModel) FromDomain(i *docs.Invoice) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.InvoiceNumber = i.InvoiceNumber
	m.CustomerID = i.CustomerID
	m.IssueDate = i.IssueDate
	m.Total = i.Total
	m.Paid = i.Paid
	m.Notes = i.Notes
}
