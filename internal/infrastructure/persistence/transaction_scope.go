package persistence

import (
	"context"

	appcert "github.com/cylserv/backend/internal/application/cert"
	appdocs "github.com/cylserv/backend/internal/application/docs"
	appfleet "github.com/cylserv/backend/internal/application/fleet"
	"github.com/cylserv/backend/internal/domain/cert"
	"github.com/cylserv/backend/internal/domain/docs"
	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/cylserv/backend/internal/domain/numbering"
	"gorm.io/gorm"
)

// GormFleetScope implements the fleet transaction scope using GORM
// transactions. Each Execute call is one atomic allocate-then-insert unit.
type GormFleetScope struct {
	db *gorm.DB
}

// NewGormFleetScope creates a new GormFleetScope
func NewGormFleetScope(db *gorm.DB) *GormFleetScope {
	return &GormFleetScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormFleetScope) Execute(ctx context.Context, fn func(repos appfleet.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormFleetRepositories{tx: tx})
	})
}

type gormFleetRepositories struct {
	tx *gorm.DB
}

// Cylinders returns the cylinder repository scoped to the current transaction
func (r *gormFleetRepositories) Cylinders() fleet.CylinderRepository {
	return NewGormCylinderRepository(r.tx)
}

// Counters returns the counter repository scoped to the current transaction
func (r *gormFleetRepositories) Counters() numbering.CounterRepository {
	return NewGormCounterRepository(r.tx)
}

var _ appfleet.TransactionScope = (*GormFleetScope)(nil)
var _ appfleet.TransactionalRepositories = (*gormFleetRepositories)(nil)

// GormCertScope implements the certificate transaction scope using GORM
// transactions. One Execute call covers the number allocation and every row
// of the batch.
type GormCertScope struct {
	db *gorm.DB
}

// NewGormCertScope creates a new GormCertScope
func NewGormCertScope(db *gorm.DB) *GormCertScope {
	return &GormCertScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormCertScope) Execute(ctx context.Context, fn func(repos appcert.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCertRepositories{tx: tx})
	})
}

type gormCertRepositories struct {
	tx *gorm.DB
}

// Certificates returns the certificate repository scoped to the current transaction
func (r *gormCertRepositories) Certificates() cert.CertificateRepository {
	return NewGormCertificateRepository(r.tx)
}

// Counters returns the counter repository scoped to the current transaction
func (r *gormCertRepositories) Counters() numbering.CounterRepository {
	return NewGormCounterRepository(r.tx)
}

var _ appcert.TransactionScope = (*GormCertScope)(nil)
var _ appcert.TransactionalRepositories = (*gormCertRepositories)(nil)

// GormDocsScope implements the document transaction scope using GORM
// transactions.
type GormDocsScope struct {
	db *gorm.DB
}

// NewGormDocsScope creates a new GormDocsScope
func NewGormDocsScope(db *gorm.DB) *GormDocsScope {
	return &GormDocsScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormDocsScope) Execute(ctx context.Context, fn func(repos appdocs.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormDocsRepositories{tx: tx})
	})
}

type gormDocsRepositories struct {
	tx *gorm.DB
}

// Quotes returns the quote repository scoped to the current transaction
func (r *gormDocsRepositories) Quotes() docs.QuoteRepository {
	return NewGormQuoteRepository(r.tx)
}

// Invoices returns the invoice repository scoped to the current transaction
func (r *gormDocsRepositories) Invoices() docs.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// Counters returns the counter repository scoped to the current transaction
func (r *gormDocsRepositories) Counters() numbering.CounterRepository {
	return NewGormCounterRepository(r.tx)
}

var _ appdocs.TransactionScope = (*GormDocsScope)(nil)
var _ appdocs.TransactionalRepositories = (*gormDocsRepositories)(nil)
