package cert

import (
	"context"

	"github.com/cylserv/backend/internal/domain/cert"
	"github.com/cylserv/backend/internal/domain/numbering"
)

// TransactionScope provides transactional access to the repositories a
// certificate issuance touches. The certificate-number allocation and every
// row of the batch commit in one transaction: issuance is strictly
// all-or-nothing.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the certificate repositories
// bound to the current transaction.
type TransactionalRepositories interface {
	Certificates() cert.CertificateRepository
	Counters() numbering.CounterRepository
}

// NoOpTransactionScope runs the function against fixed repositories without
// a real transaction. Used in tests.
type NoOpTransactionScope struct {
	certificateRepo cert.CertificateRepository
	counterRepo     numbering.CounterRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(certificateRepo cert.CertificateRepository, counterRepo numbering.CounterRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{certificateRepo: certificateRepo, counterRepo: counterRepo}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Certificates returns the certificate repository
func (s *NoOpTransactionScope) Certificates() cert.CertificateRepository {
	return s.certificateRepo
}

// Counters returns the counter repository
func (s *NoOpTransactionScope) Counters() numbering.CounterRepository {
	return s.counterRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
