package fleet

import (
	"context"

	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/cylserv/backend/internal/domain/numbering"
)

// TransactionScope provides transactional access to the repositories a
// fleet mutation touches. Serial allocation and the row insert it numbers
// always run inside one Execute call, so they commit or fail together: a
// crash in between leaves a gap in the sequence, never a duplicate serial.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the fleet repositories bound
// to the current transaction.
type TransactionalRepositories interface {
	Cylinders() fleet.CylinderRepository
	Counters() numbering.CounterRepository
}

// NoOpTransactionScope runs the function against fixed repositories without
// a real transaction. Used in tests.
type NoOpTransactionScope struct {
	cylinderRepo fleet.CylinderRepository
	counterRepo  numbering.CounterRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(cylinderRepo fleet.CylinderRepository, counterRepo numbering.CounterRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{cylinderRepo: cylinderRepo, counterRepo: counterRepo}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Cylinders returns the cylinder repository
func (s *NoOpTransactionScope) Cylinders() fleet.CylinderRepository {
	return s.cylinderRepo
}

// Counters returns the counter repository
func (s *NoOpTransactionScope) Counters() numbering.CounterRepository {
	return s.counterRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
