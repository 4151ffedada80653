package docs

import (
	"context"

	"github.com/cylserv/backend/internal/domain/docs"
	"github.com/cylserv/backend/internal/domain/numbering"
)

// TransactionScope provides transactional access to the document
// repositories. Document numbers are minted in the same transaction as the
// insert they belong to.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the document repositories
// bound to the current transaction.
type TransactionalRepositories interface {
	Quotes() docs.QuoteRepository
	Invoices() docs.InvoiceRepository
	Counters() numbering.CounterRepository
}
