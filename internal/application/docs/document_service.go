package docs

import (
	"context"
	"fmt"
	"time"

	"github.com/cylserv/backend/internal/domain/docs"
	"github.com/cylserv/backend/internal/domain/numbering"
	"github.com/cylserv/backend/internal/domain/partner"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateDocumentRequest carries the fields shared by quotes and invoices
type CreateDocumentRequest struct {
	CustomerID uuid.UUID
	IssueDate  time.Time
	Total      decimal.Decimal
	Notes      string
}

// DocumentService handles quotes and invoices. Each create mints the
// document number for the issue year in the same transaction as the insert.
type DocumentService struct {
	scope        TransactionScope
	quoteRepo    docs.QuoteRepository
	invoiceRepo  docs.InvoiceRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(scope TransactionScope, quoteRepo docs.QuoteRepository, invoiceRepo docs.InvoiceRepository, customerRepo partner.CustomerRepository, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		scope:        scope,
		quoteRepo:    quoteRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		logger:       logger.Named("docs"),
	}
}

// CreateQuote mints a quote number and inserts the quote atomically
func (s *DocumentService) CreateQuote(ctx context.Context, req CreateDocumentRequest) (*docs.Quote, error) {
	if err := s.requireCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	issueDate := defaultedDate(req.IssueDate)

	var quote *docs.Quote
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		year := issueDate.Year()
		seq, err := repos.Counters().Next(ctx, numbering.CategoryQuote, year)
		if err != nil {
			return fmt.Errorf("allocate quote number: %w", err)
		}
		number := numbering.FormatSerial(numbering.CategoryQuote, year, seq)

		quote, err = docs.NewQuote(number, req.CustomerID, issueDate, req.Total, req.Notes)
		if err != nil {
			return err
		}
		return repos.Quotes().Save(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quote created", zap.String("number", quote.QuoteNumber))
	return quote, nil
}

// CreateInvoice mints an invoice number and inserts the invoice atomically
func (s *DocumentService) CreateInvoice(ctx context.Context, req CreateDocumentRequest) (*docs.Invoice, error) {
	if err := s.requireCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	issueDate := defaultedDate(req.IssueDate)

	var invoice *docs.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		year := issueDate.Year()
		seq, err := repos.Counters().Next(ctx, numbering.CategoryInvoice, year)
		if err != nil {
			return fmt.Errorf("allocate invoice number: %w", err)
		}
		number := numbering.FormatSerial(numbering.CategoryInvoice, year, seq)

		invoice, err = docs.NewInvoice(number, req.CustomerID, issueDate, req.Total, req.Notes)
		if err != nil {
			return err
		}
		return repos.Invoices().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice created", zap.String("number", invoice.InvoiceNumber))
	return invoice, nil
}

// MarkInvoicePaid flags an invoice as settled
func (s *DocumentService) MarkInvoicePaid(ctx context.Context, id uuid.UUID) (*docs.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.MarkPaid()
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListQuotesByCustomer returns a customer's quotes
func (s *DocumentService) ListQuotesByCustomer(ctx context.Context, customerID uuid.UUID) ([]docs.Quote, error) {
	return s.quoteRepo.FindByCustomer(ctx, customerID)
}

// ListInvoicesByCustomer returns a customer's invoices
func (s *DocumentService) ListInvoicesByCustomer(ctx context.Context, customerID uuid.UUID) ([]docs.Invoice, error) {
	return s.invoiceRepo.FindByCustomer(ctx, customerID)
}

// DeleteQuote removes one quote by id
func (s *DocumentService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	return s.quoteRepo.Delete(ctx, id)
}

// DeleteInvoice removes one invoice by id
func (s *DocumentService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}

func (s *DocumentService) requireCustomer(ctx context.Context, customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("MISSING_CUSTOMER", "A customer must be selected")
	}
	exists, err := s.customerRepo.ExistsByID(ctx, customerID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return nil
}

func defaultedDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
