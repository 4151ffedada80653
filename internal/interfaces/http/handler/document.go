package handler

import (
	docsapp "github.com/cylserv/backend/internal/application/docs"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentHandler handles quote and invoice endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *docsapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *docsapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// CreateDocumentRequest represents a request to create a quote or invoice
type CreateDocumentRequest struct {
	CustomerID string  `json:"customer_id" binding:"required,uuid"`
	IssueDate  string  `json:"issue_date"`
	Total      float64 `json:"total" binding:"gte=0"`
	Notes      string  `json:"notes"`
}

func (h *DocumentHandler) bindCreate(c *gin.Context) (*docsapp.CreateDocumentRequest, bool) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return nil, false
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return nil, false
	}

	appReq := docsapp.CreateDocumentRequest{
		CustomerID: customerID,
		Total:      decimal.NewFromFloat(req.Total),
		Notes:      req.Notes,
	}
	if req.IssueDate != "" {
		issueDate, err := parseDate(req.IssueDate)
		if err != nil {
			h.BadRequest(c, "Invalid issue date: "+req.IssueDate)
			return nil, false
		}
		appReq.IssueDate = issueDate
	}
	return &appReq, true
}

// CreateQuote mints a quote number and creates the quote
func (h *DocumentHandler) CreateQuote(c *gin.Context) {
	appReq, ok := h.bindCreate(c)
	if !ok {
		return
	}

	quote, err := h.documentService.CreateQuote(c.Request.Context(), *appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, quote)
}

// CreateInvoice mints an invoice number and creates the invoice
func (h *DocumentHandler) CreateInvoice(c *gin.Context) {
	appReq, ok := h.bindCreate(c)
	if !ok {
		return
	}

	invoice, err := h.documentService.CreateInvoice(c.Request.Context(), *appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// MarkInvoicePaid flips an invoice to paid
func (h *DocumentHandler) MarkInvoicePaid(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.documentService.MarkInvoicePaid(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ListQuotesByCustomer returns a customer's quotes
func (h *DocumentHandler) ListQuotesByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	quotes, err := h.documentService.ListQuotesByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotes)
}

// ListInvoicesByCustomer returns a customer's invoices
func (h *DocumentHandler) ListInvoicesByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	invoices, err := h.documentService.ListInvoicesByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoices)
}

// DeleteQuote removes a quote
func (h *DocumentHandler) DeleteQuote(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quote ID format")
		return
	}

	if err := h.documentService.DeleteQuote(c.Request.Context(), quoteID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteInvoice removes an invoice
func (h *DocumentHandler) DeleteInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	if err := h.documentService.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
