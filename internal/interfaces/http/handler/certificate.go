package handler

import (
	certapp "github.com/cylserv/backend/internal/application/cert"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CertificateHandler handles gas-certificate endpoints
type CertificateHandler struct {
	BaseHandler
	certificateService *certapp.CertificateService
}

// NewCertificateHandler creates a new CertificateHandler
func NewCertificateHandler(certificateService *certapp.CertificateService) *CertificateHandler {
	return &CertificateHandler{
		certificateService: certificateService,
	}
}

// IssueBatchRequest represents a request to issue one certificate covering
// a set of cylinders of a single customer
type IssueBatchRequest struct {
	CustomerID  string   `json:"customer_id" binding:"required,uuid"`
	CylinderIDs []string `json:"cylinder_ids" binding:"required,min=1,dive,uuid"`
	IssueDate   string   `json:"issue_date"`
	VesselName  string   `json:"vessel_name" binding:"max=200"`
	Tonnage     float64  `json:"tonnage" binding:"gte=0"`
	Flag        string   `json:"flag" binding:"max=100"`
	Port        string   `json:"port" binding:"max=200"`
}

// IssueBatch mints a certificate number and writes one row per cylinder,
// all-or-nothing
func (h *CertificateHandler) IssueBatch(c *gin.Context) {
	var req IssueBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}
	cylinderIDs, err := parseIDs(req.CylinderIDs)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := certapp.IssueBatchRequest{
		CustomerID:  customerID,
		CylinderIDs: cylinderIDs,
		VesselName:  req.VesselName,
		Tonnage:     decimal.NewFromFloat(req.Tonnage),
		Flag:        req.Flag,
		Port:        req.Port,
	}
	if req.IssueDate != "" {
		issueDate, err := parseDate(req.IssueDate)
		if err != nil {
			h.BadRequest(c, "Invalid issue date: "+req.IssueDate)
			return
		}
		appReq.IssueDate = issueDate
	}

	result, err := h.certificateService.IssueBatch(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByNumber retrieves one certificate batch with its voyage metadata
func (h *CertificateHandler) GetByNumber(c *gin.Context) {
	batch, err := h.certificateService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// ListByCustomer returns every certificate row issued to a customer
func (h *CertificateHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	rows, err := h.certificateService.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rows)
}

// DeleteByNumber removes a whole certificate batch
func (h *CertificateHandler) DeleteByNumber(c *gin.Context) {
	deleted, err := h.certificateService.DeleteByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"deleted": deleted})
}
