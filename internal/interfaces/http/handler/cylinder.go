package handler

import (
	"net/http"
	"time"

	fleetapp "github.com/cylserv/backend/internal/application/fleet"
	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/cylserv/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for calendar dates. Fill and expiry dates
// carry no meaningful time of day.
const dateLayout = "2006-01-02"

// CylinderHandler handles cylinder fleet endpoints
type CylinderHandler struct {
	BaseHandler
	cylinderService *fleetapp.CylinderService
}

// NewCylinderHandler creates a new CylinderHandler
func NewCylinderHandler(cylinderService *fleetapp.CylinderService) *CylinderHandler {
	return &CylinderHandler{
		cylinderService: cylinderService,
	}
}

// AddCylinderRequest represents a request to register a single cylinder
type AddCylinderRequest struct {
	CustomerID   string  `json:"customer_id" binding:"required,uuid"`
	Category     string  `json:"category" binding:"required,min=1,max=100"`
	Weight       float64 `json:"weight" binding:"gte=0"`
	FillDate     string  `json:"fill_date" binding:"required"`
	ExpiryDate   string  `json:"expiry_date"`
	ManualSerial string  `json:"manual_serial" binding:"max=50"`
	Location     string  `json:"location" binding:"max=200"`
}

// BulkAddLineRequest is one line of a bulk registration cart
type BulkAddLineRequest struct {
	Category     string  `json:"category" binding:"required,min=1,max=100"`
	Weight       float64 `json:"weight" binding:"gte=0"`
	FillDate     string  `json:"fill_date" binding:"required"`
	ExpiryDate   string  `json:"expiry_date"`
	ManualSerial string  `json:"manual_serial" binding:"max=50"`
	Quantity     int     `json:"quantity" binding:"omitempty,min=1,max=500"`
}

// BulkAddRequest represents a bulk registration cart for one customer
type BulkAddRequest struct {
	CustomerID string               `json:"customer_id" binding:"required,uuid"`
	Lines      []BulkAddLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// IDListRequest carries the cylinder IDs of a bulk delete
type IDListRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// BulkRefillRequest carries the cylinder IDs and the shared new fill date
type BulkRefillRequest struct {
	IDs      []string `json:"ids" binding:"required,min=1,dive,uuid"`
	FillDate string   `json:"fill_date" binding:"required"`
}

// Add registers a single cylinder, minting its serial unless one is supplied
func (h *CylinderHandler) Add(c *gin.Context) {
	var req AddCylinderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq, err := toAddRequest(req)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.cylinderService.Add(c.Request.Context(), *appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// BulkAdd registers a cart of cylinders. On a serial conflict the units
// committed before the conflict stay, and the response reports both the
// committed serials and the conflicting one.
func (h *CylinderHandler) BulkAdd(c *gin.Context) {
	var req BulkAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	appReq := fleetapp.BulkAddRequest{CustomerID: customerID}
	for _, line := range req.Lines {
		fillDate, err := parseDate(line.FillDate)
		if err != nil {
			h.BadRequest(c, "Invalid fill date: "+line.FillDate)
			return
		}
		expiry, err := parseOptionalDate(line.ExpiryDate)
		if err != nil {
			h.BadRequest(c, "Invalid expiry date: "+line.ExpiryDate)
			return
		}
		appReq.Lines = append(appReq.Lines, fleetapp.BulkAddLine{
			Category:     line.Category,
			Weight:       decimal.NewFromFloat(line.Weight),
			FillDate:     fillDate,
			ExpiryDate:   expiry,
			ManualSerial: line.ManualSerial,
			Quantity:     line.Quantity,
		})
	}

	result, svcErr := h.cylinderService.BulkAdd(c.Request.Context(), appReq)
	if svcErr != nil {
		if result != nil && result.ConflictSerial != "" {
			// Partial outcome: the committed serials ride along with the
			// conflict so the client can report both.
			c.JSON(http.StatusConflict, dto.NewErrorResponseWithDetails(
				dto.ErrCodeSerialConflict, svcErr.Error(), getRequestID(c), result))
			return
		}
		h.HandleDomainError(c, svcErr)
		return
	}

	h.Created(c, result)
}

// BulkDelete removes the listed cylinders, reporting per-item failures
func (h *CylinderHandler) BulkDelete(c *gin.Context) {
	var req IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ids, err := parseIDs(req.IDs)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.cylinderService.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// BulkRefill applies a new fill date to every listed cylinder atomically
func (h *CylinderHandler) BulkRefill(c *gin.Context) {
	var req BulkRefillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ids, err := parseIDs(req.IDs)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	fillDate, err := parseDate(req.FillDate)
	if err != nil {
		h.BadRequest(c, "Invalid fill date: "+req.FillDate)
		return
	}

	result, err := h.cylinderService.BulkRefill(c.Request.Context(), ids, fillDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByID retrieves a cylinder with its computed lifecycle tier
func (h *CylinderHandler) GetByID(c *gin.Context) {
	cylinderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cylinder ID format")
		return
	}

	cylinder, err := h.cylinderService.Get(c.Request.Context(), cylinderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cylinder)
}

// cylinderListQuery extends the common list parameters with a tier filter
type cylinderListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	Search   string `form:"search"`
	Tier     string `form:"tier" binding:"omitempty,oneof=expired due_soon normal"`
}

// List returns cylinders, optionally narrowed to one lifecycle tier
func (h *CylinderHandler) List(c *gin.Context) {
	var query cylinderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := sharedFilter(query.Page, query.PageSize, query.Search)
	cylinders, err := h.cylinderService.List(c.Request.Context(), filter, fleet.Tier(query.Tier))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cylinders)
}

// ListByCustomer returns one customer's fleet
func (h *CylinderHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var query cylinderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := sharedFilter(query.Page, query.PageSize, query.Search)
	cylinders, err := h.cylinderService.ListByCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cylinders)
}

// DueForService returns the call worklist: every cylinder expired or
// expiring within the due-soon window, soonest first
func (h *CylinderHandler) DueForService(c *gin.Context) {
	cylinders, err := h.cylinderService.DueForService(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cylinders)
}

func toAddRequest(req AddCylinderRequest) (*fleetapp.AddCylinderRequest, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, err
	}
	fillDate, err := parseDate(req.FillDate)
	if err != nil {
		return nil, err
	}
	expiry, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return &fleetapp.AddCylinderRequest{
		CustomerID:   customerID,
		Category:     req.Category,
		Weight:       decimal.NewFromFloat(req.Weight),
		FillDate:     fillDate,
		ExpiryDate:   expiry,
		ManualSerial: req.ManualSerial,
		Location:     req.Location,
	}, nil
}

// sharedFilter builds a repository filter from the bound query parameters
func sharedFilter(page, pageSize int, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.Search = search
	return filter
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
