package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/scaleworks/ddt-api/internal/application/service"
	"github.com/scaleworks/ddt-api/internal/domain/repository"
	"github.com/scaleworks/ddt-api/internal/presentation/http/dto/request"
	"github.com/scaleworks/ddt-api/internal/presentation/http/dto/response"
	"github.com/scaleworks/ddt-api/pkg/pagination"
)

// DocumentHandler handles delivery document HTTP requests
type DocumentHandler struct {
	documentService  *service.DocumentService
	exportService    *service.ExportService
	defaultCompanyID int64
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService, exportService *service.ExportService, defaultCompanyID int64) *DocumentHandler {
	return &DocumentHandler{
		documentService:  documentService,
		exportService:    exportService,
		defaultCompanyID: defaultCompanyID,
	}
}

func (h *DocumentHandler) companyID(requested int64) int64 {
	if requested != 0 {
		return requested
	}
	return h.defaultCompanyID
}

func ticketRefs(ids []int64, companyID int64) []service.TicketRef {
	refs := make([]service.TicketRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, service.TicketRef{TicketID: id, CompanyID: companyID})
	}
	return refs
}

func manualInputs(lines []request.ManualLineRequest) []service.ManualLineInput {
	inputs := make([]service.ManualLineInput, 0, len(lines))
	for _, l := range lines {
		inputs = append(inputs, service.ManualLineInput{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATClass:    l.VATClass,
			Expiry:      l.Expiry,
		})
	}
	return inputs
}

// Create handles consolidating tickets and manual lines into a document
func (h *DocumentHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	companyID := h.companyID(req.CompanyID)
	doc, report, err := h.documentService.CreateDocument(c.Request.Context(), &service.CreateDocumentInput{
		ClientID:       req.ClientID,
		CompanyID:      companyID,
		Tickets:        ticketRefs(req.TicketIDs, companyID),
		Manual:         manualInputs(req.ManualLines),
		Discounts:      req.Discounts,
		ManualDiscount: req.ManualDiscount,
		Note:           req.Note,
		TaskID:         req.TaskID,
		CreatedBy:      *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Document created successfully", gin.H{
		"document": doc,
		"report":   report,
	})
}

// Preview handles a consolidation dry run
func (h *DocumentHandler) Preview(c *gin.Context) {
	var req request.PreviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	companyID := h.companyID(req.CompanyID)
	result, err := h.documentService.PreviewLines(c.Request.Context(),
		ticketRefs(req.TicketIDs, companyID),
		manualInputs(req.ManualLines),
		req.Discounts,
		req.ManualDiscount,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preview computed successfully", result)
}

// Get handles getting a single document with its lines
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document retrieved successfully", doc)
}

// List handles listing documents with filters
func (h *DocumentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.DocumentFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
	}

	if v := c.Query("client_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid client ID")
			return
		}
		params.ClientID = &id
	}
	if v := c.Query("company_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid company ID")
			return
		}
		params.CompanyID = &id
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &t
	}

	result, err := h.documentService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Documents retrieved successfully", result)
}

// Delete handles reversing a document
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil || *userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export handles the fiscal export of a document
func (h *DocumentHandler) Export(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document export built successfully", h.exportService.BuildExport(doc))
}
