package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scaleworks/ddt-api/internal/application/service"
	"github.com/scaleworks/ddt-api/internal/domain/enum"
	"github.com/scaleworks/ddt-api/internal/domain/repository"
	"github.com/scaleworks/ddt-api/internal/presentation/http/dto/response"
	"github.com/scaleworks/ddt-api/pkg/pagination"
)

// TicketHandler handles scale ticket HTTP requests
type TicketHandler struct {
	ticketService    *service.TicketService
	defaultCompanyID int64
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *service.TicketService, defaultCompanyID int64) *TicketHandler {
	return &TicketHandler{
		ticketService:    ticketService,
		defaultCompanyID: defaultCompanyID,
	}
}

// List handles listing tickets with filters
func (h *TicketHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	companyID := h.defaultCompanyID
	if v := c.Query("company_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid company ID")
			return
		}
		companyID = id
	}

	params := &repository.TicketFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		CompanyID:  &companyID,
	}

	if v := c.Query("store_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid store ID")
			return
		}
		params.StoreID = &id
	}
	if v := c.Query("scale_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid scale ID")
			return
		}
		params.ScaleID = &id
	}
	if v := c.Query("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "Invalid status")
			return
		}
		status := enum.TicketStatus(n)
		params.Status = &status
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

	result, err := h.ticketService.ListTickets(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Tickets retrieved successfully", result)
}

// Get handles getting a single ticket with its lines
func (h *TicketHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	companyID := h.defaultCompanyID
	if v := c.Query("company_id"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid company ID")
			return
		}
		companyID = parsed
	}

	ticket, err := h.ticketService.GetTicket(c.Request.Context(), id, companyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket retrieved successfully", ticket)
}
