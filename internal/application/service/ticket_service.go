package service

import (
	"context"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/scaleworks/ddt-api/internal/domain/repository"
	"github.com/scaleworks/ddt-api/pkg/apperror"
	"github.com/scaleworks/ddt-api/pkg/pagination"
)

// TicketService exposes read access to scale tickets. Tickets are created
// by the device import feed and mutated only through consolidation.
type TicketService struct {
	ticketRepo repository.TicketRepository
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo repository.TicketRepository) *TicketService {
	return &TicketService{ticketRepo: ticketRepo}
}

// GetTicket retrieves a ticket with its lines
func (s *TicketService) GetTicket(ctx context.Context, id, companyID int64) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetWithLines(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	return ticket, nil
}

// ListTickets lists tickets with filtering
func (s *TicketService) ListTickets(ctx context.Context, params *repository.TicketFilterParams) (*pagination.PaginatedResult[entity.Ticket], error) {
	tickets, total, err := s.ticketRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(tickets, pag), nil
}
