package repository

import (
	"context"
	"time"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/scaleworks/ddt-api/internal/domain/enum"
	"github.com/scaleworks/ddt-api/pkg/pagination"
)

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Ticket, error)
	// GetWithLines loads a ticket and its lines with an integrity-checked
	// join: only lines whose ticket_id matches are fetched. Returns
	// (nil, nil) when the ticket does not exist for the given company.
	GetWithLines(ctx context.Context, id, companyID int64) (*entity.Ticket, error)
	List(ctx context.Context, params *TicketFilterParams) ([]entity.Ticket, int64, error)
	// TransitionStatus atomically moves a ticket from any of the given
	// states to the target state. Returns false when the ticket is missing
	// or not in an accepted state, leaving it untouched either way.
	TransitionStatus(ctx context.Context, id int64, from []enum.TicketStatus, to enum.TicketStatus) (bool, error)
}

// TicketFilterParams contains filtering parameters for ticket queries
type TicketFilterParams struct {
	Pagination *pagination.PaginationParams
	CompanyID  *int64
	StoreID    *int64
	ScaleID    *int64
	Status     *enum.TicketStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
