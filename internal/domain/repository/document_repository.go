package repository

import (
	"context"
	"time"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/scaleworks/ddt-api/pkg/pagination"
)

// DocumentRepository defines the interface for document data operations
type DocumentRepository interface {
	// Create persists a document together with its lines.
	Create(ctx context.Context, doc *entity.Document) error
	GetWithLines(ctx context.Context, id int64) (*entity.Document, error)
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.Document, int64, error)
	// DeleteWithLines removes a document and cascades to its lines.
	DeleteWithLines(ctx context.Context, id int64) error
	// CountLiveForTicket reports how many existing documents reference the
	// ticket as a line source.
	CountLiveForTicket(ctx context.Context, ticketID int64) (int64, error)
}

// DocumentFilterParams contains filtering parameters for document queries
type DocumentFilterParams struct {
	Pagination *pagination.PaginationParams
	ClientID   *int64
	CompanyID  *int64
	StartDate  *time.Time
	EndDate    *time.Time
}
