package repository

import (
	"context"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/scaleworks/ddt-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.Client, int64, error)
}

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
}
