package service

import (
	"context"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/scaleworks/ddt-api/internal/domain/repository"
	"github.com/scaleworks/ddt-api/pkg/apperror"
	"github.com/scaleworks/ddt-api/pkg/pagination"
)

// ClientService exposes the client registry used to address documents.
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id int64) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients with search
func (s *ClientService) ListClients(ctx context.Context, search string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, search, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}
