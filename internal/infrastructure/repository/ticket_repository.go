package repository

import (
	"context"
	"errors"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/scaleworks/ddt-api/internal/domain/enum"
	domainRepo "github.com/scaleworks/ddt-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) domainRepo.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := dbFrom(ctx, r.db).First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) GetWithLines(ctx context.Context, id, companyID int64) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := dbFrom(ctx, r.db).
		Preload("Lines", "ticket_id = ?", id).
		First(&ticket, "id = ? AND company_id = ?", id, companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) List(ctx context.Context, params *domainRepo.TicketFilterParams) ([]entity.Ticket, int64, error) {
	var tickets []entity.Ticket
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Ticket{})

	if params.CompanyID != nil {
		query = query.Where("company_id = ?", *params.CompanyID)
	}
	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
	}
	if params.ScaleID != nil {
		query = query.Where("scale_id = ?", *params.ScaleID)
	}
	if params.Status != nil {
		// Processed collapses the legacy document-stage substates.
		if params.Status.Normalize() == enum.TicketStatusProcessed {
			query = query.Where("status IN ?", enum.ProcessedStatuses())
		} else {
			query = query.Where("status = ?", *params.Status)
		}
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Lines").
		Order("created_at DESC").
		Find(&tickets).Error

	return tickets, total, err
}

func (r *ticketRepository) TransitionStatus(ctx context.Context, id int64, from []enum.TicketStatus, to enum.TicketStatus) (bool, error) {
	res := dbFrom(ctx, r.db).Model(&entity.Ticket{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
