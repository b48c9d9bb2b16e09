package repository

import (
	"context"
	"errors"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	domainRepo "github.com/scaleworks/ddt-api/internal/domain/repository"
	"gorm.io/gorm"
)

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) domainRepo.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	// Lines are created in the same insert via the association.
	return dbFrom(ctx, r.db).Create(doc).Error
}

func (r *documentRepository) GetWithLines(ctx context.Context, id int64) (*entity.Document, error) {
	var doc entity.Document
	err := dbFrom(ctx, r.db).
		Preload("Lines").
		First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *documentRepository) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.Document, int64, error) {
	var docs []entity.Document
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Document{})

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}
	if params.CompanyID != nil {
		query = query.Where("company_id = ?", *params.CompanyID)
	}
	if params.StartDate != nil {
		query = query.Where("issued_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("issued_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("number DESC").
		Find(&docs).Error

	return docs, total, err
}

func (r *documentRepository) DeleteWithLines(ctx context.Context, id int64) error {
	db := dbFrom(ctx, r.db)
	if err := db.Delete(&entity.DocumentLine{}, "document_id = ?", id).Error; err != nil {
		return err
	}
	return db.Delete(&entity.Document{}, "id = ?", id).Error
}

func (r *documentRepository) CountLiveForTicket(ctx context.Context, ticketID int64) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.DocumentLine{}).
		Where("ticket_id = ?", ticketID).
		Distinct("document_id").
		Count(&count).Error
	return count, err
}
