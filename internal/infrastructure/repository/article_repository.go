package repository

import (
	"context"
	"errors"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	domainRepo "github.com/scaleworks/ddt-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *gorm.DB) domainRepo.ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	var article entity.Article
	err := dbFrom(ctx, r.db).First(&article, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &article, err
}

func (r *articleRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.Article, error) {
	var articles []entity.Article
	err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&articles).Error
	return articles, err
}

func (r *articleRepository) GetOrCreateCustom(ctx context.Context) (*entity.Article, error) {
	db := dbFrom(ctx, r.db)

	var article entity.Article
	err := db.First(&article, "code = ?", entity.CustomArticleCode).Error
	if err == nil {
		return &article, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	article = entity.Article{
		Code:        entity.CustomArticleCode,
		Description: "Custom product",
		IsCustom:    true,
	}
	// Unique index on code resolves a concurrent first-use race.
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&article).Error; err != nil {
		return nil, err
	}
	if article.ID == 0 {
		if err := db.First(&article, "code = ?", entity.CustomArticleCode).Error; err != nil {
			return nil, err
		}
	}
	return &article, nil
}
