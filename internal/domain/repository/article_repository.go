package repository

import (
	"context"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Article, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Article, error)
	// GetOrCreateCustom returns the sentinel custom article used for manual
	// lines, creating it on first use.
	GetOrCreateCustom(ctx context.Context) (*entity.Article, error)
}
