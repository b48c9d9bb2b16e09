package repository

import (
	"context"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	domainRepo "github.com/scaleworks/ddt-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next advances the named counter under a row lock. Concurrent callers
// serialize here, so the value each one sees is max(issued) + 1 at the time
// its transaction holds the lock. Rolling back the caller's transaction
// rolls the counter back too, leaving no race-created gap.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	db := dbFrom(ctx, r.db)

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&entity.Sequence{Name: name, Value: 0}).Error; err != nil {
		return 0, err
	}

	var seq entity.Sequence
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seq, "name = ?", name).Error; err != nil {
		return 0, err
	}

	seq.Value++
	if err := db.Save(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}
