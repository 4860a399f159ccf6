package repository

import (
	"context"

	"gorm.io/gorm"

	"airvana/internal/model"
)

type SpeciesRepository struct {
	db *gorm.DB
}

func NewSpeciesRepository(db *gorm.DB) *SpeciesRepository {
	return &SpeciesRepository{db: db}
}

func (r *SpeciesRepository) GetByName(ctx context.Context, name string) (*model.Species, error) {
	var species model.Species
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&species).Error
	if err != nil {
		return nil, err
	}
	return &species, nil
}

func (r *SpeciesRepository) List(ctx context.Context) ([]model.Species, error) {
	var species []model.Species
	err := r.db.WithContext(ctx).Order("name ASC").Find(&species).Error
	if err != nil {
		return nil, err
	}
	return species, nil
}
