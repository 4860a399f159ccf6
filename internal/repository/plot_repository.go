package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"airvana/internal/model"
)

type PlotRepository struct {
	db *gorm.DB
}

func NewPlotRepository(db *gorm.DB) *PlotRepository {
	return &PlotRepository{db: db}
}

// CreateWithSpecies inserts the plot and its species rows in one
// transaction. A failure on any row rolls back the whole save.
func (r *PlotRepository) CreateWithSpecies(ctx context.Context, plot *model.Plot, species []model.PlotSpecies) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plot).Error; err != nil {
			return err
		}
		for i := range species {
			species[i].PlotID = plot.ID
			if err := tx.Create(&species[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Plot, error) {
	var plot model.Plot
	err := r.db.WithContext(ctx).
		Preload("Species").
		Preload("Species.Species").
		Where("id = ?", id).
		First(&plot).Error
	if err != nil {
		return nil, err
	}
	return &plot, nil
}

func (r *PlotRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*model.Plot, error) {
	var plot model.Plot
	err := r.db.WithContext(ctx).
		Preload("Species").
		Preload("Species.Species").
		Where("user_id = ? AND name = ?", userID, name).
		First(&plot).Error
	if err != nil {
		return nil, err
	}
	return &plot, nil
}

func (r *PlotRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Plot, error) {
	var plots []model.Plot
	err := r.db.WithContext(ctx).
		Preload("Species").
		Preload("Species.Species").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&plots).Error
	if err != nil {
		return nil, err
	}
	return plots, nil
}

// ListIDs returns every plot ID in the system. The weather refresh job
// iterates over this.
func (r *PlotRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Plot{}).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PlotRepository) Update(ctx context.Context, plot *model.Plot) error {
	return r.db.WithContext(ctx).Save(plot).Error
}

// UpdateWithSpecies saves the plot and replaces its species rows in one
// transaction.
func (r *PlotRepository) UpdateWithSpecies(ctx context.Context, plot *model.Plot, species []model.PlotSpecies) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(plot).Error; err != nil {
			return err
		}
		if err := tx.Where("plot_id = ?", plot.ID).Delete(&model.PlotSpecies{}).Error; err != nil {
			return err
		}
		for i := range species {
			species[i].PlotID = plot.ID
			if err := tx.Create(&species[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceSpecies swaps a plot's species rows atomically.
func (r *PlotRepository) ReplaceSpecies(ctx context.Context, plotID uuid.UUID, species []model.PlotSpecies) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plot_id = ?", plotID).Delete(&model.PlotSpecies{}).Error; err != nil {
			return err
		}
		for i := range species {
			species[i].PlotID = plotID
			if err := tx.Create(&species[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the plot together with its species and weather rows.
func (r *PlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plot_id = ?", id).Delete(&model.PlotSpecies{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plot_id = ?", id).Delete(&model.WeatherData{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Plot{}).Error
	})
}
