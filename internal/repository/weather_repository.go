package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"airvana/internal/model"
)

type WeatherRepository struct {
	db *gorm.DB
}

func NewWeatherRepository(db *gorm.DB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

// InsertIfAbsent stores hourly rows, skipping any (plot_id, date_time)
// pair already present. Re-running a fetch never duplicates or overwrites
// hours.
func (r *WeatherRepository) InsertIfAbsent(ctx context.Context, rows []model.WeatherData) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "plot_id"}, {Name: "date_time"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

// ListByPlotAndDay returns the hourly rows of one calendar day in
// chronological order.
func (r *WeatherRepository) ListByPlotAndDay(ctx context.Context, plotID uuid.UUID, day time.Time) ([]model.WeatherData, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var rows []model.WeatherData
	err := r.db.WithContext(ctx).
		Where("plot_id = ? AND date_time >= ? AND date_time < ?", plotID, start, end).
		Order("date_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *WeatherRepository) ExistsForDay(ctx context.Context, plotID uuid.UUID, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var count int64
	err := r.db.WithContext(ctx).Model(&model.WeatherData{}).
		Where("plot_id = ? AND date_time >= ? AND date_time < ?", plotID, start, end).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WeatherRepository) DeleteByPlot(ctx context.Context, plotID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("plot_id = ?", plotID).Delete(&model.WeatherData{}).Error
}
