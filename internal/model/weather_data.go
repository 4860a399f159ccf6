package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeatherData is one hourly row for a plot. TotalCO2Absorption and
// TotalO2Production are filled by the derivation pass after the raw
// weather columns are stored.
type WeatherData struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	PlotID             uuid.UUID `gorm:"type:uuid;not null;index:idx_weather_plot_time,unique" json:"plot_id"`
	DateTime           time.Time `gorm:"not null;index:idx_weather_plot_time,unique" json:"date_time"`
	Temperature        *float64  `json:"temperature"`
	Humidity           *float64  `json:"humidity"`
	Precipitation      *float64  `json:"precipitation"`
	SolarRadiation     *float64  `json:"solar_radiation"`
	TotalCO2Absorption float64   `json:"total_co2_absorption"`
	TotalO2Production  float64   `json:"total_o2_production"`
}

func (WeatherData) TableName() string {
	return "weather_data"
}

func (w *WeatherData) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
