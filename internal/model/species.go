package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Species is one entry of the fixed catalog. Rates are kg per estimation
// unit per year (CO2) and kg per estimation unit per year (O2).
type Species struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name              string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CO2AbsorptionRate float64   `gorm:"not null" json:"co2_absorption_rate"`
	O2ProductionRate  float64   `gorm:"not null" json:"o2_production_rate"`
}

func (Species) TableName() string {
	return "species"
}

func (s *Species) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
