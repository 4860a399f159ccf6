package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlotSpecies associates a catalog species with a plot. SurfaceAreaM2 is
// the covered area in square meters, always a non-negative integer.
type PlotSpecies struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	PlotID        uuid.UUID `gorm:"type:uuid;not null;index" json:"plot_id"`
	SpeciesID     uuid.UUID `gorm:"type:uuid;not null;index" json:"species_id"`
	SurfaceAreaM2 int       `gorm:"not null" json:"surface_area_m2"`

	Species *Species `gorm:"foreignKey:SpeciesID" json:"species_ref,omitempty"`
}

func (PlotSpecies) TableName() string {
	return "plot_species"
}

func (ps *PlotSpecies) BeforeCreate(tx *gorm.DB) error {
	if ps.ID == uuid.Nil {
		ps.ID = uuid.New()
	}
	return nil
}
