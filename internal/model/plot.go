package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Plot struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	GeometryWKT     string    `gorm:"type:text" json:"geometry_wkt"`
	CentroidLat     *float64  `json:"centroid_lat"`
	CentroidLon     *float64  `json:"centroid_lon"`
	AreaHectares    float64   `json:"area_hectares"`
	PerimeterMeters float64   `json:"perimeter_meters"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Species []PlotSpecies `gorm:"foreignKey:PlotID" json:"species,omitempty"`
}

func (Plot) TableName() string {
	return "plots"
}

func (p *Plot) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
