package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		first_name VARCHAR(100),
		last_name VARCHAR(100),
		city VARCHAR(100),
		province VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS plots (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		geometry_wkt TEXT,
		centroid_lat DOUBLE PRECISION,
		centroid_lon DOUBLE PRECISION,
		area_hectares DOUBLE PRECISION NOT NULL DEFAULT 0,
		perimeter_meters DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, name)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_plots_user_id ON plots(user_id);`,
	`CREATE TABLE IF NOT EXISTS species (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL UNIQUE,
		co2_absorption_rate DOUBLE PRECISION NOT NULL,
		o2_production_rate DOUBLE PRECISION NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS plot_species (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		plot_id UUID NOT NULL REFERENCES plots(id) ON DELETE CASCADE,
		species_id UUID NOT NULL REFERENCES species(id),
		surface_area_m2 INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_plot_species_plot_id ON plot_species(plot_id);`,
	`CREATE INDEX IF NOT EXISTS idx_plot_species_species_id ON plot_species(species_id);`,
	`CREATE TABLE IF NOT EXISTS weather_data (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		plot_id UUID NOT NULL REFERENCES plots(id) ON DELETE CASCADE,
		date_time TIMESTAMPTZ NOT NULL,
		temperature DOUBLE PRECISION,
		humidity DOUBLE PRECISION,
		precipitation DOUBLE PRECISION,
		solar_radiation DOUBLE PRECISION,
		total_co2_absorption DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_o2_production DOUBLE PRECISION NOT NULL DEFAULT 0
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_weather_plot_time ON weather_data(plot_id, date_time);`,
	// Species seed. O2 rates follow the ~0.73 mass ratio of O2 released
	// per CO2 fixed in photosynthesis.
	`INSERT INTO species (name, co2_absorption_rate, o2_production_rate) VALUES
		('Quercia', 21.5, 15.7),
		('Pino', 17.2, 12.56),
		('Mais', 2.4, 1.75),
		('Faggio', 19.0, 13.87),
		('Betulla', 18.1, 13.21),
		('Castagno', 22.3, 16.28),
		('Acero', 16.5, 12.05),
		('Olmo', 14.2, 10.37),
		('Pioppo', 23.8, 17.37),
		('Cipresso', 15.6, 11.39),
		('Larice', 20.0, 14.6),
		('Abete rosso', 18.8, 13.72),
		('Abete bianco', 19.5, 14.24),
		('Salice', 12.7, 9.27),
		('Eucalipto', 25.0, 18.25),
		('Tiglio', 17.4, 12.7),
		('Frassino', 16.8, 12.26),
		('Nocciolo', 13.6, 9.93),
		('Ciliegio', 14.4, 10.51),
		('Ulivo', 11.5, 8.4),
		('Grano', 1.7, 1.24),
		('Riso', 2.1, 1.53),
		('Soia', 2.0, 1.46),
		('Girasole', 2.2, 1.61),
		('Barbabietola', 2.8, 2.04),
		('Patata', 1.9, 1.39),
		('Pomodoro', 1.6, 1.17),
		('Lattuga', 0.8, 0.58),
		('Cavolo', 1.3, 0.95),
		('Zucchina', 1.5, 1.1),
		('Melanzana', 1.4, 1.02),
		('Peperone', 1.4, 1.02),
		('Fagiolo', 1.2, 0.88),
		('Pisello', 1.0, 0.73),
		('Cetriolo', 1.3, 0.95),
		('Anguria', 2.5, 1.83),
		('Melone', 2.3, 1.68),
		('Fragola', 0.9, 0.66),
		('Erba medica', 3.0, 2.19)
	ON CONFLICT (name) DO NOTHING;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
