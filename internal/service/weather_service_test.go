package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"airvana/internal/model"
)

func ptr(v float64) *float64 { return &v }

func TestAbsorptionFactorFullConditions(t *testing.T) {
	// At or above every ceiling the factor saturates at 1.
	assert.Equal(t, 1.0, AbsorptionFactor(ptr(25), ptr(60), ptr(800)))
	assert.Equal(t, 1.0, AbsorptionFactor(ptr(30), ptr(90), ptr(1000)))
}

func TestAbsorptionFactorScalesLinearlyBelowCeilings(t *testing.T) {
	got := AbsorptionFactor(ptr(12.5), ptr(30), ptr(400))
	assert.InDelta(t, 0.5*0.5*0.5, got, 1e-9)
}

func TestAbsorptionFactorNightIsZero(t *testing.T) {
	assert.Zero(t, AbsorptionFactor(ptr(20), ptr(60), ptr(0)))
	assert.Zero(t, AbsorptionFactor(ptr(20), ptr(60), nil))
	assert.Zero(t, AbsorptionFactor(ptr(20), ptr(60), ptr(-5)))
}

func TestAbsorptionFactorDefaultsForMissingReadings(t *testing.T) {
	// Missing temperature and humidity fall back to 20 degrees and 60 percent.
	withDefaults := AbsorptionFactor(nil, nil, ptr(800))
	explicit := AbsorptionFactor(ptr(20), ptr(60), ptr(800))
	assert.Equal(t, explicit, withDefaults)
	assert.InDelta(t, 20.0/25.0, withDefaults, 1e-9)
}

func TestPlotRatesSumSpeciesContributions(t *testing.T) {
	plot := &model.Plot{
		Species: []model.PlotSpecies{
			{SurfaceAreaM2: 100, Species: &model.Species{Name: "Quercia", CO2AbsorptionRate: 21.5, O2ProductionRate: 15.7}},
			{SurfaceAreaM2: 50, Species: &model.Species{Name: "Grano", CO2AbsorptionRate: 1.7, O2ProductionRate: 1.24}},
			{SurfaceAreaM2: -10, Species: &model.Species{Name: "Pino", CO2AbsorptionRate: 17.2, O2ProductionRate: 12.56}},
			{SurfaceAreaM2: 30, Species: nil},
		},
	}

	co2, o2 := plotRates(plot)
	assert.InDelta(t, 100*21.5+50*1.7, co2, 1e-9)
	assert.InDelta(t, 100*15.7+50*1.24, o2, 1e-9)
}

func TestRound5(t *testing.T) {
	assert.Equal(t, 0.12346, round5(0.123456789))
	assert.Equal(t, 215.0, round5(215.0))
}

func TestBuildBreakdownSplitsBySpecies(t *testing.T) {
	plot := &model.Plot{
		Species: []model.PlotSpecies{
			{SurfaceAreaM2: 100, Species: &model.Species{Name: "Quercia", CO2AbsorptionRate: 21.5, O2ProductionRate: 15.7}},
			{SurfaceAreaM2: 200, Species: &model.Species{Name: "Grano", CO2AbsorptionRate: 1.7, O2ProductionRate: 1.24}},
		},
	}
	noon := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	stored := []model.WeatherData{
		{DateTime: noon, Temperature: ptr(25), Humidity: ptr(60), SolarRadiation: ptr(800)},
		{DateTime: noon.Add(time.Hour), Temperature: ptr(25), Humidity: ptr(60), SolarRadiation: nil},
	}

	breakdown := buildBreakdown(plot, stored)

	assert.Len(t, breakdown.Totals, 2)
	assert.Len(t, breakdown.Hourly, 2)

	// Hour one runs at factor 1, hour two at factor 0.
	assert.InDelta(t, 100*21.5, breakdown.Hourly[0].CO2KgHour["Quercia"], 1e-6)
	assert.InDelta(t, 200*1.7, breakdown.Hourly[0].CO2KgHour["Grano"], 1e-6)
	assert.Zero(t, breakdown.Hourly[1].CO2KgHour["Quercia"])

	for _, total := range breakdown.Totals {
		switch total.Name {
		case "Quercia":
			assert.InDelta(t, 100*21.5, total.CO2Kg, 1e-6)
			assert.InDelta(t, 100*15.7, total.O2Kg, 1e-6)
		case "Grano":
			assert.InDelta(t, 200*1.7, total.CO2Kg, 1e-6)
		}
	}
}

func TestToHourlyRowDefaultsAndWireValues(t *testing.T) {
	noon := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	row := toHourlyRow(model.WeatherData{
		DateTime:           noon,
		Precipitation:      ptr(1.2),
		SolarRadiation:     ptr(650),
		TotalCO2Absorption: 3.5,
		TotalO2Production:  2.6,
	})

	assert.Equal(t, "2026-08-28T12:00", row.Time)
	assert.Equal(t, 1.2, row.PrecipitationMM)
	assert.Equal(t, 650.0, row.Radiation)
	assert.Equal(t, defaultTemperature, row.TemperatureC)
	assert.Equal(t, defaultHumidity, row.Humidity)
	assert.Equal(t, 3.5, row.CO2KgHour)
	assert.Equal(t, 2.6, row.O2KgHour)
}
