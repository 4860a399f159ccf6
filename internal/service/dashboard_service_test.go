package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airvana/internal/model"
)

func TestHourlyRowWireNames(t *testing.T) {
	noon := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	row := toHourlyRow(model.WeatherData{
		DateTime:           noon,
		Temperature:        ptr(22.5),
		Humidity:           ptr(55),
		Precipitation:      ptr(0.4),
		SolarRadiation:     ptr(700),
		TotalCO2Absorption: 3.5,
		TotalO2Production:  2.6,
	})

	raw, err := json.Marshal(row)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	for _, key := range []string{
		"datetime", "precipitazioni_mm", "temperatura_c",
		"radiazione", "umidita", "co2_kg_hour", "o2_kg_hour",
	} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, "2026-08-28T12:00", decoded["datetime"])
}

func TestSpeciesBreakdownWireNames(t *testing.T) {
	plot := &model.Plot{
		Species: []model.PlotSpecies{
			{SurfaceAreaM2: 100, Species: &model.Species{Name: "Quercia", CO2AbsorptionRate: 21.5, O2ProductionRate: 15.7}},
		},
	}
	noon := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	stored := []model.WeatherData{
		{DateTime: noon, Temperature: ptr(25), Humidity: ptr(60), SolarRadiation: ptr(800)},
	}

	raw, err := json.Marshal(buildBreakdown(plot, stored))
	require.NoError(t, err)

	var decoded struct {
		Totals []map[string]any `json:"totals"`
		Hourly []map[string]any `json:"hourly"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Totals, 1)
	require.Len(t, decoded.Hourly, 1)

	assert.Equal(t, "Quercia", decoded.Totals[0]["species"])
	assert.Contains(t, decoded.Totals[0], "total_co2_kg")
	assert.Contains(t, decoded.Totals[0], "total_o2_kg")
	assert.Contains(t, decoded.Hourly[0], "datetime")
}
