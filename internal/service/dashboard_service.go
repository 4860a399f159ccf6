package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"airvana/internal/cache"
	"airvana/internal/model"
	"airvana/internal/repository"
)

// ErrStale marks a dashboard response computed before a newer request or
// invalidation superseded it. Callers drop the response silently.
var ErrStale = errors.New("stale dashboard response")

const (
	kindHourly  = "co2"
	kindSpecies = "species"
)

// HourlyRow is one dashboard hour. Wire names match the established API
// contract.
type HourlyRow struct {
	Time            string  `json:"datetime"`
	PrecipitationMM float64 `json:"precipitazioni_mm"`
	TemperatureC    float64 `json:"temperatura_c"`
	Radiation       float64 `json:"radiazione"`
	Humidity        float64 `json:"umidita"`
	CO2KgHour       float64 `json:"co2_kg_hour"`
	O2KgHour        float64 `json:"o2_kg_hour"`
}

type SpeciesTotal struct {
	Name      string  `json:"species"`
	SurfaceM2 int     `json:"surface_area_m2"`
	CO2Kg     float64 `json:"total_co2_kg"`
	O2Kg      float64 `json:"total_o2_kg"`
}

type SpeciesHourRow struct {
	Time      string             `json:"datetime"`
	CO2KgHour map[string]float64 `json:"co2_kg_hour"`
}

type SpeciesBreakdown struct {
	Totals []SpeciesTotal   `json:"totals"`
	Hourly []SpeciesHourRow `json:"hourly"`
}

// DashboardService assembles the chart series. Results are cached per
// (plot, kind, day); a per-plot generation counter detects responses that
// were computed against state older than the latest mutation.
type DashboardService struct {
	weatherRepo *repository.WeatherRepository
	plotRepo    *repository.PlotRepository
	dayCache    *cache.DayCache
	log         zerolog.Logger

	mu          sync.Mutex
	generations map[uuid.UUID]uint64
}

func NewDashboardService(weatherRepo *repository.WeatherRepository, plotRepo *repository.PlotRepository, dayCache *cache.DayCache, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		weatherRepo: weatherRepo,
		plotRepo:    plotRepo,
		dayCache:    dayCache,
		generations: make(map[uuid.UUID]uint64),
		log:         log,
	}
}

// Invalidate bumps the plot's generation and drops its cached series.
// Called after any mutation that changes the plot's data.
func (s *DashboardService) Invalidate(plotID uuid.UUID) {
	s.mu.Lock()
	s.generations[plotID]++
	s.mu.Unlock()
	s.dayCache.Invalidate(plotID.String())
}

func (s *DashboardService) generation(plotID uuid.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[plotID]
}

// Hourly returns the plot's hourly series for one calendar day. The
// second and later calls on the same day are served from the cache.
func (s *DashboardService) Hourly(ctx context.Context, plotID uuid.UUID, day time.Time) ([]HourlyRow, error) {
	gen := s.generation(plotID)
	key := cache.Key(plotID.String(), kindHourly, day.Format("2006-01-02"))

	if v, ok := s.dayCache.Get(key); ok {
		if rows, ok := v.([]HourlyRow); ok {
			return rows, nil
		}
	}

	stored, err := s.weatherRepo.ListByPlotAndDay(ctx, plotID, day)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, ErrNotFound
	}

	rows := make([]HourlyRow, 0, len(stored))
	for _, w := range stored {
		rows = append(rows, toHourlyRow(w))
	}

	if s.generation(plotID) != gen {
		return nil, ErrStale
	}
	s.dayCache.Set(key, rows)
	return rows, nil
}

// BySpecies splits the day's absorption across the plot's species, both
// as day totals and as hourly contributions.
func (s *DashboardService) BySpecies(ctx context.Context, plotID uuid.UUID, day time.Time) (*SpeciesBreakdown, error) {
	gen := s.generation(plotID)
	key := cache.Key(plotID.String(), kindSpecies, day.Format("2006-01-02"))

	if v, ok := s.dayCache.Get(key); ok {
		if breakdown, ok := v.(*SpeciesBreakdown); ok {
			return breakdown, nil
		}
	}

	plot, err := s.plotRepo.GetByID(ctx, plotID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	stored, err := s.weatherRepo.ListByPlotAndDay(ctx, plotID, day)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, ErrNotFound
	}

	breakdown := buildBreakdown(plot, stored)

	if s.generation(plotID) != gen {
		return nil, ErrStale
	}
	s.dayCache.Set(key, breakdown)
	return breakdown, nil
}

func toHourlyRow(w model.WeatherData) HourlyRow {
	row := HourlyRow{
		Time:         w.DateTime.Format("2006-01-02T15:04"),
		TemperatureC: defaultTemperature,
		Humidity:     defaultHumidity,
		CO2KgHour:    w.TotalCO2Absorption,
		O2KgHour:     w.TotalO2Production,
	}
	if w.Temperature != nil {
		row.TemperatureC = *w.Temperature
	}
	if w.Humidity != nil {
		row.Humidity = *w.Humidity
	}
	if w.Precipitation != nil {
		row.PrecipitationMM = *w.Precipitation
	}
	if w.SolarRadiation != nil {
		row.Radiation = *w.SolarRadiation
	}
	return row
}

// buildBreakdown recomputes each species' share from the stored raw
// weather columns, using the same factor the storage pass used.
func buildBreakdown(plot *model.Plot, stored []model.WeatherData) *SpeciesBreakdown {
	breakdown := &SpeciesBreakdown{
		Totals: make([]SpeciesTotal, 0, len(plot.Species)),
		Hourly: make([]SpeciesHourRow, 0, len(stored)),
	}

	totals := make(map[string]*SpeciesTotal, len(plot.Species))
	for _, ps := range plot.Species {
		if ps.Species == nil {
			continue
		}
		if _, ok := totals[ps.Species.Name]; !ok {
			breakdown.Totals = append(breakdown.Totals, SpeciesTotal{
				Name:      ps.Species.Name,
				SurfaceM2: ps.SurfaceAreaM2,
			})
			totals[ps.Species.Name] = &breakdown.Totals[len(breakdown.Totals)-1]
		} else {
			totals[ps.Species.Name].SurfaceM2 += ps.SurfaceAreaM2
		}
	}

	for _, w := range stored {
		factor := AbsorptionFactor(w.Temperature, w.Humidity, w.SolarRadiation)
		hour := SpeciesHourRow{
			Time:      w.DateTime.Format("2006-01-02T15:04"),
			CO2KgHour: make(map[string]float64, len(plot.Species)),
		}
		for _, ps := range plot.Species {
			if ps.Species == nil || ps.SurfaceAreaM2 <= 0 {
				continue
			}
			area := float64(ps.SurfaceAreaM2)
			co2 := round5(area * ps.Species.CO2AbsorptionRate * factor)
			o2 := round5(area * ps.Species.O2ProductionRate * factor)
			hour.CO2KgHour[ps.Species.Name] += co2
			if t := totals[ps.Species.Name]; t != nil {
				t.CO2Kg = round5(t.CO2Kg + co2)
				t.O2Kg = round5(t.O2Kg + o2)
			}
		}
		breakdown.Hourly = append(breakdown.Hourly, hour)
	}
	return breakdown
}
