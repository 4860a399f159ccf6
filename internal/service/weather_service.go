package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"airvana/internal/client"
	"airvana/internal/model"
	"airvana/internal/repository"
)

// Normalization ceilings for the hourly absorption factor. Each reading
// is divided by its ceiling and clamped to [0, 1], so an hour at or above
// 800 W/m², 25 °C and 60 % humidity absorbs at the full species rate.
const (
	radiationNorm   = 800.0
	temperatureNorm = 25.0
	humidityNorm    = 60.0

	defaultTemperature = 20.0
	defaultHumidity    = 60.0
)

// WeatherFetcher is the forecast source; satisfied by the Open-Meteo
// client and by fakes in tests.
type WeatherFetcher interface {
	FetchDay(ctx context.Context, lat, lon float64) ([]client.HourlyWeather, error)
}

type WeatherService struct {
	weatherRepo *repository.WeatherRepository
	plotRepo    *repository.PlotRepository
	fetcher     WeatherFetcher
	log         zerolog.Logger
}

func NewWeatherService(weatherRepo *repository.WeatherRepository, plotRepo *repository.PlotRepository, fetcher WeatherFetcher, log zerolog.Logger) *WeatherService {
	return &WeatherService{
		weatherRepo: weatherRepo,
		plotRepo:    plotRepo,
		fetcher:     fetcher,
		log:         log,
	}
}

// FetchAndStore pulls today's hourly forecast for the plot's centroid,
// stores the hours not yet present, and returns the full stored day.
// Hours already in the table keep their original values.
func (s *WeatherService) FetchAndStore(ctx context.Context, plotID uuid.UUID) ([]model.WeatherData, error) {
	plot, err := s.plotRepo.GetByID(ctx, plotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if plot.CentroidLat == nil || plot.CentroidLon == nil {
		return nil, ErrInvalidInput
	}

	hours, err := s.fetcher.FetchDay(ctx, *plot.CentroidLat, *plot.CentroidLon)
	if err != nil {
		return nil, err
	}

	co2PerFactor, o2PerFactor := plotRates(plot)
	rows := make([]model.WeatherData, 0, len(hours))
	for _, h := range hours {
		factor := AbsorptionFactor(h.Temperature, h.Humidity, h.SolarRadiation)
		rows = append(rows, model.WeatherData{
			PlotID:             plotID,
			DateTime:           h.Time,
			Temperature:        h.Temperature,
			Humidity:           h.Humidity,
			Precipitation:      h.Precipitation,
			SolarRadiation:     h.SolarRadiation,
			TotalCO2Absorption: round5(co2PerFactor * factor),
			TotalO2Production:  round5(o2PerFactor * factor),
		})
	}

	if err := s.weatherRepo.InsertIfAbsent(ctx, rows); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("plot_id", plotID.String()).
		Int("hours", len(rows)).
		Msg("weather fetched")

	return s.weatherRepo.ListByPlotAndDay(ctx, plotID, hours[0].Time)
}

func (s *WeatherService) ListDay(ctx context.Context, plotID uuid.UUID, day time.Time) ([]model.WeatherData, error) {
	return s.weatherRepo.ListByPlotAndDay(ctx, plotID, day)
}

func (s *WeatherService) Exists(ctx context.Context, plotID uuid.UUID, day time.Time) (bool, error) {
	return s.weatherRepo.ExistsForDay(ctx, plotID, day)
}

// RefreshAll re-runs the fetch for every plot. Per-plot failures are
// logged and skipped so one bad plot never stalls the rest.
func (s *WeatherService) RefreshAll(ctx context.Context) error {
	ids, err := s.plotRepo.ListIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.FetchAndStore(ctx, id); err != nil {
			s.log.Warn().
				Err(err).
				Str("plot_id", id.String()).
				Msg("weather refresh failed for plot")
		}
	}
	return nil
}

// AbsorptionFactor maps one hour's weather to [0, 1]. Missing temperature
// and humidity fall back to mild defaults; missing radiation means no
// sunlight, which zeroes the hour.
func AbsorptionFactor(temperature, humidity, radiation *float64) float64 {
	rad := 0.0
	if radiation != nil {
		rad = *radiation
	}
	temp := defaultTemperature
	if temperature != nil {
		temp = *temperature
	}
	hum := defaultHumidity
	if humidity != nil {
		hum = *humidity
	}
	return clamp01(rad/radiationNorm) * clamp01(temp/temperatureNorm) * clamp01(hum/humidityNorm)
}

// plotRates sums the species contributions of a plot: kg per hour at
// factor 1, for CO2 and O2.
func plotRates(plot *model.Plot) (co2, o2 float64) {
	for _, ps := range plot.Species {
		if ps.Species == nil || ps.SurfaceAreaM2 <= 0 {
			continue
		}
		area := float64(ps.SurfaceAreaM2)
		co2 += area * ps.Species.CO2AbsorptionRate
		o2 += area * ps.Species.O2ProductionRate
	}
	return co2, o2
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
