// Package scheduler runs the daily weather refresh so dashboards have
// today's rows before the first user opens them.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"airvana/internal/service"
)

type Scheduler struct {
	cron    *cron.Cron
	weather *service.WeatherService
	log     zerolog.Logger
}

func New(weather *service.WeatherService, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		weather: weather,
		log:     log,
	}
}

// Start registers the refresh job and launches the cron loop.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.refresh)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("spec", spec).Msg("weather refresh scheduled")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	started := time.Now()
	if err := s.weather.RefreshAll(ctx); err != nil {
		s.log.Error().Err(err).Msg("weather refresh run failed")
		return
	}
	s.log.Info().Dur("took", time.Since(started)).Msg("weather refresh run done")
}
