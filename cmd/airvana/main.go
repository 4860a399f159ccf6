package main

import (
	"fmt"
	"os"

	"airvana/internal/auth"
	"airvana/internal/cache"
	"airvana/internal/client"
	"airvana/internal/config"
	"airvana/internal/db"
	"airvana/internal/editor"
	httphandler "airvana/internal/http"
	"airvana/internal/http/middleware"
	"airvana/internal/logger"
	"airvana/internal/repository"
	"airvana/internal/scheduler"
	"airvana/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	plotRepo := repository.NewPlotRepository(database)
	speciesRepo := repository.NewSpeciesRepository(database)
	weatherRepo := repository.NewWeatherRepository(database)

	meteoClient := client.NewOpenMeteoClient(cfg)
	geocoder := client.NewNominatimClient(cfg)

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	dayCache := cache.NewDayCache(cfg.Weather.CacheMaxEntries)

	userService := service.NewUserService(userRepo, tokenIssuer)
	plotService := service.NewPlotService(plotRepo, speciesRepo, appLogger)
	weatherService := service.NewWeatherService(weatherRepo, plotRepo, meteoClient, appLogger)
	dashboardService := service.NewDashboardService(weatherRepo, plotRepo, dayCache, appLogger)

	sessions := editor.NewHub(plotService.SaverFor)

	refresher := scheduler.New(weatherService, appLogger)
	if err := refresher.Start(cfg.Weather.RefreshSpec); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to start weather refresh")
	}
	defer refresher.Stop()

	handler := httphandler.NewHandler(
		userService,
		plotService,
		weatherService,
		dashboardService,
		geocoder,
		sessions,
		appLogger,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, appLogger)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting airvana service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
