package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"airvana/internal/editor"
	"airvana/internal/estimator"
	"airvana/internal/geometry"
	"airvana/internal/model"
	"airvana/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type PlotService struct {
	plotRepo    *repository.PlotRepository
	speciesRepo *repository.SpeciesRepository
	log         zerolog.Logger
}

func NewPlotService(plotRepo *repository.PlotRepository, speciesRepo *repository.SpeciesRepository, log zerolog.Logger) *PlotService {
	return &PlotService{
		plotRepo:    plotRepo,
		speciesRepo: speciesRepo,
		log:         log,
	}
}

type SavePlotInput struct {
	Name     string
	Vertices []geometry.Point
	Species  []estimator.SpeciesEntry
}

// SaveCoordinates creates or overwrites the plot with the given name for
// the user. The plot row and its species associations are written in one
// transaction: an unknown species name fails the whole save, leaving
// nothing behind.
func (s *PlotService) SaveCoordinates(ctx context.Context, userID uuid.UUID, input SavePlotInput) (*model.Plot, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if len(input.Vertices) < 3 {
		return nil, ErrInvalidInput
	}

	species, err := s.resolveSpecies(ctx, input.Species)
	if err != nil {
		return nil, err
	}

	plot := &model.Plot{
		UserID:          userID,
		Name:            name,
		GeometryWKT:     geometry.ToWKT(input.Vertices),
		AreaHectares:    geometry.Area(input.Vertices),
		PerimeterMeters: geometry.Perimeter(input.Vertices),
	}
	if centroid, err := geometry.Centroid(input.Vertices); err == nil {
		plot.CentroidLat = &centroid.Lat
		plot.CentroidLon = &centroid.Lon
	}

	existing, err := s.plotRepo.GetByName(ctx, userID, name)
	switch {
	case err == nil:
		plot.ID = existing.ID
		plot.CreatedAt = existing.CreatedAt
		if err := s.plotRepo.UpdateWithSpecies(ctx, plot, species); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.plotRepo.CreateWithSpecies(ctx, plot, species); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.log.Info().
		Str("plot_id", plot.ID.String()).
		Str("name", name).
		Int("species", len(species)).
		Msg("plot saved")

	return s.plotRepo.GetByID(ctx, plot.ID)
}

// Rename changes a plot's name, addressed by user and current name.
func (s *PlotService) Rename(ctx context.Context, userID uuid.UUID, oldName, newName string) (*model.Plot, error) {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	plot, err := s.plotRepo.GetByName(ctx, userID, strings.TrimSpace(oldName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if _, err := s.plotRepo.GetByName(ctx, userID, trimmed); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	plot.Name = trimmed
	if err := s.plotRepo.Update(ctx, plot); err != nil {
		return nil, err
	}
	return plot, nil
}

// DeleteByName removes the user's plot with the given name, together with
// its species and weather rows.
func (s *PlotService) DeleteByName(ctx context.Context, userID uuid.UUID, name string) (uuid.UUID, error) {
	plot, err := s.plotRepo.GetByName(ctx, userID, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}
	if err := s.plotRepo.Delete(ctx, plot.ID); err != nil {
		return uuid.Nil, err
	}
	return plot.ID, nil
}

// DeleteByID removes a plot by ID after an ownership check.
func (s *PlotService) DeleteByID(ctx context.Context, userID, plotID uuid.UUID) error {
	plot, err := s.plotRepo.GetByID(ctx, plotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if plot.UserID != userID {
		return ErrPermissionDenied
	}
	return s.plotRepo.Delete(ctx, plotID)
}

// GetOwned loads a plot and verifies the caller owns it.
func (s *PlotService) GetOwned(ctx context.Context, userID, plotID uuid.UUID) (*model.Plot, error) {
	plot, err := s.plotRepo.GetByID(ctx, plotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if plot.UserID != userID {
		return nil, ErrPermissionDenied
	}
	return plot, nil
}

type SpeciesView struct {
	Name          string `json:"name"`
	SurfaceAreaM2 int    `json:"surface_area_m2"`
}

// PlotView is the list representation served to clients. Wire names match
// the established API contract.
type PlotView struct {
	TerrainID       uuid.UUID        `json:"terrain_id"`
	TerrainName     string           `json:"terrainName"`
	Coordinates     []geometry.Point `json:"coordinates"`
	CentroidLat     *float64         `json:"centroid_lat"`
	CentroidLon     *float64         `json:"centroid_lon"`
	AreaHectares    float64          `json:"area_hectares"`
	PerimeterMeters float64          `json:"perimeter_meters"`
	Species         []SpeciesView    `json:"species"`
	CO2KgPerYear    float64          `json:"co2_kg_year"`
}

// ListByUser returns the user's plots with derived geometry fields and
// the annual CO2 estimate recomputed from the species lists.
func (s *PlotService) ListByUser(ctx context.Context, userID uuid.UUID) ([]PlotView, error) {
	plots, err := s.plotRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]PlotView, 0, len(plots))
	for i := range plots {
		view, err := s.toView(&plots[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *PlotService) toView(plot *model.Plot) (PlotView, error) {
	vertices, err := geometry.FromWKT(plot.GeometryWKT)
	if err != nil {
		return PlotView{}, err
	}

	speciesViews := make([]SpeciesView, 0, len(plot.Species))
	entries := make([]estimator.SpeciesEntry, 0, len(plot.Species))
	for _, ps := range plot.Species {
		name := ""
		if ps.Species != nil {
			name = ps.Species.Name
		}
		speciesViews = append(speciesViews, SpeciesView{
			Name:          name,
			SurfaceAreaM2: ps.SurfaceAreaM2,
		})
		entries = append(entries, estimator.SpeciesEntry{
			Name:     name,
			Quantity: ps.SurfaceAreaM2,
		})
	}

	return PlotView{
		TerrainID:       plot.ID,
		TerrainName:     plot.Name,
		Coordinates:     vertices,
		CentroidLat:     plot.CentroidLat,
		CentroidLon:     plot.CentroidLon,
		AreaHectares:    plot.AreaHectares,
		PerimeterMeters: plot.PerimeterMeters,
		Species:         speciesViews,
		CO2KgPerYear:    estimator.Estimate(entries),
	}, nil
}

// ListSpecies returns the seeded species catalog.
func (s *PlotService) ListSpecies(ctx context.Context) ([]model.Species, error) {
	return s.speciesRepo.List(ctx)
}

// EditorPlots converts the user's stored plots into editing-session form.
func (s *PlotService) EditorPlots(ctx context.Context, userID uuid.UUID) ([]editor.Plot, error) {
	plots, err := s.plotRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]editor.Plot, 0, len(plots))
	for i := range plots {
		view, err := s.toView(&plots[i])
		if err != nil {
			return nil, err
		}
		entries := make([]estimator.SpeciesEntry, 0, len(view.Species))
		for _, sv := range view.Species {
			entries = append(entries, estimator.SpeciesEntry{Name: sv.Name, Quantity: sv.SurfaceAreaM2})
		}
		out = append(out, editor.Plot{
			ID:              view.TerrainID.String(),
			Name:            view.TerrainName,
			Species:         entries,
			AreaHectares:    view.AreaHectares,
			PerimeterMeters: view.PerimeterMeters,
			Vertices:        view.Coordinates,
		})
	}
	return out, nil
}

// SaverFor builds the persistence hook editing sessions commit through.
func (s *PlotService) SaverFor(userID uuid.UUID) editor.Saver {
	return &plotSaver{svc: s, userID: userID}
}

type plotSaver struct {
	svc    *PlotService
	userID uuid.UUID
}

func (ps *plotSaver) SavePlot(ctx context.Context, plot editor.Plot, _ geometry.Point) (string, error) {
	saved, err := ps.svc.SaveCoordinates(ctx, ps.userID, SavePlotInput{
		Name:     plot.Name,
		Vertices: plot.Vertices,
		Species:  plot.Species,
	})
	if err != nil {
		return "", err
	}
	return saved.ID.String(), nil
}

// resolveSpecies maps entry names to catalog rows. The allow-list check
// happens first, so arbitrary names never reach the database.
func (s *PlotService) resolveSpecies(ctx context.Context, entries []estimator.SpeciesEntry) ([]model.PlotSpecies, error) {
	out := make([]model.PlotSpecies, 0, len(entries))
	for _, entry := range entries {
		canonical, ok := estimator.Canonical(entry.Name)
		if !ok {
			return nil, ErrInvalidInput
		}
		if entry.Quantity < 0 {
			return nil, ErrInvalidInput
		}
		row, err := s.speciesRepo.GetByName(ctx, canonical)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidInput
			}
			return nil, err
		}
		out = append(out, model.PlotSpecies{
			SpeciesID:     row.ID,
			SurfaceAreaM2: entry.Quantity,
			Species:       row,
		})
	}
	return out, nil
}
