// Package editor owns the plot editing state for one user: the list of
// saved plots, the single draft slot, the current selection and the
// layer-to-plot registry. It is the server-side form of what the map page
// used to keep in page globals, with the invariants enforced here instead
// of by UI gating.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"airvana/internal/estimator"
	"airvana/internal/geometry"
)

var (
	ErrNameRequired     = errors.New("plot name required")
	ErrDraftExists      = errors.New("a draft plot already exists")
	ErrDraftInProgress  = errors.New("finish or discard the draft plot first")
	ErrNoDraft          = errors.New("no draft plot")
	ErrPlotNotFound     = errors.New("plot not found")
	ErrUnknownSpecies   = errors.New("species not in the allow-list")
	ErrInvalidQuantity  = errors.New("quantity must be a non-negative integer")
	ErrSpeciesIndex     = errors.New("species index out of range")
	ErrNoActiveTarget   = errors.New("no draft or selected plot to draw for")
	ErrTooFewVertices   = errors.New("a polygon needs at least three vertices")
	ErrCommitInProgress = errors.New("draft commit already in progress")
)

// Plot is the editing-session view of a plot. IDs are opaque strings:
// timestamp-derived for drafts, server-assigned once committed.
type Plot struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Species         []estimator.SpeciesEntry `json:"species"`
	AreaHectares    float64                  `json:"area_ha"`
	PerimeterMeters float64                  `json:"perimeter_m"`
	Vertices        []geometry.Point         `json:"vertices"`
	LayerID         string                   `json:"layer_id,omitempty"`
}

// CO2KgPerYear is recomputed from the species list on every read; it is
// never stored independently.
func (p Plot) CO2KgPerYear() float64 {
	return estimator.Estimate(p.Species)
}

func (p Plot) clone() Plot {
	c := p
	c.Species = append([]estimator.SpeciesEntry(nil), p.Species...)
	c.Vertices = append([]geometry.Point(nil), p.Vertices...)
	return c
}

// Saver persists a committed draft. Implementations return the
// server-assigned plot ID.
type Saver interface {
	SavePlot(ctx context.Context, plot Plot, centroid geometry.Point) (string, error)
}

// Selection describes the plot that became active after a select or
// delete operation, plus the bounds the client should recenter on.
type Selection struct {
	Plot      *Plot            `json:"plot,omitempty"`
	Bounds    *geometry.Bounds `json:"bounds,omitempty"`
	ClearedUI bool             `json:"cleared"`
}

// Session is safe for concurrent handlers. All reads return copies; the
// internal records never escape the lock.
type Session struct {
	mu         sync.Mutex
	plots      []*Plot
	draft      *Plot
	committing bool
	selectedID string
	layers     map[string]string // layer ID -> plot ID
	saver      Saver
	now        func() time.Time
}

func NewSession(saver Saver) *Session {
	return &Session{
		layers: make(map[string]string),
		saver:  saver,
		now:    time.Now,
	}
}

// Load seeds the session with the persisted plot list, replacing any
// previous state except an in-flight draft, which is preserved.
func (s *Session) Load(plots []Plot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plots = s.plots[:0]
	s.layers = make(map[string]string)
	s.selectedID = ""
	for i := range plots {
		p := plots[i].clone()
		if p.LayerID != "" {
			s.layers[p.LayerID] = p.ID
		}
		s.plots = append(s.plots, &p)
	}
	if s.draft != nil && s.draft.LayerID != "" {
		s.layers[s.draft.LayerID] = s.draft.ID
	}
}

// CreateDraft opens the single draft slot. A second draft is rejected by
// the store itself, not just by the UI.
func (s *Session) CreateDraft(name string) (Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := trimName(name)
	if trimmed == "" {
		return Plot{}, ErrNameRequired
	}
	if s.draft != nil {
		return Plot{}, ErrDraftExists
	}

	s.draft = &Plot{
		ID:   strconv.FormatInt(s.now().UnixMilli(), 10),
		Name: s.dedupeName(trimmed),
	}
	return s.draft.clone(), nil
}

// DiscardDraft frees the draft slot without persisting anything.
func (s *Session) DiscardDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return ErrNoDraft
	}
	if s.committing {
		return ErrCommitInProgress
	}
	if s.draft.LayerID != "" {
		delete(s.layers, s.draft.LayerID)
	}
	s.draft = nil
	return nil
}

// RenameDraft renames the draft in place, keeping the name unique.
func (s *Session) RenameDraft(name string) (Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := trimName(name)
	if trimmed == "" {
		return Plot{}, ErrNameRequired
	}
	if s.draft == nil {
		return Plot{}, ErrNoDraft
	}
	s.draft.Name = s.dedupeName(trimmed)
	return s.draft.clone(), nil
}

// AttachPolygon replaces the polygon of a plot or the draft, recomputing
// the derived fields. Species and the CO2 estimate are untouched.
func (s *Session) AttachPolygon(plotID string, vertices []geometry.Point) (Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.find(plotID)
	if target == nil {
		return Plot{}, ErrPlotNotFound
	}
	if err := s.applyPolygon(target, vertices); err != nil {
		return Plot{}, err
	}
	return target.clone(), nil
}

// DetachPolygon clears a plot's geometry and its layer reference.
func (s *Session) DetachPolygon(plotID string) (Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.find(plotID)
	if target == nil {
		return Plot{}, ErrPlotNotFound
	}
	s.clearPolygon(target)
	return target.clone(), nil
}

func (s *Session) AddSpecies(plotID, name string, quantity int) (Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.find(plotID)
	if target == nil {
		return Plot{}, ErrPlotNotFound
	}
	entry, err := validateSpecies(name, quantity)
	if err != nil {
		return Plot{}, err
	}
	target.Species = append(target.Species, entry)
	return target.clone(), nil
}

func (s *Session) EditSpecies(plotID string, index int, name string, quantity int) (Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.find(plotID)
	if target == nil {
		return Plot{}, ErrPlotNotFound
	}
	if index < 0 || index >= len(target.Species) {
		return Plot{}, ErrSpeciesIndex
	}
	entry, err := validateSpecies(name, quantity)
	if err != nil {
		return Plot{}, err
	}
	target.Species[index] = entry
	return target.clone(), nil
}

func (s *Session) RemoveSpecies(plotID string, index int) (Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.find(plotID)
	if target == nil {
		return Plot{}, ErrPlotNotFound
	}
	if index < 0 || index >= len(target.Species) {
		return Plot{}, ErrSpeciesIndex
	}
	target.Species = append(target.Species[:index], target.Species[index+1:]...)
	return target.clone(), nil
}

// SelectPlot activates a saved plot. Blocked while a draft exists.
func (s *Session) SelectPlot(plotID string) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft != nil {
		return Selection{}, ErrDraftInProgress
	}
	target := s.findSaved(plotID)
	if target == nil {
		return Selection{}, ErrPlotNotFound
	}
	s.selectedID = plotID
	return s.selectionLocked(), nil
}

// DeletePlot removes a saved plot and its layer binding. When the deleted
// plot was selected, the first remaining plot is selected, or the
// selection is cleared entirely if none remain.
func (s *Session) DeletePlot(plotID string) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, p := range s.plots {
		if p.ID == plotID {
			index = i
			break
		}
	}
	if index == -1 {
		return Selection{}, ErrPlotNotFound
	}

	removed := s.plots[index]
	if removed.LayerID != "" {
		delete(s.layers, removed.LayerID)
	}
	s.plots = append(s.plots[:index], s.plots[index+1:]...)

	if s.selectedID == plotID {
		if len(s.plots) > 0 {
			s.selectedID = s.plots[0].ID
		} else {
			s.selectedID = ""
			return Selection{ClearedUI: true}, nil
		}
	}
	return s.selectionLocked(), nil
}

// CommitDraft validates and persists the draft. On any validation or save
// failure the draft is left untouched; there is no partial commit.
// Only one commit can be in flight: a competing call fails with
// ErrCommitInProgress instead of saving the draft a second time.
func (s *Session) CommitDraft(ctx context.Context) (Plot, error) {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return Plot{}, ErrNoDraft
	}
	if s.committing {
		s.mu.Unlock()
		return Plot{}, ErrCommitInProgress
	}
	if len(s.draft.Vertices) < 3 {
		s.mu.Unlock()
		return Plot{}, ErrTooFewVertices
	}
	s.committing = true
	snapshot := s.draft.clone()
	s.mu.Unlock()

	centroid, err := geometry.Centroid(snapshot.Vertices)
	if err != nil {
		s.endCommit()
		return Plot{}, err
	}

	// The save happens outside the lock; the committing flag keeps the
	// draft slot occupied and blocks a second commit meanwhile.
	serverID, err := s.saver.SavePlot(ctx, snapshot, centroid)
	if err != nil {
		s.endCommit()
		return Plot{}, fmt.Errorf("save plot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.committing = false

	saved := snapshot.clone()
	saved.ID = serverID
	if saved.LayerID != "" {
		s.layers[saved.LayerID] = saved.ID
	}
	s.plots = append(s.plots, &saved)
	s.draft = nil
	s.selectedID = saved.ID
	return saved.clone(), nil
}

func (s *Session) endCommit() {
	s.mu.Lock()
	s.committing = false
	s.mu.Unlock()
}

// Draft returns a copy of the draft plot, if any.
func (s *Session) Draft() (Plot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return Plot{}, false
	}
	return s.draft.clone(), true
}

// Plots returns copies of the saved plots in insertion order.
func (s *Session) Plots() []Plot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Plot, 0, len(s.plots))
	for _, p := range s.plots {
		out = append(out, p.clone())
	}
	return out
}

// Selected returns a copy of the currently selected plot.
func (s *Session) Selected() (Plot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.findSaved(s.selectedID); p != nil {
		return p.clone(), true
	}
	return Plot{}, false
}

func (s *Session) selectionLocked() Selection {
	target := s.findSaved(s.selectedID)
	if target == nil {
		return Selection{ClearedUI: true}
	}
	sel := Selection{}
	plot := target.clone()
	sel.Plot = &plot
	if b, ok := geometry.PolygonBounds(target.Vertices); ok {
		sel.Bounds = &b
	}
	return sel
}

// find resolves the draft first, then the saved list, mirroring the
// "draft wins" rule of the editing page.
func (s *Session) find(plotID string) *Plot {
	if s.draft != nil && s.draft.ID == plotID {
		return s.draft
	}
	return s.findSaved(plotID)
}

func (s *Session) findSaved(plotID string) *Plot {
	if plotID == "" {
		return nil
	}
	for _, p := range s.plots {
		if p.ID == plotID {
			return p
		}
	}
	return nil
}

func (s *Session) applyPolygon(target *Plot, vertices []geometry.Point) error {
	if len(vertices) < 3 {
		return ErrTooFewVertices
	}
	target.Vertices = append([]geometry.Point(nil), vertices...)
	target.AreaHectares = geometry.Area(target.Vertices)
	target.PerimeterMeters = geometry.Perimeter(target.Vertices)
	return nil
}

func (s *Session) clearPolygon(target *Plot) {
	if target.LayerID != "" {
		delete(s.layers, target.LayerID)
		target.LayerID = ""
	}
	target.Vertices = nil
	target.AreaHectares = 0
	target.PerimeterMeters = 0
}

func (s *Session) dedupeName(name string) string {
	candidate := name
	counter := 1
	for s.nameTaken(candidate) {
		candidate = fmt.Sprintf("%s (%d)", name, counter)
		counter++
	}
	return candidate
}

func (s *Session) nameTaken(name string) bool {
	for _, p := range s.plots {
		if p.Name == name {
			return true
		}
	}
	return false
}

func validateSpecies(name string, quantity int) (estimator.SpeciesEntry, error) {
	canonical, ok := estimator.Canonical(name)
	if !ok {
		return estimator.SpeciesEntry{}, ErrUnknownSpecies
	}
	if quantity < 0 {
		return estimator.SpeciesEntry{}, ErrInvalidQuantity
	}
	return estimator.SpeciesEntry{Name: canonical, Quantity: quantity}, nil
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}
