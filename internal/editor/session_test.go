package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airvana/internal/geometry"
)

type fakeSaver struct {
	calls int
	err   error
	saved []Plot
}

func (f *fakeSaver) SavePlot(_ context.Context, plot Plot, _ geometry.Point) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, plot)
	return "srv-1", nil
}

func triangle() []geometry.Point {
	return []geometry.Point{
		{Lat: 42.50, Lon: 12.50},
		{Lat: 42.51, Lon: 12.50},
		{Lat: 42.50, Lon: 12.51},
	}
}

func TestCreateDraftSingleSlot(t *testing.T) {
	s := NewSession(&fakeSaver{})

	draft, err := s.CreateDraft("  Campo Nord  ")
	require.NoError(t, err)
	assert.Equal(t, "Campo Nord", draft.Name)
	assert.NotEmpty(t, draft.ID)

	_, err = s.CreateDraft("Campo Sud")
	assert.ErrorIs(t, err, ErrDraftExists)

	require.NoError(t, s.DiscardDraft())
	_, err = s.CreateDraft("Campo Sud")
	assert.NoError(t, err)
}

func TestCreateDraftRejectsBlankName(t *testing.T) {
	s := NewSession(&fakeSaver{})
	_, err := s.CreateDraft("   ")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestCreateDraftDeduplicatesName(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Load([]Plot{
		{ID: "a", Name: "Campo"},
		{ID: "b", Name: "Campo (1)"},
	})

	draft, err := s.CreateDraft("Campo")
	require.NoError(t, err)
	assert.Equal(t, "Campo (2)", draft.Name)
}

func TestSelectBlockedWhileDrafting(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Load([]Plot{{ID: "a", Name: "Campo"}})

	_, err := s.CreateDraft("Nuovo")
	require.NoError(t, err)

	_, err = s.SelectPlot("a")
	assert.ErrorIs(t, err, ErrDraftInProgress)

	require.NoError(t, s.DiscardDraft())
	sel, err := s.SelectPlot("a")
	require.NoError(t, err)
	require.NotNil(t, sel.Plot)
	assert.Equal(t, "a", sel.Plot.ID)
}

func TestShapeCreatedRequiresTarget(t *testing.T) {
	s := NewSession(&fakeSaver{})
	_, err := s.ShapeCreated("layer-1", triangle())
	assert.ErrorIs(t, err, ErrNoActiveTarget)
}

func TestShapeCreatedBindsDraftAndComputesDerived(t *testing.T) {
	s := NewSession(&fakeSaver{})
	draft, err := s.CreateDraft("Campo")
	require.NoError(t, err)

	updated, err := s.ShapeCreated("layer-1", triangle())
	require.NoError(t, err)
	assert.Equal(t, draft.ID, updated.ID)
	assert.Equal(t, "layer-1", updated.LayerID)
	assert.Greater(t, updated.AreaHectares, 0.0)
	assert.Greater(t, updated.PerimeterMeters, 0.0)
}

func TestShapeEditedResolvesThroughRegistry(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Load([]Plot{{ID: "a", Name: "Campo"}})
	_, err := s.SelectPlot("a")
	require.NoError(t, err)

	_, err = s.ShapeCreated("layer-1", triangle())
	require.NoError(t, err)

	bigger := []geometry.Point{
		{Lat: 42.50, Lon: 12.50},
		{Lat: 42.52, Lon: 12.50},
		{Lat: 42.50, Lon: 12.52},
	}
	updated, err := s.ShapeEdited("layer-1", bigger)
	require.NoError(t, err)
	assert.Equal(t, "a", updated.ID)

	_, err = s.ShapeEdited("layer-9", bigger)
	assert.ErrorIs(t, err, ErrPlotNotFound)
}

func TestShapeDeletedDetachesGeometryOnly(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Load([]Plot{{ID: "a", Name: "Campo"}})
	_, err := s.SelectPlot("a")
	require.NoError(t, err)
	_, err = s.AddSpecies("a", "Quercia", 100)
	require.NoError(t, err)
	_, err = s.ShapeCreated("layer-1", triangle())
	require.NoError(t, err)

	cleared, err := s.ShapeDeleted("layer-1")
	require.NoError(t, err)
	assert.Empty(t, cleared.Vertices)
	assert.Zero(t, cleared.AreaHectares)
	assert.Empty(t, cleared.LayerID)
	assert.Len(t, cleared.Species, 1)
}

func TestSpeciesValidation(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Load([]Plot{{ID: "a", Name: "Campo"}})

	plot, err := s.AddSpecies("a", "quercia", 100)
	require.NoError(t, err)
	assert.Equal(t, "Quercia", plot.Species[0].Name)

	_, err = s.AddSpecies("a", "Baobab", 100)
	assert.ErrorIs(t, err, ErrUnknownSpecies)

	_, err = s.AddSpecies("a", "Pino", -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.EditSpecies("a", 5, "Pino", 10)
	assert.ErrorIs(t, err, ErrSpeciesIndex)

	plot, err = s.EditSpecies("a", 0, "PINO", 200)
	require.NoError(t, err)
	assert.Equal(t, "Pino", plot.Species[0].Name)
	assert.Equal(t, 200, plot.Species[0].Quantity)

	plot, err = s.RemoveSpecies("a", 0)
	require.NoError(t, err)
	assert.Empty(t, plot.Species)
}

func TestDeletePlotSelectsFirstRemaining(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Load([]Plot{
		{ID: "a", Name: "Uno", Vertices: triangle()},
		{ID: "b", Name: "Due", Vertices: triangle()},
	})
	_, err := s.SelectPlot("b")
	require.NoError(t, err)

	sel, err := s.DeletePlot("b")
	require.NoError(t, err)
	require.NotNil(t, sel.Plot)
	assert.Equal(t, "a", sel.Plot.ID)
	assert.NotNil(t, sel.Bounds)
}

func TestDeleteLastPlotClearsSelection(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Load([]Plot{{ID: "a", Name: "Uno"}})
	_, err := s.SelectPlot("a")
	require.NoError(t, err)

	sel, err := s.DeletePlot("a")
	require.NoError(t, err)
	assert.Nil(t, sel.Plot)
	assert.True(t, sel.ClearedUI)

	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestCommitDraftRequiresPolygon(t *testing.T) {
	s := NewSession(&fakeSaver{})
	_, err := s.CreateDraft("Campo")
	require.NoError(t, err)

	_, err = s.CommitDraft(context.Background())
	assert.ErrorIs(t, err, ErrTooFewVertices)

	// The draft survives the failed commit.
	_, ok := s.Draft()
	assert.True(t, ok)
}

func TestCommitDraftSaveFailureLeavesDraft(t *testing.T) {
	saver := &fakeSaver{err: errors.New("db down")}
	s := NewSession(saver)
	_, err := s.CreateDraft("Campo")
	require.NoError(t, err)
	_, err = s.ShapeCreated("layer-1", triangle())
	require.NoError(t, err)

	_, err = s.CommitDraft(context.Background())
	require.Error(t, err)

	_, ok := s.Draft()
	assert.True(t, ok)
	assert.Empty(t, s.Plots())
}

func TestCommitDraftPromotesAndSelects(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(saver)
	_, err := s.CreateDraft("Campo")
	require.NoError(t, err)
	_, err = s.ShapeCreated("layer-1", triangle())
	require.NoError(t, err)

	saved, err := s.CommitDraft(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "srv-1", saved.ID)
	assert.Equal(t, 1, saver.calls)

	_, ok := s.Draft()
	assert.False(t, ok)

	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "srv-1", selected.ID)

	// The layer binding follows the plot to its server ID.
	_, err = s.ShapeEdited("layer-1", triangle())
	assert.NoError(t, err)
}

// blockingSaver parks every SavePlot call until released, so tests can
// hold a commit in flight.
type blockingSaver struct {
	entered chan struct{}
	release chan struct{}
	calls   int
}

func (b *blockingSaver) SavePlot(_ context.Context, _ Plot, _ geometry.Point) (string, error) {
	b.calls++
	b.entered <- struct{}{}
	<-b.release
	return "srv-1", nil
}

func TestCommitDraftConcurrentSecondCommitRejected(t *testing.T) {
	saver := &blockingSaver{
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	s := NewSession(saver)
	_, err := s.CreateDraft("Campo")
	require.NoError(t, err)
	_, err = s.ShapeCreated("layer-1", triangle())
	require.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.CommitDraft(context.Background())
		firstDone <- err
	}()
	<-saver.entered

	// The first commit is parked inside the saver; a second commit of the
	// same draft must fail instead of saving again.
	_, err = s.CommitDraft(context.Background())
	assert.ErrorIs(t, err, ErrCommitInProgress)

	// Discarding mid-commit is rejected too.
	assert.ErrorIs(t, s.DiscardDraft(), ErrCommitInProgress)

	close(saver.release)
	require.NoError(t, <-firstDone)

	assert.Equal(t, 1, saver.calls)
	assert.Len(t, s.Plots(), 1)
}

func TestCommitDraftFailureAllowsRetry(t *testing.T) {
	saver := &fakeSaver{err: errors.New("db down")}
	s := NewSession(saver)
	_, err := s.CreateDraft("Campo")
	require.NoError(t, err)
	_, err = s.ShapeCreated("layer-1", triangle())
	require.NoError(t, err)

	_, err = s.CommitDraft(context.Background())
	require.Error(t, err)

	saver.err = nil
	saved, err := s.CommitDraft(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "srv-1", saved.ID)
}

func TestLoadKeepsDraftLayerBinding(t *testing.T) {
	s := NewSession(&fakeSaver{})
	_, err := s.CreateDraft("Campo")
	require.NoError(t, err)
	_, err = s.ShapeCreated("layer-1", triangle())
	require.NoError(t, err)

	s.Load([]Plot{{ID: "a", Name: "Salvato", LayerID: "layer-2"}})

	// The draft's layer still resolves after a reload.
	updated, err := s.ShapeEdited("layer-1", triangle())
	require.NoError(t, err)
	draft, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, draft.ID, updated.ID)
}

func TestCO2RecomputedFromSpecies(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Load([]Plot{{ID: "a", Name: "Campo"}})

	plot, err := s.AddSpecies("a", "Quercia", 1000)
	require.NoError(t, err)
	assert.Equal(t, 215.00, plot.CO2KgPerYear())

	plot, err = s.EditSpecies("a", 0, "Quercia", 2000)
	require.NoError(t, err)
	assert.Equal(t, 430.00, plot.CO2KgPerYear())
}
