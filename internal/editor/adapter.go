package editor

import "airvana/internal/geometry"

// Shape events translate drawing-layer callbacks from the map client into
// store operations. The layer registry keeps the mapping between drawing
// layer IDs and plot IDs so edits and deletions resolve in one lookup.

// ShapeCreated binds a freshly drawn layer to the current target: the
// draft when one exists, otherwise the selected plot. With neither, the
// event is rejected so a stray drawing never lands on an arbitrary plot.
func (s *Session) ShapeCreated(layerID string, vertices []geometry.Point) (Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.draft
	if target == nil {
		target = s.findSaved(s.selectedID)
	}
	if target == nil {
		return Plot{}, ErrNoActiveTarget
	}
	if err := s.applyPolygon(target, vertices); err != nil {
		return Plot{}, err
	}

	// Re-drawing replaces the previous layer binding for this plot.
	if target.LayerID != "" && target.LayerID != layerID {
		delete(s.layers, target.LayerID)
	}
	target.LayerID = layerID
	s.layers[layerID] = target.ID
	return target.clone(), nil
}

// ShapeEdited updates the polygon of whichever plot owns the layer.
func (s *Session) ShapeEdited(layerID string, vertices []geometry.Point) (Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plotID, ok := s.layers[layerID]
	if !ok {
		return Plot{}, ErrPlotNotFound
	}
	target := s.find(plotID)
	if target == nil {
		delete(s.layers, layerID)
		return Plot{}, ErrPlotNotFound
	}
	if err := s.applyPolygon(target, vertices); err != nil {
		return Plot{}, err
	}
	return target.clone(), nil
}

// ShapeDeleted detaches the polygon from the owning plot. The plot itself
// and its species list survive; only the geometry is cleared.
func (s *Session) ShapeDeleted(layerID string) (Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plotID, ok := s.layers[layerID]
	if !ok {
		return Plot{}, ErrPlotNotFound
	}
	target := s.find(plotID)
	if target == nil {
		delete(s.layers, layerID)
		return Plot{}, ErrPlotNotFound
	}
	s.clearPolygon(target)
	return target.clone(), nil
}
