package http

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airvana/internal/editor"
	"airvana/internal/service"
)

func TestRemovePlotStorageFailureKeepsSession(t *testing.T) {
	plotID := uuid.New()
	sessionCalled := false

	_, _, err := removePlot(plotID.String(),
		func(uuid.UUID) error { return errors.New("db down") },
		func(string) (editor.Selection, error) {
			sessionCalled = true
			return editor.Selection{}, nil
		},
	)

	require.Error(t, err)
	assert.False(t, sessionCalled, "session delete must not run when storage delete fails")
}

func TestRemovePlotStorageFirstThenSession(t *testing.T) {
	plotID := uuid.New()
	var order []string

	selection, stored, err := removePlot(plotID.String(),
		func(uuid.UUID) error {
			order = append(order, "storage")
			return nil
		},
		func(string) (editor.Selection, error) {
			order = append(order, "session")
			return editor.Selection{ClearedUI: true}, nil
		},
	)

	require.NoError(t, err)
	assert.True(t, stored)
	assert.True(t, selection.ClearedUI)
	assert.Equal(t, []string{"storage", "session"}, order)
}

func TestRemovePlotNotFoundInStorageStillDropsFromSession(t *testing.T) {
	plotID := uuid.New()

	_, stored, err := removePlot(plotID.String(),
		func(uuid.UUID) error { return service.ErrNotFound },
		func(string) (editor.Selection, error) { return editor.Selection{}, nil },
	)

	require.NoError(t, err)
	assert.True(t, stored)
}

func TestRemovePlotDraftIDSkipsStorage(t *testing.T) {
	storageCalled := false

	_, stored, err := removePlot("1756300000000",
		func(uuid.UUID) error {
			storageCalled = true
			return nil
		},
		func(string) (editor.Selection, error) { return editor.Selection{}, nil },
	)

	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, storageCalled)
}
