package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/model"
)

// Mirrors the worker path: the event arrives as JSON off the queue and is
// persisted as-is.
func TestProjectViewRepositoryPersistsDecodedEvent(t *testing.T) {
	repo := NewProjectViewRepository(newTestDB(t))

	payload, err := json.Marshal(model.ProjectView{
		ProjectID: 7,
		ViewedAt:  time.Now().Truncate(time.Second),
	})
	require.NoError(t, err)

	var view model.ProjectView
	require.NoError(t, json.Unmarshal(payload, &view))
	require.NoError(t, repo.Create(&view))

	count, err := repo.CountByProjectID(7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountByProjectID(8)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
