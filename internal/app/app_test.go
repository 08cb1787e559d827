package app

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio-backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Project{}, &model.ProjectView{}))
	return db
}

// recordingPublisher captures published view events in place of RabbitMQ.
type recordingPublisher struct {
	mu     sync.Mutex
	events []model.ProjectView
}

func (p *recordingPublisher) Publish(_ context.Context, view model.ProjectView) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, view)
	return nil
}

func (p *recordingPublisher) published() []model.ProjectView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.ProjectView(nil), p.events...)
}
