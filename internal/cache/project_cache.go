package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"portfolio-backend/internal/model"
)

// ProjectCache keeps short-lived copies of project reads in Redis. List pages
// are keyed under a generation counter; bumping the counter on any write
// orphans every cached page at once, and the TTL reclaims the orphans.
type ProjectCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewProjectCache(client *redisv9.Client, ttl time.Duration) *ProjectCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ProjectCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ProjectCache) GetProject(ctx context.Context, id uint) (*model.Project, bool, error) {
	raw, err := c.client.Get(ctx, c.projectKey(id)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get project failed: %w", err)
	}

	var project model.Project
	if err := json.Unmarshal([]byte(raw), &project); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached project failed: %w", err)
	}
	return &project, true, nil
}

func (c *ProjectCache) SetProject(ctx context.Context, project *model.Project) error {
	payload, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("marshal project cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.projectKey(project.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set project failed: %w", err)
	}
	return nil
}

func (c *ProjectCache) DeleteProject(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, c.projectKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete project failed: %w", err)
	}
	return nil
}

func (c *ProjectCache) GetList(ctx context.Context, skip, limit int) ([]model.Project, bool, error) {
	key, err := c.listKey(ctx, skip, limit)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get project list failed: %w", err)
	}

	var projects []model.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached project list failed: %w", err)
	}
	return projects, true, nil
}

func (c *ProjectCache) SetList(ctx context.Context, skip, limit int, projects []model.Project) error {
	key, err := c.listKey(ctx, skip, limit)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("marshal project list cache failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set project list failed: %w", err)
	}
	return nil
}

func (c *ProjectCache) InvalidateLists(ctx context.Context) error {
	if err := c.client.Incr(ctx, "projects:list:gen").Err(); err != nil {
		return fmt.Errorf("redis bump list generation failed: %w", err)
	}
	return nil
}

func (c *ProjectCache) projectKey(id uint) string {
	return fmt.Sprintf("projects:item:%d", id)
}

func (c *ProjectCache) listKey(ctx context.Context, skip, limit int) (string, error) {
	gen, err := c.client.Get(ctx, "projects:list:gen").Int64()
	if err != nil && err != redisv9.Nil {
		return "", fmt.Errorf("redis get list generation failed: %w", err)
	}
	return fmt.Sprintf("projects:list:%d:%d:%d", gen, skip, limit), nil
}
