package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio-backend/internal/model"
	"portfolio-backend/internal/repository"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectCache holds read-side copies of project rows. A nil cache disables
// caching without changing any handler semantics.
type ProjectCache interface {
	GetProject(ctx context.Context, id uint) (*model.Project, bool, error)
	SetProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id uint) error
	GetList(ctx context.Context, skip, limit int) ([]model.Project, bool, error)
	SetList(ctx context.Context, skip, limit int, projects []model.Project) error
	InvalidateLists(ctx context.Context) error
}

// ViewPublisher hands a view event to the async pipeline. A nil publisher
// disables view recording.
type ViewPublisher interface {
	Publish(ctx context.Context, view model.ProjectView) error
}

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	cache       ProjectCache
	publisher   ViewPublisher
}

type ProjectInput struct {
	Title       string
	Description string
	ImageURL    string
	ProjectURL  string
}

func NewProjectService(projectRepo *repository.ProjectRepository, cache ProjectCache, publisher ViewPublisher) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		cache:       cache,
		publisher:   publisher,
	}
}

func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*model.Project, error) {
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}

	project := &model.Project{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		ProjectURL:  input.ProjectURL,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateLists(ctx)
	}
	return project, nil
}

// Get returns one project and, when a publisher is wired, records the view
// asynchronously. A publish failure never fails the read.
func (s *ProjectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	if id == 0 {
		return nil, ErrProjectNotFound
	}

	project, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, model.ProjectView{
			ProjectID: project.ID,
			ViewedAt:  time.Now(),
		})
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, skip, limit int) ([]model.Project, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if s.cache != nil {
		if cached, hit, err := s.cache.GetList(ctx, skip, limit); err == nil && hit {
			return cached, nil
		}
	}

	projects, err := s.projectRepo.List(skip, limit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetList(ctx, skip, limit, projects)
	}
	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, id uint, input ProjectInput) (*model.Project, error) {
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	project.Title = strings.TrimSpace(input.Title)
	project.Description = input.Description
	project.ImageURL = input.ImageURL
	project.ProjectURL = input.ProjectURL
	if err := s.projectRepo.Update(project); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProjectService) lookup(ctx context.Context, id uint) (*model.Project, error) {
	if s.cache != nil {
		if cached, hit, err := s.cache.GetProject(ctx, id); err == nil && hit {
			return cached, nil
		}
	}

	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if s.cache != nil {
		_ = s.cache.SetProject(ctx, project)
	}
	return project, nil
}

func (s *ProjectService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeleteProject(ctx, id)
	_ = s.cache.InvalidateLists(ctx)
}

func validateProjectInput(input ProjectInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return ErrInvalidInput
	}
	if input.ImageURL == "" || input.ProjectURL == "" {
		return ErrInvalidInput
	}
	return nil
}
