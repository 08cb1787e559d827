package repository

import (
	"fmt"

	"gorm.io/gorm"

	"portfolio-backend/internal/model"
)

type ProjectViewRepository struct {
	db *gorm.DB
}

func NewProjectViewRepository(db *gorm.DB) *ProjectViewRepository {
	return &ProjectViewRepository{db: db}
}

func (r *ProjectViewRepository) Create(view *model.ProjectView) error {
	if err := r.db.Create(view).Error; err != nil {
		return fmt.Errorf("create project view failed: %w", err)
	}
	return nil
}

func (r *ProjectViewRepository) CountByProjectID(projectID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.ProjectView{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count project views failed: %w", err)
	}
	return count, nil
}
