package model

import "time"

// ProjectView is one recorded read of a project detail page. Rows are written
// by the background worker, never on the request path.
type ProjectView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	ViewedAt  time.Time `gorm:"not null" json:"viewed_at"`
}
