package repository

import (
	"context"

	"github.com/jefanko/app-updates/internal/domain"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	*Table[domain.Project]
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{Table: NewTable[domain.Project](db)}
}

// ListByClient returns the projects attached to a client
func (r *ProjectRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Project, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("client_id = ?", clientID))
}

// CountByClient returns how many projects reference the client
func (r *ProjectRepository) CountByClient(ctx context.Context, clientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count, err
}
