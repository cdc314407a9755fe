package repository

import (
	"context"

	"github.com/jefanko/app-updates/internal/domain"
	"gorm.io/gorm"
)

type CommentRepository struct {
	*Table[domain.Comment]
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{Table: NewTable[domain.Comment](db)}
}

// ListByProject returns a project's comments, newest first
func (r *CommentRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Comment, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("project_id = ?", projectID))
}
