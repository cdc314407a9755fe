package repository

import (
	"context"

	"github.com/jefanko/app-updates/internal/domain"
	"gorm.io/gorm"
)

type ChecklistRepository struct {
	*Table[domain.Checklist]
}

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{Table: NewTable[domain.Checklist](db)}
}

// ListByOrg returns the checklist templates of one business unit
func (r *ChecklistRepository) ListByOrg(ctx context.Context, org domain.Org) ([]domain.Checklist, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("org = ?", org))
}
