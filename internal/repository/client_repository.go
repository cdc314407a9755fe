package repository

import (
	"context"

	"github.com/jefanko/app-updates/internal/domain"
	"gorm.io/gorm"
)

type ClientRepository struct {
	*Table[domain.Client]
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{Table: NewTable[domain.Client](db)}
}

// ListByOrg returns the clients of one business unit, newest first
func (r *ClientRepository) ListByOrg(ctx context.Context, org domain.Org) ([]domain.Client, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("org = ?", org))
}
