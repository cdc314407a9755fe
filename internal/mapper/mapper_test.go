package mapper_test

import (
	"testing"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/mapper"
	"github.com/stretchr/testify/assert"
)

func TestToProjectDTO(t *testing.T) {
	p := domain.Project{
		ID:   "p1",
		Name: "Substation upgrade",
		Milestones: domain.Milestones{
			{ID: "m1", Completed: true},
			{ID: "m2"},
			{ID: "m3", SubMilestones: []domain.SubMilestone{{ID: "s1", Completed: true}}},
			{ID: "m4"},
		},
		TenderExpenses: domain.TenderExpenses{
			{ID: "e1", Name: "Bond", Amount: 1500},
			{ID: "e2", Name: "Travel", Amount: 250.5},
		},
	}

	dto := mapper.ToProjectDTO(p, true)

	assert.Equal(t, "p1", dto.ID)
	assert.Equal(t, domain.Progress{Completed: 2, Total: 4, Percentage: 50}, dto.Progress)
	assert.InDelta(t, 1750.5, dto.ExpensesTotal, 0.001)
	assert.True(t, dto.CanEdit)
}

func TestToProjectDTOs(t *testing.T) {
	projects := []domain.Project{{ID: "mine"}, {ID: "theirs"}}

	dtos := mapper.ToProjectDTOs(projects, func(p domain.Project) bool { return p.ID == "mine" })

	assert.Len(t, dtos, 2)
	assert.True(t, dtos[0].CanEdit)
	assert.False(t, dtos[1].CanEdit)
	assert.Equal(t, domain.Progress{}, dtos[0].Progress)
}
