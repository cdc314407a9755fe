// Package mapper converts mirrored entities into the shapes the UI reads
package mapper

import (
	"github.com/jefanko/app-updates/internal/domain"
)

// ToProjectDTO converts a Project to ProjectDTO, deriving progress and the
// expense total. canEdit is decided by the caller's permissions.
func ToProjectDTO(project domain.Project, canEdit bool) domain.ProjectDTO {
	return domain.ProjectDTO{
		Project:       project,
		Progress:      project.Progress(),
		ExpensesTotal: project.TenderExpenses.Total(),
		CanEdit:       canEdit,
	}
}

// ToProjectDTOs converts a list, asking canEdit for every project
func ToProjectDTOs(projects []domain.Project, canEdit func(domain.Project) bool) []domain.ProjectDTO {
	dtos := make([]domain.ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p, canEdit(p))
	}
	return dtos
}
