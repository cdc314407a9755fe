// Package milestone holds the pure list transforms applied to a project's
// embedded milestones. Every transform returns a new list and leaves its
// input untouched, so the previous list stays valid as a rollback snapshot.
package milestone

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jefanko/app-updates/internal/domain"
)

var (
	ErrMilestoneNotFound    = errors.New("milestone not found")
	ErrSubMilestoneNotFound = errors.New("sub-milestone not found")
	// ErrDerivedCompletion is returned when toggling a milestone whose
	// completion follows its sub-milestones
	ErrDerivedCompletion = errors.New("milestone completion is derived from its sub-milestones")
)

// Transform derives a new milestone list from the current one
type Transform func(domain.Milestones) (domain.Milestones, error)

// Clone deep-copies a milestone list
func Clone(list domain.Milestones) domain.Milestones {
	out := make(domain.Milestones, len(list))
	for i, m := range list {
		out[i] = cloneOne(m)
	}
	return out
}

func cloneOne(m domain.Milestone) domain.Milestone {
	if m.Tags != nil {
		m.Tags = append([]string(nil), m.Tags...)
	}
	if m.SubMilestones != nil {
		m.SubMilestones = append([]domain.SubMilestone(nil), m.SubMilestones...)
	}
	if m.StartDate != nil {
		v := *m.StartDate
		m.StartDate = &v
	}
	if m.DueDate != nil {
		v := *m.DueDate
		m.DueDate = &v
	}
	return m
}

// New builds a milestone with the board defaults
func New(req domain.CreateMilestoneRequest, now time.Time) domain.Milestone {
	m := domain.Milestone{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Status:        req.Status,
		Priority:      req.Priority,
		Description:   req.Description,
		Tags:          req.Tags,
		StartDate:     req.StartDate,
		DueDate:       req.DueDate,
		SubMilestones: []domain.SubMilestone{},
		CreatedAt:     now.UTC().Format(time.RFC3339),
	}
	if !m.Status.IsValid() {
		m.Status = domain.MilestoneStatusToDo
	}
	if !m.Priority.IsValid() {
		m.Priority = domain.MilestonePriorityNormal
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	m.Completed = m.Status == domain.MilestoneStatusDone
	return m
}

// Add appends m to the end of the list
func Add(m domain.Milestone) Transform {
	return func(list domain.Milestones) (domain.Milestones, error) {
		return append(Clone(list), cloneOne(m)), nil
	}
}

// Update merges the non-nil request fields into the milestone. Moving a
// milestone into or out of Done keeps its completed flag in step.
func Update(id string, req domain.UpdateMilestoneRequest) Transform {
	return editMilestone(id, func(m *domain.Milestone) {
		if req.Name != nil {
			m.Name = *req.Name
		}
		if req.Status != nil {
			m.Status = *req.Status
			m.Completed = *req.Status == domain.MilestoneStatusDone
		}
		if req.Priority != nil {
			m.Priority = *req.Priority
		}
		if req.Description != nil {
			m.Description = *req.Description
		}
		if req.Tags != nil {
			m.Tags = append([]string{}, (*req.Tags)...)
		}
		if req.StartDate != nil {
			m.StartDate = emptyToNil(*req.StartDate)
		}
		if req.DueDate != nil {
			m.DueDate = emptyToNil(*req.DueDate)
		}
	})
}

// Toggle flips completion and moves the milestone to Done or In Progress
func Toggle(id string) Transform {
	return func(list domain.Milestones) (domain.Milestones, error) {
		out := Clone(list)
		m := find(out, id)
		if m == nil {
			return nil, ErrMilestoneNotFound
		}
		if len(m.SubMilestones) > 0 {
			return nil, ErrDerivedCompletion
		}
		m.Completed = !m.Completed
		if m.Completed {
			m.Status = domain.MilestoneStatusDone
		} else {
			m.Status = domain.MilestoneStatusInProgress
		}
		return out, nil
	}
}

// Delete removes the milestone
func Delete(id string) Transform {
	return func(list domain.Milestones) (domain.Milestones, error) {
		out := make(domain.Milestones, 0, len(list))
		found := false
		for _, m := range list {
			if m.ID == id {
				found = true
				continue
			}
			out = append(out, cloneOne(m))
		}
		if !found {
			return nil, ErrMilestoneNotFound
		}
		return out, nil
	}
}

// AddSub appends a sub-milestone named name
func AddSub(milestoneID, name string) Transform {
	return editMilestone(milestoneID, func(m *domain.Milestone) {
		m.SubMilestones = append(m.SubMilestones, domain.SubMilestone{
			ID:   uuid.New().String(),
			Name: name,
		})
	})
}

// ToggleSub flips a sub-milestone's completion
func ToggleSub(milestoneID, subID string) Transform {
	return editSub(milestoneID, subID, func(s *domain.SubMilestone) {
		s.Completed = !s.Completed
	})
}

// RenameSub renames a sub-milestone
func RenameSub(milestoneID, subID, name string) Transform {
	return editSub(milestoneID, subID, func(s *domain.SubMilestone) {
		s.Name = name
	})
}

// DeleteSub removes a sub-milestone
func DeleteSub(milestoneID, subID string) Transform {
	return func(list domain.Milestones) (domain.Milestones, error) {
		out := Clone(list)
		m := find(out, milestoneID)
		if m == nil {
			return nil, ErrMilestoneNotFound
		}
		subs := make([]domain.SubMilestone, 0, len(m.SubMilestones))
		for _, s := range m.SubMilestones {
			if s.ID != subID {
				subs = append(subs, s)
			}
		}
		if len(subs) == len(m.SubMilestones) {
			return nil, ErrSubMilestoneNotFound
		}
		m.SubMilestones = subs
		return out, nil
	}
}

func editMilestone(id string, fn func(*domain.Milestone)) Transform {
	return func(list domain.Milestones) (domain.Milestones, error) {
		out := Clone(list)
		m := find(out, id)
		if m == nil {
			return nil, ErrMilestoneNotFound
		}
		fn(m)
		return out, nil
	}
}

func editSub(milestoneID, subID string, fn func(*domain.SubMilestone)) Transform {
	return func(list domain.Milestones) (domain.Milestones, error) {
		out := Clone(list)
		m := find(out, milestoneID)
		if m == nil {
			return nil, ErrMilestoneNotFound
		}
		for i := range m.SubMilestones {
			if m.SubMilestones[i].ID == subID {
				fn(&m.SubMilestones[i])
				return out, nil
			}
		}
		return nil, ErrSubMilestoneNotFound
	}
}

func find(list domain.Milestones, id string) *domain.Milestone {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
