package domain

import "math"

// MilestoneStatus is the board column a milestone sits in
type MilestoneStatus string

const (
	MilestoneStatusToDo       MilestoneStatus = "To Do"
	MilestoneStatusInProgress MilestoneStatus = "In Progress"
	MilestoneStatusDone       MilestoneStatus = "Done"
)

// IsValid checks if the milestone status is valid
func (s MilestoneStatus) IsValid() bool {
	switch s {
	case MilestoneStatusToDo, MilestoneStatusInProgress, MilestoneStatusDone:
		return true
	}
	return false
}

// MilestonePriority ranks milestones on the board
type MilestonePriority string

const (
	MilestonePriorityLow    MilestonePriority = "Low"
	MilestonePriorityNormal MilestonePriority = "Normal"
	MilestonePriorityHigh   MilestonePriority = "High"
	MilestonePriorityUrgent MilestonePriority = "Urgent"
)

// IsValid checks if the milestone priority is valid
func (p MilestonePriority) IsValid() bool {
	switch p {
	case MilestonePriorityLow, MilestonePriorityNormal, MilestonePriorityHigh, MilestonePriorityUrgent:
		return true
	}
	return false
}

// Milestone is a project step stored inside the project row
type Milestone struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Completed     bool              `json:"completed"`
	Status        MilestoneStatus   `json:"status"`
	Priority      MilestonePriority `json:"priority"`
	Description   string            `json:"description"`
	Tags          []string          `json:"tags"`
	StartDate     *string           `json:"startDate"`
	DueDate       *string           `json:"dueDate"`
	SubMilestones []SubMilestone    `json:"subMilestones"`
	CreatedAt     string            `json:"createdAt,omitempty"`
}

// SubMilestone is a checklist entry under a milestone
type SubMilestone struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type Milestones []Milestone

// IsComplete derives completion: a milestone with sub-milestones is complete
// only when all of them are, otherwise its own flag decides.
func (m Milestone) IsComplete() bool {
	if len(m.SubMilestones) == 0 {
		return m.Completed
	}
	for _, sub := range m.SubMilestones {
		if !sub.Completed {
			return false
		}
	}
	return true
}

// Progress holds completion counters and a rounded percentage
type Progress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// CalculateProgress computes project progress from milestone completion
func CalculateProgress(milestones []Milestone) Progress {
	p := Progress{Total: len(milestones)}
	for _, m := range milestones {
		if m.IsComplete() {
			p.Completed++
		}
	}
	p.Percentage = percentage(p.Completed, p.Total)
	return p
}

// CalculateSubProgress computes progress across sub-milestones
func CalculateSubProgress(subs []SubMilestone) Progress {
	p := Progress{Total: len(subs)}
	for _, s := range subs {
		if s.Completed {
			p.Completed++
		}
	}
	p.Percentage = percentage(p.Completed, p.Total)
	return p
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
