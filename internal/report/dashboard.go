package report

import (
	"sort"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
)

const (
	upcomingWindowDays = 7
	deadlineListLimit  = 5
)

// Deadline is a project listed on the dashboard because of its due date
type Deadline struct {
	ProjectID    string              `json:"projectId"`
	Name         string              `json:"name"`
	DueDate      string              `json:"dueDate"`
	DaysUntilDue int                 `json:"daysUntilDue"`
	Label        string              `json:"label"`
	Status       domain.TenderStatus `json:"status"`
}

// Dashboard summarises the tender pipeline
type Dashboard struct {
	Total      int                         `json:"total"`
	ByStatus   map[domain.TenderStatus]int `json:"byStatus"`
	TotalValue float64                     `json:"totalValue"`
	WinValue   float64                     `json:"winValue"`
	// Formatted values in Rupiah
	TotalValueDisplay string     `json:"totalValueDisplay"`
	WinValueDisplay   string     `json:"winValueDisplay"`
	Upcoming          []Deadline `json:"upcoming"`
	Overdue           []Deadline `json:"overdue"`
}

// BuildDashboard computes the dashboard for projects as of now. Upcoming
// lists open tenders due within seven days, soonest first; overdue lists
// open tenders past their due date. Both are capped at five entries.
func BuildDashboard(projects []domain.Project, now time.Time) Dashboard {
	d := Dashboard{
		Total:    len(projects),
		ByStatus: make(map[domain.TenderStatus]int, len(domain.TenderStatuses)),
		Upcoming: []Deadline{},
		Overdue:  []Deadline{},
	}
	for _, s := range domain.TenderStatuses {
		d.ByStatus[s] = 0
	}

	for _, p := range projects {
		d.ByStatus[p.TenderStatus]++
		d.TotalValue += p.QuotationPrice
		if p.TenderStatus == domain.TenderStatusWin {
			d.WinValue += p.QuotationPrice
		}

		if p.TenderStatus.IsClosed() || p.DueDate == nil {
			continue
		}
		days, ok := domain.DaysUntilDue(*p.DueDate, now)
		if !ok {
			continue
		}
		entry := Deadline{
			ProjectID:    p.ID,
			Name:         p.Name,
			DueDate:      *p.DueDate,
			DaysUntilDue: days,
			Label:        domain.DueDateDisplay(*p.DueDate, now),
			Status:       p.TenderStatus,
		}
		switch {
		case days < 0:
			d.Overdue = append(d.Overdue, entry)
		case days <= upcomingWindowDays:
			d.Upcoming = append(d.Upcoming, entry)
		}
	}

	sort.SliceStable(d.Upcoming, func(i, j int) bool {
		return d.Upcoming[i].DaysUntilDue < d.Upcoming[j].DaysUntilDue
	})
	if len(d.Upcoming) > deadlineListLimit {
		d.Upcoming = d.Upcoming[:deadlineListLimit]
	}
	if len(d.Overdue) > deadlineListLimit {
		d.Overdue = d.Overdue[:deadlineListLimit]
	}

	d.TotalValueDisplay = domain.FormatCurrency(d.TotalValue)
	d.WinValueDisplay = domain.FormatCurrency(d.WinValue)
	return d
}
