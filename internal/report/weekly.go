// Package report builds the weekly tender report and the dashboard summary.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/xuri/excelize/v2"
)

const weeklySheet = "Weekly Report"

var weeklyHeaders = []string{
	"No", "Project Name", "Value", "Status", "Customer", "Factory",
	"Remarks Kontraktor", "Remarks Principle", "Remarks AI", "INSULATOR",
	"Remarks", "PIC",
}

var weeklyColWidths = []float64{5, 30, 15, 12, 20, 15, 25, 25, 25, 15, 25, 15}

// WeeklyFilter narrows the weekly report. Search matches the project name
// or the customer name.
type WeeklyFilter struct {
	Status domain.TenderStatus
	Search string
}

// WeeklyRow is one line of the weekly report
type WeeklyRow struct {
	No                int                 `json:"no"`
	ProjectID         string              `json:"projectId"`
	ProjectName       string              `json:"projectName"`
	Value             float64             `json:"value"`
	Status            domain.TenderStatus `json:"status"`
	Customer          string              `json:"customer"`
	Factory           string              `json:"factory"`
	RemarksKontraktor string              `json:"remarksKontraktor"`
	RemarksPrinciple  string              `json:"remarksPrinciple"`
	RemarksAi         string              `json:"remarksAi"`
	Insulator         string              `json:"insulator"`
	Remarks           string              `json:"remarks"`
	PIC               string              `json:"pic"`
}

// WeeklyRows filters projects and orders them by status priority: In
// progress, Quotation, Survey, Win, Loss, then everything else. The order
// within a status is kept.
func WeeklyRows(projects []domain.Project, clients []domain.Client, filter WeeklyFilter) []WeeklyRow {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	customer := func(p domain.Project) string {
		if p.ClientID == nil {
			return "-"
		}
		if name, ok := names[*p.ClientID]; ok && name != "" {
			return name
		}
		return "-"
	}

	selected := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if filter.Status != "" && p.TenderStatus != filter.Status {
			continue
		}
		if !domain.MatchesSearch(p.Name, filter.Search) && !domain.MatchesSearch(customer(p), filter.Search) {
			continue
		}
		selected = append(selected, p)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].TenderStatus.ReportPriority() < selected[j].TenderStatus.ReportPriority()
	})

	rows := make([]WeeklyRow, len(selected))
	for i, p := range selected {
		rows[i] = WeeklyRow{
			No:                i + 1,
			ProjectID:         p.ID,
			ProjectName:       p.Name,
			Value:             p.QuotationPrice,
			Status:            p.TenderStatus,
			Customer:          customer(p),
			Factory:           p.Factory,
			RemarksKontraktor: p.RemarksKontraktor,
			RemarksPrinciple:  p.RemarksPrinciple,
			RemarksAi:         p.RemarksAi,
			Insulator:         p.Insulator,
			Remarks:           p.Remarks,
			PIC:               picName(p),
		}
	}
	return rows
}

// WeeklyFileName names the export after the report date
func WeeklyFileName(now time.Time) string {
	return fmt.Sprintf("Weekly_Report_%s.xlsx", now.Format(domain.DateLayout))
}

// WriteWeekly renders rows as an xlsx workbook
func WriteWeekly(w io.Writer, rows []WeeklyRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", weeklySheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	for i, h := range weeklyHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		if err := f.SetCellValue(weeklySheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(weeklySheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, r := range rows {
		var value interface{} = ""
		if r.Value != 0 {
			value = r.Value
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			r.No, r.ProjectName, value, string(r.Status), r.Customer, r.Factory,
			r.RemarksKontraktor, r.RemarksPrinciple, r.RemarksAi, r.Insulator,
			r.Remarks, r.PIC,
		}
		if err := f.SetSheetRow(weeklySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.No, err)
		}
	}

	for i, width := range weeklyColWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(weeklySheet, col, col, width); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func picName(p domain.Project) string {
	if strings.TrimSpace(p.PIC) != "" {
		return p.PIC
	}
	if p.CreatedBy == nil {
		return "-"
	}
	if p.CreatedBy.Name != "" {
		return p.CreatedBy.Name
	}
	if local, _, _ := strings.Cut(p.CreatedBy.Email, "@"); local != "" {
		return local
	}
	return "-"
}
