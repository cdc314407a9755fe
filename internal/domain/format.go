package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout used for due dates and start dates
const DateLayout = "2006-01-02"

// FormatCurrency renders an amount in Rupiah with Indonesian digit grouping,
// e.g. "Rp 1.250.000,5".
func FormatCurrency(amount float64) string {
	if amount == 0 {
		return "Rp 0"
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	rounded := math.Round(amount*1000) / 1000
	whole := math.Floor(rounded)
	frac := strconv.FormatFloat(rounded-whole, 'f', 3, 64)
	frac = strings.TrimRight(strings.TrimPrefix(frac, "0."), "0")

	digits := strconv.FormatFloat(whole, 'f', 0, 64)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := "Rp " + sign + b.String()
	if frac != "" {
		out += "," + frac
	}
	return out
}

// DaysUntilDue returns the number of calendar days from now until dueDate.
// ok is false when the date is empty or unparsable.
func DaysUntilDue(dueDate string, now time.Time) (days int, ok bool) {
	if dueDate == "" {
		return 0, false
	}
	due, err := time.ParseInLocation(DateLayout, dueDate, now.Location())
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Ceil(due.Sub(today).Hours() / 24)), true
}

// IsOverdue reports whether dueDate lies before today
func IsOverdue(dueDate string, now time.Time) bool {
	days, ok := DaysUntilDue(dueDate, now)
	return ok && days < 0
}

// DueDateDisplay renders the due date as the short label shown on project cards
func DueDateDisplay(dueDate string, now time.Time) string {
	days, ok := DaysUntilDue(dueDate, now)
	if !ok {
		return "N/A"
	}
	switch {
	case days < 0:
		return fmt.Sprintf("%d hari lewat", -days)
	case days == 0:
		return "Hari ini"
	case days == 1:
		return "Besok"
	case days <= 30:
		if days <= 7 {
			return fmt.Sprintf("%d hari lagi", days)
		}
		return fmt.Sprintf("%d hari", days)
	}
	return dueDate
}
