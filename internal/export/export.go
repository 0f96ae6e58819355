// Package export renders training plans as calendar files and spreadsheets.
package export

import (
	"fmt"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/domain"
)

// Format is an export file type.
type Format string

const (
	FormatICS  Format = "ics"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "ics" and "xlsx", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatICS, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/calendar; charset=utf-8"
}

// Render produces the file contents of a plan in the given format.
func Render(f Format, plan *domain.TrainingPlan, now time.Time) ([]byte, error) {
	switch f {
	case FormatICS:
		return []byte(PlanICS(plan, now)), nil
	case FormatXLSX:
		return PlanXLSX(plan)
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
}
