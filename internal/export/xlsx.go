package export

import (
	"fmt"

	"alcyxob/fitness-coach/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	SheetOverview = "Overview"
	SheetWorkouts = "Workouts"
)

var workoutColumns = []struct {
	title string
	width float64
}{
	{"Week", 8},
	{"Phase", 12},
	{"Date", 12},
	{"Day", 11},
	{"Workout", 26},
	{"Discipline", 12},
	{"Intensity", 11},
	{"Minutes", 9},
	{"Status", 12},
	{"Exercise", 24},
	{"Sets", 6},
	{"Reps", 6},
	{"Rest (s)", 9},
	{"Duration (s)", 12},
	{"Guidance", 36},
	{"Review", 8},
}

// PlanXLSX builds the workbook and returns it as bytes.
func PlanXLSX(plan *domain.TrainingPlan) ([]byte, error) {
	f, err := PlanWorkbook(plan)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PlanWorkbook creates an overview sheet and one row per prescribed exercise.
func PlanWorkbook(plan *domain.TrainingPlan) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetWorkouts); err != nil {
		return nil, err
	}

	if err := writeOverview(f, plan); err != nil {
		return nil, fmt.Errorf("overview sheet: %w", err)
	}
	if err := writeWorkouts(f, plan); err != nil {
		return nil, fmt.Errorf("workouts sheet: %w", err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeOverview(f *excelize.File, plan *domain.TrainingPlan) error {
	sheet := SheetOverview
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E2EFDA"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	info := [][]any{
		{"Plan", plan.Name},
		{"Start", plan.StartDate.Format("2006-01-02")},
		{"End", plan.EndDate.Format("2006-01-02")},
		{"Weeks", plan.TotalWeeks},
		{"Sessions per week", plan.SessionsPerWeek},
		{"Status", string(plan.Status)},
		{"Current week", plan.CurrentWeek},
	}
	for i, row := range info {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellStyle(sheet, cell, cell, labelStyle); err != nil {
			return err
		}
	}

	start := len(info) + 2
	header := []any{"Week", "Phase", "Intensity", "Deload", "Minutes"}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", start), &header); err != nil {
		return err
	}
	for i, week := range plan.Weeks {
		deload := ""
		if week.IsDeload {
			deload = "yes"
		}
		row := []any{week.WeekNumber, string(week.Phase), week.Intensity.String(), deload, week.VolumeMinutes}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", start+i+1), &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "E", 14)
}

func writeWorkouts(f *excelize.File, plan *domain.TrainingPlan) error {
	sheet := SheetWorkouts
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	header := make([]any, len(workoutColumns))
	for i, c := range workoutColumns {
		header[i] = c.title
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, c.width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(workoutColumns))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	rowNum := 2
	for _, week := range plan.Weeks {
		for _, w := range week.Workouts {
			base := []any{
				week.WeekNumber, string(week.Phase), w.ScheduledDate.Format("2006-01-02"), w.Day.String(),
				w.Name, string(w.Discipline), w.Intensity.String(), w.DurationMinutes, string(w.Status),
			}
			if len(w.Exercises) == 0 {
				if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &base); err != nil {
					return err
				}
				rowNum++
				continue
			}
			for _, ex := range w.Exercises {
				review := ""
				if ex.NeedsReview {
					review = "yes"
				}
				row := append(append([]any{}, base...),
					ex.ExerciseName, ex.Sets, ex.Reps, ex.RestSeconds, ex.DurationSeconds, ex.IntensityGuidance, review)
				if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
					return err
				}
				rowNum++
			}
		}
	}
	return nil
}
