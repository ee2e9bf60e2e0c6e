// Package export turns a snapshot of application records into a styled .xlsx
// workbook. The transform is pure: it touches neither the network nor the
// store.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"apptrack/internal/tracker"
)

const sheetName = "Applications"

// statusColors maps each status to its cell styling: a background fill and a
// font color, mirrored from the tracker's on-screen palette.
var statusColors = map[tracker.Status]struct{ Font, Fill string }{
	tracker.StatusSaved:       {"6B7280", "F3F4F6"},
	tracker.StatusApplied:     {"2563EB", "DBEAFE"},
	tracker.StatusPhoneScreen: {"7C3AED", "EDE9FE"},
	tracker.StatusInterview:   {"D97706", "FEF3C7"},
	tracker.StatusOffer:       {"059669", "D1FAE5"},
	tracker.StatusRejected:    {"DC2626", "FEE2E2"},
	tracker.StatusWithdrawn:   {"9CA3AF", "F9FAFB"},
}

// typeColors is the 2-way Job vs Internship palette.
var typeColors = map[tracker.Type]struct{ Font, Fill string }{
	tracker.TypeJob:        {"0284C7", "E0F2FE"},
	tracker.TypeInternship: {"7C3AED", "F3E8FF"},
}

var columns = []struct {
	Header string
	Width  float64
}{
	{"Company", 22},
	{"Role", 28},
	{"Type", 12},
	{"Status", 14},
	{"Location", 20},
	{"Salary", 16},
	{"Link", 35},
	{"Notes", 30},
	{"Date Added", 14},
	{"Last Updated", 14},
}

// Filename returns the download name for an export taken at t,
// e.g. job_applications_2026-03-01.xlsx.
func Filename(t time.Time) string {
	return fmt.Sprintf("job_applications_%s.xlsx", t.Format("2006-01-02"))
}

// Workbook builds the export: a header row plus one row per record, in the
// order given.
func Workbook(records []tracker.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeHeader(f); err != nil {
		f.Close()
		return nil, err
	}

	statusStyles, typeStyles, plainStyle, err := buildStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, rec := range records {
		row := i + 2
		values := []string{
			rec.Company,
			rec.Role,
			string(rec.Type),
			string(rec.Status),
			rec.Location,
			rec.Salary,
			rec.Link,
			rec.Notes,
			rec.CreatedAt.Local().Format("1/2/2006"),
			rec.UpdatedAt.Local().Format("1/2/2006"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellStr(sheetName, cell, v); err != nil {
				f.Close()
				return nil, err
			}
			style := plainStyle
			switch col {
			case 2:
				if st, ok := typeStyles[rec.Type]; ok {
					style = st
				}
			case 3:
				if st, ok := statusStyles[rec.Status]; ok {
					style = st
				}
			}
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	return f, nil
}

func writeHeader(f *excelize.File) error {
	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, col.Width); err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheetName, cell, col.Header); err != nil {
			return err
		}
	}

	// Bold white on slate, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E293B"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, "A1", last, headerStyle)
}

func buildStyles(f *excelize.File) (map[tracker.Status]int, map[tracker.Type]int, int, error) {
	statusStyles := make(map[tracker.Status]int, len(statusColors))
	for status, c := range statusColors {
		id, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: c.Font},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{c.Fill}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    thinBorders(),
		})
		if err != nil {
			return nil, nil, 0, err
		}
		statusStyles[status] = id
	}

	typeStyles := make(map[tracker.Type]int, len(typeColors))
	for typ, c := range typeColors {
		id, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Color: c.Font},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{c.Fill}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    thinBorders(),
		})
		if err != nil {
			return nil, nil, 0, err
		}
		typeStyles[typ] = id
	}

	plainStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders()})
	if err != nil {
		return nil, nil, 0, err
	}

	return statusStyles, typeStyles, plainStyle, nil
}

func thinBorders() []excelize.Border {
	const color = "E2E8F0"
	return []excelize.Border{
		{Type: "top", Style: 1, Color: color},
		{Type: "left", Style: 1, Color: color},
		{Type: "bottom", Style: 1, Color: color},
		{Type: "right", Style: 1, Color: color},
	}
}
