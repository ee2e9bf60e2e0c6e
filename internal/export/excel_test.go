package export

import (
	"fmt"
	"testing"
	"time"

	"apptrack/internal/tracker"
)

func sampleRecords(n int) []tracker.Record {
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	records := make([]tracker.Record, n)
	for i := range records {
		records[i] = tracker.Record{
			ID:        fmt.Sprintf("rec-%d", i),
			Company:   fmt.Sprintf("Company %d", i),
			Role:      "Engineer",
			Type:      tracker.TypeJob,
			Status:    tracker.StatusSaved,
			CreatedAt: base,
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return records
}

func TestWorkbook_RowCount(t *testing.T) {
	records := sampleRecords(5)

	f, err := Workbook(records)
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("len(rows) = %d, want %d (header + records)", len(rows), len(records)+1)
	}
	if rows[0][0] != "Company" || rows[0][3] != "Status" || rows[0][9] != "Last Updated" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != "Company 0" {
		t.Errorf("rows[1][0] = %q, want the input order preserved", rows[1][0])
	}
}

func TestWorkbook_StatusStyleIsPositionIndependent(t *testing.T) {
	records := sampleRecords(4)
	records[0].Status = tracker.StatusOffer
	records[3].Status = tracker.StatusOffer
	records[1].Status = tracker.StatusRejected

	f, err := Workbook(records)
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	defer f.Close()

	// Status lives in column D. Rows 2 and 5 hold Offer records, row 3 a
	// Rejected one.
	offerA, err := f.GetCellStyle(sheetName, "D2")
	if err != nil {
		t.Fatalf("GetCellStyle(D2) failed: %v", err)
	}
	offerB, err := f.GetCellStyle(sheetName, "D5")
	if err != nil {
		t.Fatalf("GetCellStyle(D5) failed: %v", err)
	}
	rejected, err := f.GetCellStyle(sheetName, "D3")
	if err != nil {
		t.Fatalf("GetCellStyle(D3) failed: %v", err)
	}

	if offerA != offerB {
		t.Errorf("Offer cells styled differently by position: %d != %d", offerA, offerB)
	}
	if offerA == rejected {
		t.Error("Offer and Rejected cells share a style")
	}

	style, err := f.GetStyle(offerA)
	if err != nil {
		t.Fatalf("GetStyle failed: %v", err)
	}
	if style.Fill.Type != "pattern" || len(style.Fill.Color) == 0 {
		t.Fatalf("Offer style has no pattern fill: %+v", style.Fill)
	}
}

func TestWorkbook_TypeStyles(t *testing.T) {
	records := sampleRecords(2)
	records[1].Type = tracker.TypeInternship

	f, err := Workbook(records)
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	defer f.Close()

	job, err := f.GetCellStyle(sheetName, "C2")
	if err != nil {
		t.Fatalf("GetCellStyle(C2) failed: %v", err)
	}
	internship, err := f.GetCellStyle(sheetName, "C3")
	if err != nil {
		t.Fatalf("GetCellStyle(C3) failed: %v", err)
	}
	if job == internship {
		t.Error("Job and Internship cells share a style")
	}
}

func TestWorkbook_Empty(t *testing.T) {
	f, err := Workbook(nil)
	if err != nil {
		t.Fatalf("Workbook(nil) failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want header only", len(rows))
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2026, 3, 7, 15, 4, 5, 0, time.UTC)
	got := Filename(ts)
	want := "job_applications_2026-03-07.xlsx"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}
