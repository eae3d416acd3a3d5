package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/pkg/constants"
)

func testReport() ifta.Report {
	trips := []ifta.Trip{
		{
			ID: "a", Date: "2026-02-06", TruckID: "114",
			TotalMiles: 1500, TotalFuel: 150,
			Breakdown: []ifta.JurisdictionEntry{
				{State: "OH", Miles: 1400, Fuel: 50},
				{State: "WI", Miles: 100, Fuel: 100},
			},
		},
		{
			ID: "b", Date: "2026-01-23", TruckID: "115",
			TotalMiles: 0, TotalFuel: 0,
			Breakdown: []ifta.JurisdictionEntry{{State: "ON", Miles: 0, Fuel: 0}},
		},
	}
	rates := ifta.RateTable{"OH": 0.47, "WI": 0.329, ifta.DefaultJurisdiction: 0.25}
	return ifta.Compute(trips, rates)
}

func testMeta() Meta {
	return NewMeta([]ifta.Trip{
		{Date: "2026-02-06", TruckID: "114"},
		{Date: "2026-01-23", TruckID: "115"},
		{Date: "2026-01-30", TruckID: "114"},
	}, time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC))
}

func TestNewMeta(t *testing.T) {
	meta := testMeta()
	if meta.TripCount != 3 {
		t.Errorf("TripCount = %d, expected 3", meta.TripCount)
	}
	if meta.Trucks() != "114, 115" {
		t.Errorf("Trucks() = %q, expected %q", meta.Trucks(), "114, 115")
	}
	if meta.Period.String() != "2026-01-23 to 2026-02-06" {
		t.Errorf("Period = %q", meta.Period.String())
	}
	if meta.Quarter != "2026 Q1" {
		t.Errorf("Quarter = %q, expected 2026 Q1", meta.Quarter)
	}

	empty := NewMeta(nil, time.Time{})
	if empty.Trucks() != "-" || empty.Quarter != "" {
		t.Errorf("unexpected empty meta: %+v", empty)
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, testReport(), testMeta()); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	expected := []string{
		"--- IFTA fuel tax report ---",
		"Trips: 3 | Trucks: 114, 115 | Period: 2026-01-23 to 2026-02-06",
		"Quarter: 2026 Q1",
		"Total Miles (TM): 1,500.00 mi",
		"Total Fuel (FC):  150.00 gal",
		"Fleet MPG:        10.0000",
		"State | Miles (MJ) |",
		"OH | 1,400.00 | 140.00 | $0.4700 | $65.80 | 50.00 | $23.50 | $42.30",
		"WI | 100.00 | 10.00 | $0.3290 | $3.29 | 100.00 | $32.90 | ($29.61)",
		"ON | 0.00 | 0.00 | $0.2500 | $0.00 | 0.00 | $0.00 | $0.00",
		"TOTAL | 1,500.00 | 150.00 | - |",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q\n%s", want, output)
		}
	}
	if strings.Index(output, "OH |") > strings.Index(output, "WI |") {
		t.Errorf("rows should be sorted by descending miles")
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, testReport()); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CsvFormat produced invalid csv: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected header, 3 rows and a total, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("unexpected header %v", records[0])
	}

	oh := records[1]
	expected := []string{"OH", "1400.00", "140.00", "0.4700", "65.80", "50.00", "23.50", "42.30"}
	for i := range expected {
		if oh[i] != expected[i] {
			t.Errorf("OH column %s = %q, expected %q", csvHeader[i], oh[i], expected[i])
		}
	}

	total := records[4]
	if total[0] != "TOTAL" || total[1] != "1500.00" || total[3] != "" {
		t.Errorf("unexpected total row %v", total)
	}
}

func TestSpreadsheetRows(t *testing.T) {
	rows := SpreadsheetRows(testReport().Rows)

	if len(rows) != len(constants.Jurisdictions)+1 {
		t.Fatalf("expected every US jurisdiction plus ON, got %d rows", len(rows))
	}
	if rows[0].State != "AL" || rows[0].Miles != 0 || rows[0].TaxRate != 0 {
		t.Errorf("inactive jurisdictions should be blank rows, got %+v", rows[0])
	}
	if rows[len(rows)-1].State != "ON" {
		t.Errorf("jurisdictions outside the US list should come last, got %s", rows[len(rows)-1].State)
	}

	var oh ifta.TaxLiabilityRow
	for _, row := range rows {
		if row.State == "OH" {
			oh = row
		}
	}
	if oh.Miles != 1400 || oh.TaxRate != 0.47 {
		t.Errorf("active OH row lost its values: %+v", oh)
	}
}

func TestSpreadsheetFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := SpreadsheetFormat(&buf, testReport()); err != nil {
		t.Fatalf("SpreadsheetFormat() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(records) != len(constants.Jurisdictions)+3 {
		t.Errorf("unexpected record count %d", len(records))
	}
}

func TestPDFFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PDFFormat(&buf, testReport(), testMeta()); err != nil {
		t.Fatalf("PDFFormat() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "report.csv")
	if err := WriteFile(path, constants.OutputFormatCSV, testReport(), testMeta()); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.HasPrefix(string(data), "state,miles") {
		t.Errorf("unexpected file contents:\n%s", data)
	}

	tests := []struct {
		name   string
		path   string
		format string
	}{
		{"Missing directory", filepath.Join(dir, "missing", "report.csv"), constants.OutputFormatCSV},
		{"Unsupported format", filepath.Join(dir, "report.xml"), "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := WriteFile(tt.path, tt.format, testReport(), testMeta()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWrite(t *testing.T) {
	for _, format := range constants.OutputFormats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, format, testReport(), testMeta()); err != nil {
				t.Fatalf("Write(%s) error = %v", format, err)
			}
			if buf.Len() == 0 {
				t.Errorf("Write(%s) produced no output", format)
			}
		})
	}

	if err := Write(&bytes.Buffer{}, "xml", testReport(), testMeta()); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestPrettyFormatEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	report := ifta.Compute(nil, ifta.DefaultRates())
	if err := PrettyFormat(&buf, report, NewMeta(nil, time.Time{})); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Period: no trips") {
		t.Errorf("expected empty period, got\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "TOTAL | 0.00 | 0.00 | - | $0.00 | 0.00 | $0.00 | $0.00") {
		t.Errorf("expected zero totals, got\n%s", buf.String())
	}
}
