// Package output provides utilities for formatting and displaying IFTA
// reports.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/iwvelando/ifta-report/pkg/datetime"
)

// Meta describes the trips a report was computed from.
type Meta struct {
	TripCount   int
	TruckIDs    []string
	Period      datetime.Period
	Quarter     string
	GeneratedAt time.Time
}

// NewMeta collects report metadata from trips.
func NewMeta(trips []ifta.Trip, now time.Time) Meta {
	meta := Meta{TripCount: len(trips), GeneratedAt: now}

	seen := make(map[string]bool)
	dates := make([]string, 0, len(trips))
	for _, trip := range trips {
		if trip.TruckID != "" && !seen[trip.TruckID] {
			seen[trip.TruckID] = true
			meta.TruckIDs = append(meta.TruckIDs, trip.TruckID)
		}
		dates = append(dates, trip.Date)
	}
	sort.Strings(meta.TruckIDs)

	meta.Period = datetime.ReportingPeriod(dates)
	if meta.Period.End != "" {
		meta.Quarter, _ = datetime.Quarter(meta.Period.End)
	}
	return meta
}

// Trucks renders the truck list for headers.
func (m Meta) Trucks() string {
	if len(m.TruckIDs) == 0 {
		return "-"
	}
	return strings.Join(m.TruckIDs, ", ")
}

// Write renders report to w in the given format.
func Write(w io.Writer, format string, report ifta.Report, meta Meta) error {
	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, report, meta)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatSpreadsheet:
		return SpreadsheetFormat(w, report)
	case constants.OutputFormatPDF:
		return PDFFormat(w, report, meta)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteFile renders report to the file at path. The file is closed before
// returning and a failed close is reported, since buffered output may not
// have reached disk.
func WriteFile(path, format string, report ifta.Report, meta Meta) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	if err := Write(file, format, report, meta); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s report to %s: %w", format, path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", path, err)
	}
	return nil
}
