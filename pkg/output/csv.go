package output

import (
	"encoding/csv"
	"io"

	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/iwvelando/ifta-report/pkg/format"
)

var csvHeader = []string{
	"state",
	"miles",
	"fuel_consumed",
	"tax_rate",
	"tax_due",
	"fuel_purchased",
	"tax_paid_at_pump",
	"net_tax",
}

// CsvFormat outputs the worksheet rows in comma-separated value format,
// followed by a TOTAL row.
func CsvFormat(w io.Writer, report ifta.Report) error {
	return writeCSV(w, report.Rows, report.Totals())
}

// SpreadsheetFormat outputs one row for every US jurisdiction in the standard
// order, with zeros for jurisdictions the fleet never entered. Jurisdictions
// outside the US list follow in worksheet order.
func SpreadsheetFormat(w io.Writer, report ifta.Report) error {
	return writeCSV(w, SpreadsheetRows(report.Rows), report.Totals())
}

// SpreadsheetRows expands rows to the full jurisdiction list.
func SpreadsheetRows(rows []ifta.TaxLiabilityRow) []ifta.TaxLiabilityRow {
	byState := make(map[string]ifta.TaxLiabilityRow, len(rows))
	for _, row := range rows {
		byState[row.State] = row
	}

	listed := make(map[string]bool, len(constants.Jurisdictions))
	expanded := make([]ifta.TaxLiabilityRow, 0, len(constants.Jurisdictions))
	for _, state := range constants.Jurisdictions {
		listed[state] = true
		if row, ok := byState[state]; ok && row.Active() {
			expanded = append(expanded, row)
			continue
		}
		expanded = append(expanded, ifta.TaxLiabilityRow{State: state})
	}
	for _, row := range rows {
		if !listed[row.State] {
			expanded = append(expanded, row)
		}
	}
	return expanded
}

func writeCSV(w io.Writer, rows []ifta.TaxLiabilityRow, totals ifta.Totals) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.State,
			format.Fixed(row.Miles, constants.CurrencyPrecision),
			format.Fixed(row.FuelConsumed, constants.CurrencyPrecision),
			format.Fixed(row.TaxRate, constants.RatePrecision),
			format.Fixed(row.TaxDue, constants.CurrencyPrecision),
			format.Fixed(row.FuelPurchased, constants.CurrencyPrecision),
			format.Fixed(row.TaxPaidAtPump, constants.CurrencyPrecision),
			format.Fixed(row.NetTax, constants.CurrencyPrecision),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{
		"TOTAL",
		format.Fixed(totals.Miles, constants.CurrencyPrecision),
		format.Fixed(totals.FuelConsumed, constants.CurrencyPrecision),
		"",
		format.Fixed(totals.TaxDue, constants.CurrencyPrecision),
		format.Fixed(totals.FuelPurchased, constants.CurrencyPrecision),
		format.Fixed(totals.TaxPaidAtPump, constants.CurrencyPrecision),
		format.Fixed(totals.NetTax, constants.CurrencyPrecision),
	}); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
