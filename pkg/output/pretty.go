package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/iwvelando/ifta-report/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report ifta.Report, meta Meta) error {
	p := message.NewPrinter(language.English)
	summary := report.Summary

	lines := []string{
		"--- IFTA fuel tax report ---",
		p.Sprintf("Trips: %d | Trucks: %s | Period: %s", meta.TripCount, meta.Trucks(), meta.Period),
	}
	if meta.Quarter != "" {
		lines = append(lines, "Quarter: "+meta.Quarter)
	}
	lines = append(lines,
		p.Sprintf("Total Miles (TM): %.2f mi", summary.TotalDistance),
		p.Sprintf("Total Fuel (FC):  %.2f gal", summary.TotalFuel),
		"Fleet MPG:        "+format.Fixed(summary.AverageMpg, constants.MpgPrecision),
		"Net Tax Due:      "+format.Accounting(summary.EstimatedTax),
		"",
		"State | Miles (MJ) | Taxable Gallons (FJ) | Tax Rate (JT) | Tax Due (TD) | Gallons Purchased (FPJ) | Tax Paid (PP) | Net Tax",
		"_____ | __________ | ____________________ | _____________ | ____________ | _______________________ | _____________ | _______",
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for _, row := range report.Rows {
		_, err := p.Fprintf(w, "%s | %.2f | %s | %s | %s | %.2f | %s | %s\n",
			row.State,
			row.Miles,
			format.Fixed(row.FuelConsumed, constants.CurrencyPrecision),
			format.Rate(row.TaxRate),
			format.Currency(row.TaxDue),
			row.FuelPurchased,
			format.Currency(row.TaxPaidAtPump),
			format.Accounting(row.NetTax),
		)
		if err != nil {
			return err
		}
	}

	totals := report.Totals()
	_, err := p.Fprintf(w, "TOTAL | %.2f | %s | - | %s | %.2f | %s | %s\n",
		totals.Miles,
		format.Fixed(totals.FuelConsumed, constants.CurrencyPrecision),
		format.Currency(totals.TaxDue),
		totals.FuelPurchased,
		format.Currency(totals.TaxPaidAtPump),
		format.Accounting(totals.NetTax),
	)
	return err
}
