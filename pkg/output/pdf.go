package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/iwvelando/ifta-report/pkg/format"
	"github.com/phpdave11/gofpdf"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Jurisdiction", 28},
	{"Total Miles (MJ)", 34},
	{"Taxable Gal (FJ)", 34},
	{"Tax Rate (JT)", 30},
	{"Tax Due (TD)", 32},
	{"Gal Purchased (FPJ)", 38},
	{"Tax Paid (PP)", 32},
	{"Net Tax", 32},
}

// PDFFormat writes a printable worksheet: the fleet summary followed by one
// line per jurisdiction with activity and a totals line.
func PDFFormat(w io.Writer, report ifta.Report, meta Meta) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("IFTA Fuel Tax Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "IFTA FUEL TAX REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	headerLines := []string{
		fmt.Sprintf("Trucks      : %s", meta.Trucks()),
		fmt.Sprintf("Period      : %s", meta.Period),
		fmt.Sprintf("Trips       : %d", meta.TripCount),
	}
	if meta.Quarter != "" {
		headerLines = append(headerLines, fmt.Sprintf("Quarter     : %s", meta.Quarter))
	}
	if !meta.GeneratedAt.IsZero() {
		headerLines = append(headerLines, fmt.Sprintf("Generated   : %s", meta.GeneratedAt.Format("2006-01-02 15:04")))
	}
	for _, line := range headerLines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	summary := report.Summary
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Fleet summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		"Total Miles (TM) : " + format.Quantity(summary.TotalDistance) + " mi",
		"Total Fuel (FC)  : " + format.Quantity(summary.TotalFuel) + " gal",
		"Fleet MPG        : " + format.Fixed(summary.AverageMpg, constants.MpgPrecision),
		"Net Tax Due      : " + format.Accounting(summary.EstimatedTax),
	} {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range report.Rows {
		if !row.Active() {
			continue
		}
		writePDFRow(pdf, []string{
			row.State,
			format.Quantity(row.Miles),
			format.Fixed(row.FuelConsumed, constants.CurrencyPrecision),
			format.Rate(row.TaxRate),
			format.Currency(row.TaxDue),
			format.Quantity(row.FuelPurchased),
			format.Currency(row.TaxPaidAtPump),
			format.Accounting(row.NetTax),
		})
	}

	totals := report.Totals()
	pdf.SetFont("Helvetica", "B", 9)
	writePDFRow(pdf, []string{
		"TOTAL",
		format.Quantity(totals.Miles),
		format.Fixed(totals.FuelConsumed, constants.CurrencyPrecision),
		"",
		format.Currency(totals.TaxDue),
		format.Quantity(totals.FuelPurchased),
		format.Currency(totals.TaxPaidAtPump),
		format.Accounting(totals.NetTax),
	})

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Taxable gallons are jurisdiction miles divided by the fleet MPG. Amounts in parentheses are credits.", "", "", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func writePDFRow(pdf *gofpdf.Fpdf, cells []string) {
	for i, col := range pdfColumns {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(col.width, 6, cells[i], "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
