package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

const (
	rowHeight   = 7.0
	cellMaxChar = 60
)

// WritePDF renders table on landscape A4 pages, repeating the header row on every page.
func WritePDF(w io.Writer, table Table, generatedAt time.Time) error {
	if len(table.Widths) != len(table.Headers) {
		return fmt.Errorf("pdf: %d widths for %d columns", len(table.Widths), len(table.Headers))
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(table.Title, true)
	pdf.SetAutoPageBreak(false, 12)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range table.Headers {
			pdf.CellFormat(table.Widths[i], rowHeight, translate(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, translate(table.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.UTC().Format(models.DateLayout+" 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	header()

	for _, row := range table.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottomMargin-12 {
			pdf.AddPage()
			header()
		}
		for i, cell := range row {
			text := translate(tracker.Truncate(strings.Join(strings.Fields(cell), " "), cellMaxChar))
			pdf.CellFormat(table.Widths[i], rowHeight, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render: %w", err)
	}
	return nil
}
