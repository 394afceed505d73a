package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/rorfeny/workhours-api/pkg/timesheet"
)

var pdfColumns = []struct {
	label string
	width float64
}{
	{"Fecha", 28},
	{"Día", 26},
	{"Inicio", 18},
	{"Fin", 18},
	{"Descanso (min)", 30},
	{"Horas", 28},
	{"Extras", 30},
	{"Notas", 99},
}

// RenderPDF turns a month table and up to two summary lines into a paginated
// landscape A4 document: bordered pages, a header-styled grid, and a boxed
// summary section under the table.
func RenderPDF(title string, rows []Row, summaryLine1, summaryLine2 string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetHeaderFunc(func() {
		w, h := pdf.GetPageSize()
		pdf.SetDrawColor(199, 204, 214)
		pdf.SetLineWidth(0.3)
		pdf.Rect(5, 5, w-10, h-10, "D")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, tr("Sin datos para mostrar."), "", 1, "C", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 247)
		pdf.SetDrawColor(224, 224, 224)
		pdf.SetLineWidth(0.15)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, tr(col.label), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		for i, r := range rows {
			if i%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			cells := []string{
				r.Date,
				r.Weekday,
				r.Start,
				r.End,
				strconv.Itoa(r.BreakMinutes),
				timesheet.FormatHours(r.Hours),
				r.Extras,
				r.Notes,
			}
			for j, cell := range cells {
				pdf.CellFormat(pdfColumns[j].width, 7, tr(cell), "1", 0, "C", true, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if summaryLine1 != "" || summaryLine2 != "" {
		pdf.Ln(6)
		pageW, _ := pdf.GetPageSize()
		boxW := 150.0
		pdf.SetDrawColor(199, 204, 214)
		pdf.SetLineWidth(0.25)
		if summaryLine1 != "" {
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetX((pageW - boxW) / 2)
			border := "LTR"
			if summaryLine2 == "" {
				border = "1"
			}
			pdf.CellFormat(boxW, 8, tr(summaryLine1), border, 1, "C", false, 0, "")
		}
		if summaryLine2 != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetX((pageW - boxW) / 2)
			border := "LBR"
			if summaryLine1 == "" {
				border = "1"
			}
			pdf.CellFormat(boxW, 8, tr(summaryLine2), border, 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
