package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rorfeny/workhours-api/pkg/timesheet"
)

// RenderXLSX writes the same month table as RenderPDF into a spreadsheet,
// for people who want to keep crunching the numbers themselves.
func RenderXLSX(title string, rows []Row, summaryLine1, summaryLine2 string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reporte"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, fmt.Errorf("writing xlsx title: %w", err)
	}

	header := []any{"Fecha", "Día", "Inicio", "Fin", "Descanso (min)", "Horas", "Extras", "Notas"}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return nil, fmt.Errorf("writing xlsx header: %w", err)
	}

	line := 4
	for _, r := range rows {
		row := []any{
			r.Date,
			r.Weekday,
			r.Start,
			r.End,
			r.BreakMinutes,
			timesheet.FormatHours(r.Hours),
			r.Extras,
			r.Notes,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", line), &row); err != nil {
			return nil, fmt.Errorf("writing xlsx row %d: %w", line, err)
		}
		line++
	}

	line++
	if summaryLine1 != "" {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", line), summaryLine1)
		line++
	}
	if summaryLine2 != "" {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", line), summaryLine2)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
