package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportService turns the visible rows of a list screen into downloadable
// files. Callers pass the exact headers and cell values the table renders,
// so exports always match what the user sees on screen.
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportCSV writes rows as a CSV file
func (s *ExportService) ExportCSV(title string, headers []string, rows [][]any) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{title, time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write(headers)

	for _, row := range rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return nil, "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.csv", title, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportXLSX writes rows as a spreadsheet with a styled header row
func (s *ExportService) ExportXLSX(title string, headers []string, rows [][]any) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Export"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 3)
		_ = f.SetCellValue(sheet, cell, header)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+4)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.xlsx", title, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// formatCell renders a cell value for CSV output
func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return fmt.Sprintf("%.2f", value)
	case time.Time:
		return value.Format("2006-01-02")
	case *time.Time:
		if value == nil {
			return ""
		}
		return value.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", value)
	}
}
