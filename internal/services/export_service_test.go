package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportCSVMirrorsVisibleRows(t *testing.T) {
	svc := NewExportService()

	headers := []string{"Name", "Amount", "Status"}
	rows := [][]any{
		{"A Kumar", 5000.0, "approved"},
		{"B Singh", 2500.5, "enquired"},
	}

	data, filename, err := svc.ExportCSV("customers", headers, rows)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Name,Amount,Status")
	assert.Contains(t, out, "A Kumar,5000.00,approved")
	assert.Contains(t, out, "B Singh,2500.50,enquired")
	assert.True(t, strings.HasSuffix(filename, ".csv"))
}

func TestExportXLSXWritesAllRows(t *testing.T) {
	svc := NewExportService()

	headers := []string{"Receipt", "Amount"}
	rows := [][]any{
		{"RCP-1", 100.0},
		{"RCP-2", 200.0},
	}

	data, filename, err := svc.ExportXLSX("billing", headers, rows)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	f, err := excelize.OpenReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Export", "A4")
	require.NoError(t, err)
	assert.Equal(t, "RCP-1", got)

	got, err = f.GetCellValue("Export", "B5")
	require.NoError(t, err)
	assert.Equal(t, "200", got)
}

func TestFormatCellHandlesNilPointers(t *testing.T) {
	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "12.35", formatCell(12.345))
	assert.Equal(t, "plain", formatCell("plain"))
}
