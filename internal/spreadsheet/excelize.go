package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads .xlsx workbooks through excelize
type ExcelReader struct {
	path string
}

// NewExcelReader creates a reader for a workbook on disk
func NewExcelReader(path string) *ExcelReader {
	return &ExcelReader{path: path}
}

// Rows returns the raw cell grid of the first sheet. Raw values keep date
// serials intact for ParseDate.
func (r *ExcelReader) Rows() ([][]string, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return rows, nil
}

// ExcelWriter builds .xlsx workbooks through excelize
type ExcelWriter struct{}

// NewExcelWriter creates a workbook writer
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// Write serializes the columns and rows into a single-sheet workbook with an
// autofilter over the header row.
func (w *ExcelWriter) Write(sheetName string, columns []Column, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := make([]interface{}, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, c := range columns {
		if c.Width <= 0 {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve column: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, c.Width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve last column: %w", err)
	}
	if err := f.AutoFilter(sheetName, fmt.Sprintf("A1:%s1", lastCol), nil); err != nil {
		return nil, fmt.Errorf("failed to set autofilter: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
