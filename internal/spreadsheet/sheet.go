package spreadsheet

// Reader yields the raw cell grid of the first sheet of a workbook.
// Implementations hide the concrete spreadsheet library from importers.
type Reader interface {
	Rows() ([][]string, error)
}

// Column describes one export column
type Column struct {
	Header string
	Width  float64
}

// Writer serializes a header row plus data rows into workbook bytes.
type Writer interface {
	Write(sheetName string, columns []Column, rows [][]interface{}) ([]byte, error)
}
