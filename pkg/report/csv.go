package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// formulaPrefixes start a formula when a spreadsheet opens the file.
const formulaPrefixes = "=+-@\t\r"

// csvCell quotes free text that a spreadsheet would otherwise evaluate.
func csvCell(value string) string {
	if value != "" && strings.ContainsRune(formulaPrefixes, rune(value[0])) {
		return "'" + value
	}
	return value
}

func WriteCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(table.Headers))
	for _, row := range table.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, csvCell(cell))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv rows: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
