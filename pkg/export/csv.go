package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kaleidalab/qdakit/pkg/qda"
)

// writeCSV emits a header row followed by one row per buffer index. Cells
// beyond a column's own row count, and all string column cells, stay empty.
func writeCSV(w io.Writer, table *qda.Table) error {
	cw := csv.NewWriter(w)
	if table.Columns > 0 {
		if err := cw.Write(table.Headers); err != nil {
			return fmt.Errorf("export: write csv header: %w", err)
		}
	}
	rows := table.MaxRows()
	record := make([]string, table.Columns)
	for j := 0; j < rows; j++ {
		for i := 0; i < table.Columns; i++ {
			record[i] = ""
			if j < table.Rows[i] && table.Dtypes[i].Numeric() {
				record[i] = strconv.FormatFloat(table.Data[i][j], 'g', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write csv row %d: %w", j, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
