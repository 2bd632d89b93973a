package cmd

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaleidalab/qdakit/pkg/qda"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <in.csv> <out.qda>",
	Short: "Build a QDA file from CSV data",
	Long: `Read numeric CSV data and encode it as a QDA file. The first row
supplies the column headers unless --no-header is given, in which case
spreadsheet-style labels are generated. Trailing blank cells shorten a
column; blank cells inside a column become NaN.

Examples:
  qda import results.csv results.qda
  qda import --no-header --dtype float32 raw.csv raw.qda
  qda import --dtype float64,int32 mixed.csv mixed.qda`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		dtypeSpec, _ := cmd.Flags().GetString("dtype")
		noHeader, _ := cmd.Flags().GetBool("no-header")

		if name == "" {
			name = args[1]
		}

		table, err := tableFromCSV(args[0], name, dtypeSpec, noHeader)
		if err != nil {
			return err
		}
		if err := qda.WriteFile(args[1], table); err != nil {
			return err
		}

		cmd.Printf("Wrote %s: %d columns, %d rows\n", args[1], table.Columns, table.MaxRows())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("name", "", "Table name stored in the file (default: the output path)")
	importCmd.Flags().String("dtype", "", "Column types: one name for all columns or a comma-separated list (float32, float64, int32)")
	importCmd.Flags().Bool("no-header", false, "Treat the first row as data and generate headers")
}

// tableFromCSV reads CSV records and shapes them into a table.
func tableFromCSV(path, name, dtypeSpec string, noHeader bool) (*qda.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are fine
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var headers []string
	rowBase := 1
	if !noHeader {
		if len(records) == 0 {
			return nil, fmt.Errorf("%s: missing header row", path)
		}
		headers = records[0]
		records = records[1:]
		rowBase = 2
	}

	columns := len(headers)
	for _, record := range records {
		if len(record) > columns {
			columns = len(record)
		}
	}
	if columns == 0 {
		return nil, fmt.Errorf("%s: no columns", path)
	}

	data := make([][]float64, columns)
	for i := range data {
		column := make([]float64, 0, len(records))
		length := 0
		for j, record := range records {
			cell := ""
			if i < len(record) {
				cell = strings.TrimSpace(record[i])
			}
			if cell == "" {
				column = append(column, math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d, column %d: %w", path, j+rowBase, i+1, err)
			}
			column = append(column, v)
			length = j + 1
		}
		data[i] = column[:length]
	}

	dtypes, err := parseDtypes(dtypeSpec, columns)
	if err != nil {
		return nil, err
	}

	return qda.NewTable(data, qda.TableOptions{
		Name:    name,
		Headers: headers,
		Dtypes:  dtypes,
	})
}

// parseDtypes expands a --dtype value: empty means the default, a single
// name applies to every column, and a comma-separated list maps per column.
func parseDtypes(spec string, columns int) ([]qda.ElementType, error) {
	if spec == "" {
		return nil, nil
	}

	parts := strings.Split(spec, ",")
	if len(parts) == 1 {
		dtype, err := qda.ParseElementType(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, err
		}
		dtypes := make([]qda.ElementType, columns)
		for i := range dtypes {
			dtypes[i] = dtype
		}
		return dtypes, nil
	}

	if len(parts) != columns {
		return nil, fmt.Errorf("expected %d dtypes, got %d", columns, len(parts))
	}
	dtypes := make([]qda.ElementType, len(parts))
	for i, part := range parts {
		dtype, err := qda.ParseElementType(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		dtypes[i] = dtype
	}
	return dtypes, nil
}
