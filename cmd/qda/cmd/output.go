package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/kaleidalab/qdakit/pkg/catalog"
	"github.com/kaleidalab/qdakit/pkg/qda"
)

// tableJSON is the json rendering of a decoded table with its cell values.
// The data key sits beside the summary fields so "columns" keeps meaning the
// column count in both modes.
type tableJSON struct {
	qda.Summary
	Data [][]interface{} `json:"data"`
}

// outputTable displays a decoded table
func outputTable(table *qda.Table, withData bool) error {
	if outputFormat == "json" {
		return outputTableJSON(table, withData)
	}
	return outputTableText(table, withData)
}

// outputTableText prints the classic info block, optionally followed by the
// cell values as an aligned grid.
func outputTableText(table *qda.Table, withData bool) error {
	fmt.Println(table.String())
	if !withData || table.Columns == 0 {
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	for i, header := range table.Headers {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, header)
	}
	fmt.Fprintln(w)

	for j := 0; j < table.MaxRows(); j++ {
		for i := 0; i < table.Columns; i++ {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			if j >= table.Rows[i] {
				continue
			}
			v := table.Data[i][j]
			if math.IsNaN(v) {
				fmt.Fprint(w, "NaN")
			} else {
				fmt.Fprintf(w, "%g", v)
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

func outputTableJSON(table *qda.Table, withData bool) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if !withData {
		return encoder.Encode(table.Summary())
	}
	return encoder.Encode(tableJSON{
		Summary: table.Summary(),
		Data:    jsonColumns(table),
	})
}

// jsonColumns trims each column to its row count and replaces NaN with nil,
// since NaN has no JSON encoding.
func jsonColumns(table *qda.Table) [][]interface{} {
	columns := make([][]interface{}, table.Columns)
	for i := range columns {
		col := table.Column(i)
		values := make([]interface{}, len(col))
		for j, v := range col {
			if math.IsNaN(v) {
				values[j] = nil
			} else {
				values[j] = v
			}
		}
		columns[i] = values
	}
	return columns
}

// outputEntries displays catalog entries
func outputEntries(entries []*catalog.Entry) error {
	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No entries found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tCOLUMNS\tROWS\tSIZE\tADDED\tPATH")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			entry.ID,
			filepath.Base(entry.Summary.Name),
			entry.Summary.Columns,
			entry.Summary.MaxRows,
			entry.Size,
			entry.AddedAt.Format("2006-01-02 15:04"),
			entry.Path)
	}
	return nil
}
