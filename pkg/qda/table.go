package qda

import (
	"fmt"
	"math"
	"strings"
)

// Table is the in-memory form of one QDA file.
type Table struct {
	// FileID is the identifier the table was decoded from: 6, 8 or 12.
	// Tables built with NewTable carry FileID12, and Encode always writes
	// FileID12 regardless of this field.
	FileID int

	// Name is a display name. ReadFile sets it to the source path; it is
	// never stored inside the file.
	Name string

	// Columns is the number of columns.
	Columns int

	// Rows holds each column's own row count.
	Rows []int

	// Headers holds each column's label.
	Headers []string

	// Dtypes holds each column's on-disk element type.
	Dtypes []ElementType

	// Data is the rectangular value buffer, one float64 slice per column,
	// all padded to the same width. Cells beyond a column's own row count,
	// and every cell of a string column, hold NaN.
	Data [][]float64

	// Unmaterialized lists the indices of String40 columns whose payload was
	// consumed by the decoder but could not be represented in Data.
	Unmaterialized []int
}

// TableOptions overrides the defaults NewTable derives from its data
// argument. A nil slice field means "derive from the data".
type TableOptions struct {
	// Name is a display name. Defaults to "Untitled.qda".
	Name string
	// Rows declares per-column row counts. Each must not exceed the length
	// of the matching data column. Defaults to the data column lengths.
	Rows []int
	// Headers declares per-column labels, at most MaxHeaderLen Latin-1
	// bytes each. Defaults to UniqueHeaders over the column count.
	Headers []string
	// Dtypes declares per-column element types. String40 is not
	// constructible. Defaults to Float64 for every column.
	Dtypes []ElementType
}

// NewTable builds a Table from per-column value slices. Columns may be
// ragged: the buffer is padded with NaN up to the longest column. The
// returned Table does not alias data or any option slice.
func NewTable(data [][]float64, opts TableOptions) (*Table, error) {
	columns := len(data)
	if columns > MaxColumns {
		return nil, validationErrf("too many columns: %d exceeds %d", columns, MaxColumns)
	}

	name := opts.Name
	if name == "" {
		name = "Untitled.qda"
	}

	var rows []int
	if opts.Rows == nil {
		rows = make([]int, columns)
		for i := range data {
			rows[i] = len(data[i])
		}
	} else {
		if len(opts.Rows) != columns {
			return nil, validationErrf("rows length %d does not match %d columns", len(opts.Rows), columns)
		}
		rows = append([]int(nil), opts.Rows...)
	}
	for i, r := range rows {
		if r < 0 || r > MaxColumnRows {
			return nil, validationErrf("column %d: row count %d outside [0, %d]", i, r, MaxColumnRows)
		}
		if r > len(data[i]) {
			return nil, validationErrf("column %d: row count %d exceeds %d provided values", i, r, len(data[i]))
		}
	}

	var headers []string
	if opts.Headers == nil {
		var err error
		headers, err = UniqueHeaders(columns)
		if err != nil {
			return nil, err
		}
	} else {
		if len(opts.Headers) != columns {
			return nil, validationErrf("headers length %d does not match %d columns", len(opts.Headers), columns)
		}
		headers = append([]string(nil), opts.Headers...)
	}
	for i, h := range headers {
		raw, err := encodeLatin1(h)
		if err != nil {
			return nil, validationErrf("column %d: header %q is not Latin-1", i, h)
		}
		if len(raw) > MaxHeaderLen {
			return nil, validationErrf("column %d: header %q is %d bytes, limit is %d", i, h, len(raw), MaxHeaderLen)
		}
	}

	var dtypes []ElementType
	if opts.Dtypes == nil {
		dtypes = make([]ElementType, columns)
		for i := range dtypes {
			dtypes[i] = Float64
		}
	} else {
		if len(opts.Dtypes) != columns {
			return nil, validationErrf("dtypes length %d does not match %d columns", len(opts.Dtypes), columns)
		}
		dtypes = append([]ElementType(nil), opts.Dtypes...)
	}
	for i, dt := range dtypes {
		switch dt {
		case Float32, Float64, Int32:
		case String40:
			return nil, validationErrf("column %d: string columns cannot be constructed", i)
		default:
			return nil, validationErrf("column %d: invalid element type %d", i, uint8(dt))
		}
	}

	width := 0
	for i := range data {
		if len(data[i]) > width {
			width = len(data[i])
		}
	}
	buf := make([][]float64, columns)
	for i := range data {
		col := make([]float64, width)
		for j := len(data[i]); j < width; j++ {
			col[j] = math.NaN()
		}
		copy(col, data[i])
		buf[i] = col
	}

	return &Table{
		FileID:  FileID12,
		Name:    name,
		Columns: columns,
		Rows:    rows,
		Headers: headers,
		Dtypes:  dtypes,
		Data:    buf,
	}, nil
}

// Column returns the live values of column i: Data[i] truncated to Rows[i].
// The slice shares backing storage with Data.
func (t *Table) Column(i int) []float64 {
	return t.Data[i][:t.Rows[i]]
}

// MaxRows returns the largest per-column row count, which is also the width
// of each Data slice on a decoded table.
func (t *Table) MaxRows() int {
	m := 0
	for _, r := range t.Rows {
		if r > m {
			m = r
		}
	}
	return m
}

// String renders the table metadata in the classic info layout.
func (t *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%14s: %s\n", "File Name", t.Name)
	fmt.Fprintf(&b, "%14s: %d\n", "File ID", t.FileID)
	fmt.Fprintf(&b, "%14s: %d\n", "Columns", t.Columns)
	fmt.Fprintf(&b, "%14s: %v\n", "Rows", t.Rows)
	fmt.Fprintf(&b, "%14s: %v\n", "Headers", t.Headers)
	fmt.Fprintf(&b, "%14s: %v", "Data Types", t.Dtypes)
	return b.String()
}

// Summary is the JSON-friendly metadata projection of a Table, served by the
// HTTP API and the CLI's json output mode.
type Summary struct {
	Name           string   `json:"name"`
	FileID         int      `json:"file_id"`
	Columns        int      `json:"columns"`
	MaxRows        int      `json:"max_rows"`
	Rows           []int    `json:"rows"`
	Headers        []string `json:"headers"`
	Dtypes         []string `json:"dtypes"`
	Unmaterialized []int    `json:"unmaterialized,omitempty"`
}

// Summary returns the metadata projection of t.
func (t *Table) Summary() Summary {
	dtypes := make([]string, len(t.Dtypes))
	for i, dt := range t.Dtypes {
		dtypes[i] = dt.String()
	}
	return Summary{
		Name:           t.Name,
		FileID:         t.FileID,
		Columns:        t.Columns,
		MaxRows:        t.MaxRows(),
		Rows:           t.Rows,
		Headers:        t.Headers,
		Dtypes:         dtypes,
		Unmaterialized: t.Unmaterialized,
	}
}
