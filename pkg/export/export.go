// Package export renders decoded QDA tables in modern interchange formats:
// CSV (optionally gzip compressed), Arrow IPC, and Parquet.
//
// Every export preserves the table's per-column row counts: cells beyond a
// column's own row count become empty CSV fields or Arrow nulls, and string
// columns (which carry no numeric values) export as all-null columns.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/klauspost/compress/gzip"

	"github.com/kaleidalab/qdakit/pkg/qda"
)

// Format identifies an export encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatCSVGzip Format = "csv.gz"
	FormatArrow   Format = "arrow"
	FormatParquet Format = "parquet"
)

// Formats lists every supported format name.
func Formats() []Format {
	return []Format{FormatCSV, FormatCSVGzip, FormatArrow, FormatParquet}
}

// ParseFormat maps a format name to its Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatCSVGzip:
		return FormatCSVGzip, nil
	case FormatArrow:
		return FormatArrow, nil
	case FormatParquet:
		return FormatParquet, nil
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// Detect infers the format from a destination file name.
func Detect(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".csv.gz"):
		return FormatCSVGzip, nil
	case strings.HasSuffix(name, ".csv"):
		return FormatCSV, nil
	case strings.HasSuffix(name, ".arrow"), strings.HasSuffix(name, ".arrows"):
		return FormatArrow, nil
	case strings.HasSuffix(name, ".parquet"):
		return FormatParquet, nil
	}
	return "", fmt.Errorf("export: cannot detect format from %q", path)
}

// Write renders table to w in the given format.
func Write(w io.Writer, table *qda.Table, format Format) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, table)
	case FormatCSVGzip:
		gz := gzip.NewWriter(w)
		if err := writeCSV(gz, table); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	case FormatArrow:
		return writeArrow(w, table)
	case FormatParquet:
		return writeParquet(w, table)
	}
	return fmt.Errorf("export: unknown format %q", format)
}

// WriteFile renders table to path in the format detected from the file name.
func WriteFile(path string, table *qda.Table) error {
	format, err := Detect(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := Write(f, table, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func arrowType(dt qda.ElementType) arrow.DataType {
	switch dt {
	case qda.Float32:
		return arrow.PrimitiveTypes.Float32
	case qda.Int32:
		return arrow.PrimitiveTypes.Int32
	case qda.String40:
		return arrow.BinaryTypes.String
	default:
		return arrow.PrimitiveTypes.Float64
	}
}

func arrowSchema(table *qda.Table) *arrow.Schema {
	fields := make([]arrow.Field, table.Columns)
	for i := range fields {
		fields[i] = arrow.Field{
			Name:     table.Headers[i],
			Type:     arrowType(table.Dtypes[i]),
			Nullable: true,
		}
	}
	return arrow.NewSchema(fields, nil)
}

// buildRecord materializes the table as one Arrow record batch. The caller
// owns the returned record and must Release it.
func buildRecord(pool memory.Allocator, table *qda.Table) (arrow.Record, *arrow.Schema) {
	schema := arrowSchema(table)
	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	rows := table.MaxRows()
	for i := 0; i < table.Columns; i++ {
		switch fb := builder.Field(i).(type) {
		case *array.Float32Builder:
			for j := 0; j < rows; j++ {
				if j < table.Rows[i] {
					fb.Append(float32(table.Data[i][j]))
				} else {
					fb.AppendNull()
				}
			}
		case *array.Float64Builder:
			for j := 0; j < rows; j++ {
				if j < table.Rows[i] {
					fb.Append(table.Data[i][j])
				} else {
					fb.AppendNull()
				}
			}
		case *array.Int32Builder:
			for j := 0; j < rows; j++ {
				if j < table.Rows[i] {
					fb.Append(int32(table.Data[i][j]))
				} else {
					fb.AppendNull()
				}
			}
		case *array.StringBuilder:
			for j := 0; j < rows; j++ {
				fb.AppendNull()
			}
		}
	}
	return builder.NewRecord(), schema
}

func writeArrow(w io.Writer, table *qda.Table) error {
	pool := memory.NewGoAllocator()
	rec, schema := buildRecord(pool, table)
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return fmt.Errorf("export: create arrow writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return fmt.Errorf("export: write arrow record: %w", err)
	}
	return fw.Close()
}

func writeParquet(w io.Writer, table *qda.Table) error {
	pool := memory.NewGoAllocator()
	rec, schema := buildRecord(pool, table)
	defer rec.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	fw, err := pqarrow.NewFileWriter(schema, w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("export: create parquet writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return fmt.Errorf("export: write parquet record: %w", err)
	}
	return fw.Close()
}
