// Package qda reads and writes KaleidaGraph(tm) 3.x QDA data files.
//
// A QDA file stores a tabular, columnar data set: a fixed number of named
// columns, each holding its own number of numeric rows, each column
// independently typed. The package decodes a file into an in-memory Table and
// re-encodes a Table into the exact legacy byte layout, including padding,
// reserved fields, and per-column trailer bytes.
//
// # File format
//
// All multi-byte integers are big endian (Motorola). A file is a 512-byte
// header block followed by three per-column metadata sections and one data
// block per column:
//
//	offset  size         field
//	0       2            file identifier (00 06, 00 08, or 00 0C)
//	2       2            column count (int16)
//	4       508          reserved header block (8 tag bytes, zero filled)
//	512     4*columns    per-column row count (int32; ids 6 and 8 use int16)
//	-       2*columns    per-column element type tag (int16)
//	-       40*columns   per-column label, NUL-padded Latin-1
//	-       per column   element payload, 2*rows per-row marker bytes,
//	                     8 trailer tag bytes, label again in a 128-byte
//	                     NUL-padded slot
//
// Element type tags on the wire are 0 (float32), 3 (float64), 4 (int32) and
// 1 (fixed 40-byte string). String columns are recognized but their payload
// cannot be materialized into the numeric buffer; the bytes are consumed and
// the column's data stays NaN (see Table.Unmaterialized).
//
// The reserved spans are opaque: the decoder skips them and the encoder emits
// fixed byte patterns, so the 136 + 2*rows trailer the decoder expects is
// exactly the 8-byte trailer tag, the 128-byte label slot, and the repeated
// 2-byte row marker the encoder writes. Only the modern identifier (id 12) is
// ever written; ids 6 and 8 are read-only legacy variants with 16-bit row
// counts.
//
// # Usage
//
// Decoding and re-encoding:
//
//	t, err := qda.ReadFile("run-4.qda")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(t)
//	err = qda.WriteFile("copy.qda", t)
//
// Building a table from raw data:
//
//	t, err := qda.NewTable([][]float64{
//	    {1, 2, 3},
//	    {4, 5},
//	}, qda.TableOptions{
//	    Headers: []string{"time", "signal"},
//	    Dtypes:  []qda.ElementType{qda.Float64, qda.Float32},
//	})
//
// All decoded values are upcast to float64. Cells beyond a column's own row
// count hold NaN, never garbage.
//
// # Errors
//
// Decoding fails with *FormatError when the stream does not begin with a
// known file identifier or declares an out-of-range column count, and with
// *UnsupportedTypeError (carrying the raw wire codes) when a column's type
// tag is unknown. NewTable fails with *ValidationError on inconsistent
// arguments; Encode fails with *EncodingError when a header does not fit its
// fixed-width slot. A truncated stream surfaces as a wrapped io error. There
// are no retries and no partial results.
//
// # Concurrency
//
// The package keeps no process-wide state. Distinct Tables are fully
// independent, and concurrent Decode/Encode calls on distinct streams need no
// synchronization. A single Table is safe for concurrent reads but not for
// concurrent modification of its Data buffer.
package qda
