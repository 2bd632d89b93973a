package qda

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Encode writes t to w in the modern (id 12) layout. Structural consistency
// and header widths are validated before any byte is written, so a failed
// Encode leaves w untouched.
func (t *Table) Encode(w io.Writer) error {
	if err := t.checkConsistent(); err != nil {
		return err
	}
	labels := make([][]byte, t.Columns)
	for i := 0; i < t.Columns; i++ {
		raw, err := encodeLatin1(t.Headers[i])
		if err != nil {
			return encodingErrf("column %d: header %q is not Latin-1", i, t.Headers[i])
		}
		if len(raw) > MaxHeaderLen {
			return encodingErrf("column %d: header %q is %d bytes, slot is %d", i, t.Headers[i], len(raw), MaxHeaderLen)
		}
		labels[i] = raw
	}

	bw := bufio.NewWriter(w)

	head := make([]byte, headerBlockSize)
	binary.BigEndian.PutUint16(head[0:2], uint16(FileID12))
	binary.BigEndian.PutUint16(head[2:4], uint16(int16(t.Columns)))
	copy(head[4:], headerTag[:])
	bw.Write(head)

	var b4 [4]byte
	for _, n := range t.Rows {
		binary.BigEndian.PutUint32(b4[:], uint32(int32(n)))
		bw.Write(b4[:])
	}
	var b2 [2]byte
	for _, dt := range t.Dtypes {
		binary.BigEndian.PutUint16(b2[:], uint16(dt.WireCode()))
		bw.Write(b2[:])
	}
	slot := make([]byte, headerSlotSize)
	for i := range labels {
		zero(slot)
		copy(slot, labels[i])
		bw.Write(slot)
	}

	trailer := make([]byte, trailerLabelSize)
	for i := 0; i < t.Columns; i++ {
		n := t.Rows[i]
		payload := make([]byte, n*t.Dtypes[i].Size())
		switch t.Dtypes[i] {
		case Float32:
			for j := 0; j < n; j++ {
				binary.BigEndian.PutUint32(payload[4*j:], math.Float32bits(float32(t.Data[i][j])))
			}
		case Float64:
			for j := 0; j < n; j++ {
				binary.BigEndian.PutUint64(payload[8*j:], math.Float64bits(t.Data[i][j]))
			}
		case Int32:
			for j := 0; j < n; j++ {
				binary.BigEndian.PutUint32(payload[4*j:], uint32(int32(t.Data[i][j])))
			}
		case String40:
			// string cells have no numeric image; the payload stays zero
		}
		bw.Write(payload)
		for j := 0; j < n; j++ {
			bw.Write(rowMarker[:])
		}
		bw.Write(trailerTag[:])
		zero(trailer)
		copy(trailer, labels[i])
		bw.Write(trailer)
	}

	return bw.Flush()
}

// EncodeBytes renders t as an in-memory QDA image.
func (t *Table) EncodeBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodedSize returns the exact byte length Encode produces for a
// structurally consistent table.
func (t *Table) EncodedSize() int {
	size := headerBlockSize + t.Columns*(4+2+headerSlotSize+columnTrailerSize)
	for i, n := range t.Rows {
		size += n*t.Dtypes[i].Size() + 2*n
	}
	return size
}

func (t *Table) checkConsistent() error {
	if t.Columns < 0 || t.Columns > MaxColumns {
		return encodingErrf("column count %d outside [0, %d]", t.Columns, MaxColumns)
	}
	if len(t.Rows) != t.Columns || len(t.Headers) != t.Columns || len(t.Dtypes) != t.Columns || len(t.Data) != t.Columns {
		return encodingErrf("inconsistent table: %d columns but %d rows, %d headers, %d dtypes, %d data slices",
			t.Columns, len(t.Rows), len(t.Headers), len(t.Dtypes), len(t.Data))
	}
	for i, n := range t.Rows {
		if n < 0 || n > MaxColumnRows {
			return encodingErrf("column %d: row count %d outside [0, %d]", i, n, MaxColumnRows)
		}
		if t.Dtypes[i].Numeric() && n > len(t.Data[i]) {
			return encodingErrf("column %d: row count %d exceeds %d buffered values", i, n, len(t.Data[i]))
		}
	}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
