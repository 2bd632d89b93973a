package qda

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Decode reads one QDA stream from r and materializes it as a Table. The
// stream is consumed exactly through the last column trailer; trailing bytes
// are left unread.
func Decode(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)

	var head [4]byte
	if err := readFull(br, head[:], "file identifier"); err != nil {
		return nil, err
	}
	id := int(binary.BigEndian.Uint16(head[0:2]))
	switch id {
	case FileID6, FileID8, FileID12:
	default:
		return nil, formatErrf("not a QDA file or unsupported version")
	}
	columns := int(int16(binary.BigEndian.Uint16(head[2:4])))
	if columns < 0 || columns > MaxColumns {
		return nil, formatErrf("column count %d outside [0, %d]", columns, MaxColumns)
	}
	if err := skip(br, headerBlockSize-len(head), "reserved header block"); err != nil {
		return nil, err
	}

	rows := make([]int, columns)
	if id == FileID12 {
		buf := make([]byte, 4*columns)
		if err := readFull(br, buf, "row counts"); err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i] = int(int32(binary.BigEndian.Uint32(buf[4*i:])))
		}
	} else {
		buf := make([]byte, 2*columns)
		if err := readFull(br, buf, "row counts"); err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i] = int(int16(binary.BigEndian.Uint16(buf[2*i:])))
		}
	}
	for i, n := range rows {
		if n < 0 || n > MaxColumnRows {
			return nil, formatErrf("column %d: row count %d outside [0, %d]", i, n, MaxColumnRows)
		}
	}

	tags := make([]byte, 2*columns)
	if err := readFull(br, tags, "type tags"); err != nil {
		return nil, err
	}
	dtypes := make([]ElementType, columns)
	var unknown []int16
	for i := range dtypes {
		code := int16(binary.BigEndian.Uint16(tags[2*i:]))
		dt, ok := elementTypeFromWire(code)
		if !ok {
			unknown = append(unknown, code)
			continue
		}
		dtypes[i] = dt
	}
	if unknown != nil {
		return nil, &UnsupportedTypeError{Codes: unknown}
	}

	headers := make([]string, columns)
	slot := make([]byte, headerSlotSize)
	for i := range headers {
		if err := readFull(br, slot, fmt.Sprintf("column %d header", i)); err != nil {
			return nil, err
		}
		label := slot
		if j := bytes.IndexByte(slot, 0); j >= 0 {
			label = slot[:j]
		}
		headers[i] = decodeLatin1(label)
	}

	width := 0
	for _, n := range rows {
		if n > width {
			width = n
		}
	}
	data := make([][]float64, columns)
	for i := range data {
		col := make([]float64, width)
		for j := range col {
			col[j] = math.NaN()
		}
		data[i] = col
	}

	var unmaterialized []int
	for i := 0; i < columns; i++ {
		n := rows[i]
		payload := make([]byte, n*dtypes[i].Size())
		if err := readFull(br, payload, fmt.Sprintf("column %d payload", i)); err != nil {
			return nil, err
		}
		switch dtypes[i] {
		case Float32:
			for j := 0; j < n; j++ {
				data[i][j] = float64(math.Float32frombits(binary.BigEndian.Uint32(payload[4*j:])))
			}
		case Float64:
			for j := 0; j < n; j++ {
				data[i][j] = math.Float64frombits(binary.BigEndian.Uint64(payload[8*j:]))
			}
		case Int32:
			for j := 0; j < n; j++ {
				data[i][j] = float64(int32(binary.BigEndian.Uint32(payload[4*j:])))
			}
		case String40:
			unmaterialized = append(unmaterialized, i)
		}
		if err := skip(br, columnTrailerSize+2*n, fmt.Sprintf("column %d trailer", i)); err != nil {
			return nil, err
		}
	}

	return &Table{
		FileID:         id,
		Name:           "Untitled",
		Columns:        columns,
		Rows:           rows,
		Headers:        headers,
		Dtypes:         dtypes,
		Data:           data,
		Unmaterialized: unmaterialized,
	}, nil
}

// DecodeBytes decodes a QDA stream held in memory.
func DecodeBytes(b []byte) (*Table, error) {
	return Decode(bytes.NewReader(b))
}

func readFull(r io.Reader, buf []byte, what string) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("qda: reading %s: %w", what, err)
	}
	return nil
}

func skip(br *bufio.Reader, n int, what string) error {
	if _, err := br.Discard(n); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("qda: skipping %s: %w", what, err)
	}
	return nil
}
