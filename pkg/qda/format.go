package qda

// File identifiers, stored big endian in the first two bytes.
const (
	FileID6  = 6  // legacy, 16-bit row counts
	FileID8  = 8  // legacy, 16-bit row counts
	FileID12 = 12 // modern layout; the only id the encoder writes
)

// Structural limits, enforced on decode and on construction alike.
const (
	// MaxColumns bounds the int16 column count field.
	MaxColumns = 1000
	// MaxColumnRows bounds each column's declared row count.
	MaxColumnRows = 32768
	// MaxHeaderLen is the Latin-1 byte capacity of a column label on disk.
	MaxHeaderLen = 40
)

// Fixed byte spans of the layout.
const (
	headerBlockSize   = 512 // id, column count, tag bytes, zero fill
	headerSlotSize    = 40  // per-column label slot in the header section
	trailerLabelSize  = 128 // per-column label slot in the column trailer
	columnTrailerSize = len(trailerTag) + trailerLabelSize
)

// Fixed byte patterns. headerTag sits at offset 4 of the header block;
// rowMarker repeats once per row after a column payload, then trailerTag and
// the 128-byte label slot close the column out.
var (
	headerTag  = [8]byte{0x00, 0x0E, 0x01, 0x02, 0x00, 0x05, 0x00, 0x01}
	trailerTag = [8]byte{0x0E, 0x02, 0x01, 0x00, 0x05, 0x00, 0x00, 0x01}
	rowMarker  = [2]byte{0x00, 0x01}
)
