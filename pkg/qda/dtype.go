package qda

import "fmt"

// ElementType identifies the on-disk encoding of one column's cells. The set
// is closed: the four values below are the only encodings the format defines.
type ElementType uint8

const (
	// Float32 is a 4-byte IEEE 754 single, wire tag 0.
	Float32 ElementType = iota
	// Float64 is an 8-byte IEEE 754 double, wire tag 3.
	Float64
	// Int32 is a 4-byte signed integer, wire tag 4.
	Int32
	// String40 is a fixed 40-byte string cell, wire tag 1. String columns are
	// structural only: they cannot be materialized into a numeric buffer and
	// cannot be requested when constructing a Table.
	String40
)

// Wire tag values, stored as big-endian int16 in the type tag section.
const (
	wireFloat32  int16 = 0
	wireString40 int16 = 1
	wireFloat64  int16 = 3
	wireInt32    int16 = 4
)

func elementTypeFromWire(code int16) (ElementType, bool) {
	switch code {
	case wireFloat32:
		return Float32, true
	case wireFloat64:
		return Float64, true
	case wireInt32:
		return Int32, true
	case wireString40:
		return String40, true
	}
	return 0, false
}

// WireCode returns the int16 tag written to the type tag section.
func (e ElementType) WireCode() int16 {
	switch e {
	case Float32:
		return wireFloat32
	case Float64:
		return wireFloat64
	case Int32:
		return wireInt32
	case String40:
		return wireString40
	}
	panic(fmt.Sprintf("qda: invalid element type %d", uint8(e)))
}

// Size returns the payload bytes occupied by one cell of this type.
func (e ElementType) Size() int {
	switch e {
	case Float32, Int32:
		return 4
	case Float64:
		return 8
	case String40:
		return 40
	}
	panic(fmt.Sprintf("qda: invalid element type %d", uint8(e)))
}

// Numeric reports whether cells of this type decode into the float64 data
// buffer.
func (e ElementType) Numeric() bool {
	return e != String40
}

func (e ElementType) String() string {
	switch e {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case String40:
		return "string40"
	}
	return fmt.Sprintf("ElementType(%d)", uint8(e))
}

// ParseElementType maps a type name back to its ElementType. Accepted names
// are the String results: "float32", "float64", "int32" and "string40".
func ParseElementType(s string) (ElementType, error) {
	switch s {
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	case "int32":
		return Int32, nil
	case "string40":
		return String40, nil
	}
	return 0, fmt.Errorf("qda: unknown element type %q", s)
}
