//go:build fuzz
// +build fuzz

package qda

import (
	"math"
	"testing"
)

// FuzzDecode feeds arbitrary bytes to the decoder. Malformed input must
// surface as an error; whenever decoding succeeds, the table must be
// internally consistent and re-encodable.
func FuzzDecode(f *testing.F) {
	seed, err := NewTable([][]float64{{1, 2, 0}, {3, 4, 5}}, TableOptions{Rows: []int{2, 3}})
	if err != nil {
		f.Fatal(err)
	}
	raw, err := seed.EncodeBytes()
	if err != nil {
		f.Fatal(err)
	}
	empty, err := NewTable(nil, TableOptions{})
	if err != nil {
		f.Fatal(err)
	}
	emptyRaw, err := empty.EncodeBytes()
	if err != nil {
		f.Fatal(err)
	}

	f.Add(raw)
	f.Add(emptyRaw)
	f.Add(raw[:100])
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x0C})
	f.Add([]byte{0x00, 0x06, 0x00, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		table, err := DecodeBytes(data)
		if err != nil {
			return
		}
		if table.Columns != len(table.Rows) || table.Columns != len(table.Headers) ||
			table.Columns != len(table.Dtypes) || table.Columns != len(table.Data) {
			t.Fatalf("decoded table is inconsistent: %+v", table)
		}
		if _, err := table.EncodeBytes(); err != nil {
			t.Fatalf("decoded table failed to re-encode: %v", err)
		}
	})
}

// FuzzRoundTrip builds small tables from fuzzed values and checks that every
// emitted cell survives an encode/decode cycle.
func FuzzRoundTrip(f *testing.F) {
	f.Add(1.0, 2.0, 3.0, uint8(3))
	f.Add(0.0, -1.5, math.MaxFloat64, uint8(1))
	f.Add(math.Inf(1), math.Inf(-1), math.SmallestNonzeroFloat64, uint8(2))

	f.Fuzz(func(t *testing.T, a, b, c float64, n uint8) {
		rows := int(n % 4)
		values := []float64{a, b, c}[:rows]
		table, err := NewTable([][]float64{values}, TableOptions{})
		if err != nil {
			t.Fatalf("NewTable failed: %v", err)
		}
		raw, err := table.EncodeBytes()
		if err != nil {
			t.Fatalf("EncodeBytes failed: %v", err)
		}
		decoded, err := DecodeBytes(raw)
		if err != nil {
			t.Fatalf("DecodeBytes failed: %v", err)
		}
		if decoded.Rows[0] != rows {
			t.Fatalf("Rows[0] = %d, want %d", decoded.Rows[0], rows)
		}
		for i, want := range values {
			got := decoded.Data[0][i]
			if math.IsNaN(want) && math.IsNaN(got) {
				continue
			}
			if got != want {
				t.Errorf("cell %d: got %v, want %v", i, got, want)
			}
		}
	})
}
