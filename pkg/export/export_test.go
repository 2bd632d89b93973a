package export

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaleidalab/qdakit/pkg/qda"
)

func exportTable(t *testing.T) *qda.Table {
	t.Helper()
	table, err := qda.NewTable([][]float64{
		{1, 2, 0},
		{3, 4, 5},
		{6, 7, 0},
	}, qda.TableOptions{
		Rows:    []int{2, 3, 2},
		Headers: []string{"X", "Y", "Z"},
		Dtypes:  []qda.ElementType{qda.Float64, qda.Int32, qda.Float32},
	})
	require.NoError(t, err)
	return table
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.csv", FormatCSV},
		{"out.CSV", FormatCSV},
		{"dir/out.csv.gz", FormatCSVGzip},
		{"out.arrow", FormatArrow},
		{"runs/out.parquet", FormatParquet},
	}
	for _, tt := range tests {
		got, err := Detect(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := Detect("out.qda")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportTable(t), FormatCSV))

	want := "X,Y,Z\n1,3,6\n2,4,7\n,5,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVNaNValue(t *testing.T) {
	table, err := qda.NewTable([][]float64{{math.NaN(), 2}}, qda.TableOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table, FormatCSV))
	assert.Equal(t, "A\nNaN\n2\n", buf.String())
}

func TestWriteCSVEmptyTable(t *testing.T) {
	table, err := qda.NewTable(nil, qda.TableOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table, FormatCSV))
	assert.Empty(t, buf.String())
}

func TestWriteCSVGzip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportTable(t), FormatCSVGzip))

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	defer gz.Close()
	plain, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, "X,Y,Z\n1,3,6\n2,4,7\n,5,\n", string(plain))
}

func TestWriteArrow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportTable(t), FormatArrow))

	reader, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(memory.NewGoAllocator()))
	require.NoError(t, err)
	defer reader.Close()

	schema := reader.Schema()
	require.Equal(t, 3, schema.NumFields())
	assert.Equal(t, "X", schema.Field(0).Name)
	assert.Equal(t, arrow.PrimitiveTypes.Float64, schema.Field(0).Type)
	assert.Equal(t, arrow.PrimitiveTypes.Int32, schema.Field(1).Type)
	assert.Equal(t, arrow.PrimitiveTypes.Float32, schema.Field(2).Type)

	require.Equal(t, 1, reader.NumRecords())
	rec, err := reader.Record(0)
	require.NoError(t, err)
	require.EqualValues(t, 3, rec.NumRows())

	x := rec.Column(0).(*array.Float64)
	assert.Equal(t, 1.0, x.Value(0))
	assert.Equal(t, 2.0, x.Value(1))
	assert.True(t, x.IsNull(2))

	y := rec.Column(1).(*array.Int32)
	assert.EqualValues(t, 3, y.Value(0))
	assert.EqualValues(t, 5, y.Value(2))

	z := rec.Column(2).(*array.Float32)
	assert.EqualValues(t, 6, z.Value(0))
	assert.True(t, z.IsNull(2))
}

func TestWriteArrowStringColumn(t *testing.T) {
	nan := math.NaN()
	table := &qda.Table{
		FileID:         qda.FileID12,
		Columns:        2,
		Rows:           []int{2, 2},
		Headers:        []string{"note", "value"},
		Dtypes:         []qda.ElementType{qda.String40, qda.Float64},
		Data:           [][]float64{{nan, nan}, {1, 2}},
		Unmaterialized: []int{0},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table, FormatArrow))

	reader, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(memory.NewGoAllocator()))
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, arrow.BinaryTypes.String, reader.Schema().Field(0).Type)
	rec, err := reader.Record(0)
	require.NoError(t, err)

	note := rec.Column(0).(*array.String)
	assert.True(t, note.IsNull(0))
	assert.True(t, note.IsNull(1))
}

func TestWriteParquet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportTable(t), FormatParquet))

	raw := buf.Bytes()
	require.Greater(t, len(raw), 8)
	assert.Equal(t, "PAR1", string(raw[:4]))
	assert.Equal(t, "PAR1", string(raw[len(raw)-4:]))
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, exportTable(t), Format("xlsx"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "qdakit_export_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "out.csv")
	require.NoError(t, WriteFile(path, exportTable(t)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "X,Y,Z\n1,3,6\n2,4,7\n,5,\n", string(content))

	err = WriteFile(filepath.Join(tmpDir, "out.xlsx"), exportTable(t))
	assert.Error(t, err)
}
