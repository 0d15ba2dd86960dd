package delimited

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

func TestReadBasic(t *testing.T) {
	table, err := Read(strings.NewReader("1 2\n3 4\n"), []string{"A", "B"}, Options{Comment: "#"})
	assert.NoError(t, err)
	defer table.Release()

	assert.Equal(t, int64(2), table.NumCols())
	assert.Equal(t, int64(2), table.NumRows())
	assert.Equal(t, "A", table.Schema().Field(0).Name)
	assert.Equal(t, "B", table.Schema().Field(1).Name)
}

func TestReadCollapsesRepeatedSeparators(t *testing.T) {
	table, err := Read(strings.NewReader("1   2   3\n"), []string{"A", "B", "C"}, Options{})
	assert.NoError(t, err)
	defer table.Release()

	assert.Equal(t, int64(1), table.NumRows())
	assert.Equal(t, 3.0, columnFloats(t, table, 2)[0])
}

func TestReadTrailingWhitespace(t *testing.T) {
	// Trailing spaces must not produce a trailing empty field
	table, err := Read(strings.NewReader("1 2   \n"), []string{"A", "B"}, Options{})
	assert.NoError(t, err)
	defer table.Release()

	assert.Equal(t, int64(1), table.NumRows())
}

func TestReadSkipsBlankAndCommentLines(t *testing.T) {
	input := "# header comment\n1 2\n\n   # indented comment\n3 4\n"

	table, err := Read(strings.NewReader(input), []string{"A", "B"}, Options{Comment: "#"})
	assert.NoError(t, err)
	defer table.Release()

	assert.Equal(t, int64(2), table.NumRows())
}

func TestReadCommentDisabled(t *testing.T) {
	_, err := Read(strings.NewReader("# 2\n"), []string{"A", "B"}, Options{})
	assert.NoError(t, err)
}

func TestReadFieldCountMismatch(t *testing.T) {
	_, err := Read(strings.NewReader("1 2\n3\n"), []string{"A", "B"}, Options{})
	assert.IsError(t, err, ErrFieldCount)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadEmptyInput(t *testing.T) {
	table, err := Read(strings.NewReader(""), []string{"A", "B"}, Options{})
	assert.NoError(t, err)
	defer table.Release()

	assert.Equal(t, int64(0), table.NumRows())
	assert.Equal(t, int64(2), table.NumCols())
}

func TestReadNumericInference(t *testing.T) {
	table, err := Read(strings.NewReader("1 x\n-2.5 y\n3e4 z\n"), []string{"N", "S"}, Options{})
	assert.NoError(t, err)
	defer table.Release()

	assert.Equal(t, arrow.FLOAT64, table.Schema().Field(0).Type.ID())
	assert.Equal(t, arrow.STRING, table.Schema().Field(1).Type.ID())

	numbers := columnFloats(t, table, 0)
	assert.Equal(t, []float64{1, -2.5, 30000}, numbers)
}

func TestReadMixedColumnDegradesToString(t *testing.T) {
	table, err := Read(strings.NewReader("1\ntwo\n3\n"), []string{"V"}, Options{})
	assert.NoError(t, err)
	defer table.Release()

	assert.Equal(t, arrow.STRING, table.Schema().Field(0).Type.ID())
}

func columnFloats(t *testing.T, table arrow.Table, col int) []float64 {
	t.Helper()

	var out []float64

	for _, chunk := range table.Column(col).Data().Chunks() {
		arr, ok := chunk.(*array.Float64)
		assert.True(t, ok)

		for i := 0; i < arr.Len(); i++ {
			out = append(out, arr.Value(i))
		}
	}

	return out
}
