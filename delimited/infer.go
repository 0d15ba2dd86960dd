package delimited

import (
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// buildColumn infers the column type from its values and builds the
// backing array. A column with no values, or with any value that does not
// parse as a float, becomes a String column; mixed columns degrade to
// String rather than failing.
func buildColumn(name string, values []string) (arrow.Field, arrow.Array) {
	mem := memory.DefaultAllocator

	if numbers, ok := asFloats(values); ok {
		builder := array.NewFloat64Builder(mem)
		defer builder.Release()

		builder.AppendValues(numbers, nil)

		return arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64}, builder.NewArray()
	}

	builder := array.NewStringBuilder(mem)
	defer builder.Release()

	builder.AppendValues(values, nil)

	return arrow.Field{Name: name, Type: arrow.BinaryTypes.String}, builder.NewArray()
}

// asFloats parses every value as float64, reporting whether the whole
// column is numeric.
func asFloats(values []string) ([]float64, bool) {
	if len(values) == 0 {
		return nil, false
	}

	numbers := make([]float64, len(values))

	for i, value := range values {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, false
		}

		numbers[i] = f
	}

	return numbers, true
}
