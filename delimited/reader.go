// Package delimited reads whitespace-delimited tabular text into Apache
// Arrow tables. It is not tied to any surrounding file format: callers
// supply the column names, and the reader only sees the data lines.
package delimited

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// ErrFieldCount is returned when a data line has a different number of
// fields than there are declared columns.
var ErrFieldCount = errors.New("wrong number of fields")

// Options control how data lines are tokenized.
type Options struct {
	// Comment is the full-line comment prefix: a line whose trimmed form
	// starts with it contributes no row. Empty disables comment handling.
	Comment string
}

// Read consumes r to the end and returns a table with one column per
// name in columns. Fields are separated by runs of whitespace, so
// repeated separators collapse and trailing whitespace yields no empty
// field. Blank lines contribute no row. Every retained line must have
// exactly len(columns) fields. An empty input is accepted and produces a
// zero-row table with the declared columns.
func Read(r io.Reader, columns []string, opts Options) (arrow.Table, error) {
	records, err := scan(r, len(columns), opts)
	if err != nil {
		return nil, err
	}

	return build(columns, records), nil
}

// scan tokenizes the data lines into field records, enforcing the
// declared width. Line numbers in errors count data-section lines.
func scan(r io.Reader, width int, opts Options) ([][]string, error) {
	var records [][]string

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if opts.Comment != "" && strings.HasPrefix(line, opts.Comment) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != width {
			return nil, fmt.Errorf("%w: data line %d has %d fields, want %d", ErrFieldCount, lineNo, len(fields), width)
		}

		records = append(records, fields)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read data section: %w", err)
	}

	return records, nil
}

// build constructs the arrow table, deciding each column's type once
// after the whole scan: Float64 when every value in the column parses as
// a float, String otherwise.
func build(columns []string, records [][]string) arrow.Table {
	fields := make([]arrow.Field, len(columns))
	arrays := make([]arrow.Array, len(columns))

	for i, name := range columns {
		values := make([]string, len(records))
		for j, record := range records {
			values[j] = record[i]
		}

		fields[i], arrays[i] = buildColumn(name, values)
	}

	schema := arrow.NewSchema(fields, nil)
	record := array.NewRecord(schema, arrays, int64(len(records)))

	for _, arr := range arrays {
		arr.Release()
	}
	defer record.Release()

	return array.NewTableFromRecords(schema, []arrow.Record{record})
}
