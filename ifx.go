// Package ifx reads the IFX annotated-table text format: a header of
// key=value metadata lines, a [Data] marker, then whitespace-delimited
// rows. The result is an Apache Arrow table whose schema metadata carries
// every header pair, including the Columns declaration itself.
package ifx

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/shibukawa/ifx/delimited"
)

const (
	// dataMarker ends the header. Matched by prefix on the trimmed line.
	dataMarker = "[Data]"

	// columnsKey is the mandatory header entry declaring the data
	// section's column names, comma separated and in table order.
	columnsKey = "Columns"
)

// ReadOption adjusts how Read treats the input.
type ReadOption func(*readOptions)

type readOptions struct {
	requireRows   bool
	commentPrefix string
}

// RequireRows makes Read fail with ErrEmptyDataSection when the data
// section contains no rows. The default accepts an empty section and
// returns a zero-row table with the declared columns.
func RequireRows() ReadOption {
	return func(o *readOptions) {
		o.requireRows = true
	}
}

// CommentPrefix overrides the default "#" full-line comment prefix of the
// data section.
func CommentPrefix(prefix string) ReadOption {
	return func(o *readOptions) {
		o.commentPrefix = prefix
	}
}

// Read parses an IFX document from r. The stream is consumed once, front
// to back. Each header pair becomes a string annotation on the returned
// table; the Columns value defines the column names and order, with
// per-column value types inferred from the data section.
func Read(r io.Reader, opts ...ReadOption) (arrow.Table, error) {
	options := readOptions{commentPrefix: "#"}
	for _, opt := range opts {
		opt(&options)
	}

	br := bufio.NewReader(r)

	meta, columns, err := parseHeader(br)
	if err != nil {
		return nil, err
	}

	table, err := delimited.Read(br, columns, delimited.Options{Comment: options.commentPrefix})
	if err != nil {
		return nil, err
	}

	if options.requireRows && table.NumRows() == 0 {
		return nil, ErrEmptyDataSection
	}

	return withAnnotations(table, meta), nil
}

// ReadFile opens path read-only, parses it with Read, and closes the file
// on every exit path. Open failures propagate unchanged from the os layer.
func ReadFile(path string, opts ...ReadOption) (arrow.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, opts...)
}

// parseHeader consumes header lines from br up to and including the
// [Data] marker. It returns the metadata pairs and the ordered column
// names declared by the Columns entry, leaving br positioned at the first
// data line.
func parseHeader(br *bufio.Reader) (map[string]string, []string, error) {
	meta := make(map[string]string)
	sawMarker := false

	for !sawMarker {
		line, err := br.ReadString('\n')
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			// blank lines are transparent anywhere in the header
		case strings.HasPrefix(trimmed, dataMarker):
			sawMarker = true
		default:
			key, value, found := strings.Cut(trimmed, "=")
			if !found {
				return nil, nil, fmt.Errorf("%w: %q", ErrMalformedHeaderLine, trimmed)
			}
			// Only the first '=' separates; the value keeps any further
			// '=' characters verbatim. A repeated key overwrites.
			meta[strings.TrimSpace(key)] = value
		}

		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}
	}

	if !sawMarker {
		return nil, nil, ErrUnterminatedHeader
	}

	declared, ok := meta[columnsKey]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumns, columnsKey)
	}

	parts := strings.Split(declared, ",")
	columns := make([]string, len(parts))
	for i, part := range parts {
		columns[i] = strings.TrimSpace(part)
	}

	return meta, columns, nil
}
