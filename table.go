package ifx

import (
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// withAnnotations returns a table sharing t's columns whose schema
// metadata holds every header pair.
func withAnnotations(t arrow.Table, meta map[string]string) arrow.Table {
	md := arrow.MetadataFrom(meta)
	schema := arrow.NewSchema(t.Schema().Fields(), &md)

	columns := make([]arrow.Column, t.NumCols())
	for i := range columns {
		columns[i] = *t.Column(i)
	}

	return array.NewTable(schema, columns, t.NumRows())
}

// Annotation returns the header value attached to t under key.
func Annotation(t arrow.Table, key string) (string, bool) {
	md := t.Schema().Metadata()

	i := md.FindKey(key)
	if i < 0 {
		return "", false
	}

	return md.Values()[i], true
}

// Annotations returns every header pair attached to t.
func Annotations(t arrow.Table) map[string]string {
	md := t.Schema().Metadata()

	out := make(map[string]string, md.Len())
	for i, key := range md.Keys() {
		out[key] = md.Values()[i]
	}

	return out
}

// AnnotationKeys returns the attached header keys in sorted order.
func AnnotationKeys(t arrow.Table) []string {
	keys := append([]string(nil), t.Schema().Metadata().Keys()...)
	sort.Strings(keys)

	return keys
}

// ColumnNames returns t's column names in table order.
func ColumnNames(t arrow.Table) []string {
	fields := t.Schema().Fields()

	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name
	}

	return names
}

// Rows materializes t as row-major values: float64 for numeric columns,
// string for text columns.
func Rows(t arrow.Table) [][]any {
	rows := make([][]any, t.NumRows())
	for i := range rows {
		rows[i] = make([]any, t.NumCols())
	}

	for c := 0; c < int(t.NumCols()); c++ {
		r := 0

		for _, chunk := range t.Column(c).Data().Chunks() {
			switch arr := chunk.(type) {
			case *array.Float64:
				for j := 0; j < arr.Len(); j++ {
					rows[r][c] = arr.Value(j)
					r++
				}
			case *array.String:
				for j := 0; j < arr.Len(); j++ {
					rows[r][c] = arr.Value(j)
					r++
				}
			default:
				for j := 0; j < chunk.Len(); j++ {
					rows[r][c] = chunk.ValueStr(j)
					r++
				}
			}
		}
	}

	return rows
}
