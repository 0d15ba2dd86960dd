// Package format renders parsed IFX tables for terminal and interchange
// use.
package format

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/goccy/go-yaml"

	"github.com/shibukawa/ifx"
)

// ErrInvalidOutputFormat is returned for an unknown output format name.
var ErrInvalidOutputFormat = errors.New("invalid output format")

// OutputFormat identifies a rendering of a parsed table
type OutputFormat string

const (
	FormatTable    OutputFormat = "table"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatYAML     OutputFormat = "yaml"
	FormatMarkdown OutputFormat = "markdown"
)

// IsValidOutputFormat checks if the output format name is valid
func IsValidOutputFormat(format string) bool {
	f := OutputFormat(strings.ToLower(format))
	return f == FormatTable || f == FormatJSON || f == FormatCSV || f == FormatYAML || f == FormatMarkdown
}

// Formatter formats parsed tables
type Formatter struct {
	Format OutputFormat
}

// NewFormatter creates a new table formatter
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{
		Format: format,
	}
}

// Write formats table according to the configured format
func (f *Formatter) Write(table arrow.Table, output io.Writer) error {
	switch f.Format {
	case FormatTable:
		return f.writeAsTable(table, output)
	case FormatJSON:
		return f.writeAsJSON(table, output)
	case FormatCSV:
		return f.writeAsCSV(table, output)
	case FormatYAML:
		return f.writeAsYAML(table, output)
	case FormatMarkdown:
		return f.writeAsMarkdown(table, output)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, f.Format)
	}
}

// writeAsTable renders an aligned text table with a row-count footer
func (f *Formatter) writeAsTable(table arrow.Table, output io.Writer) error {
	columns := ifx.ColumnNames(table)
	rows := ifx.Rows(table)

	if len(rows) == 0 {
		fmt.Fprintln(output, "No rows")
		return nil
	}

	cells := stringCells(rows)
	widths := columnWidths(columns, cells)

	writeAligned(output, columns, widths)
	for _, row := range cells {
		writeAligned(output, row, widths)
	}

	_, err := fmt.Fprintf(output, "(%d rows)\n", len(rows))

	return err
}

// writeAsMarkdown renders a Markdown table
func (f *Formatter) writeAsMarkdown(table arrow.Table, output io.Writer) error {
	columns := ifx.ColumnNames(table)
	rows := ifx.Rows(table)

	cells := stringCells(rows)
	widths := columnWidths(columns, cells)

	writePiped(output, columns, widths)

	rules := make([]string, len(columns))
	for i, width := range widths {
		rules[i] = strings.Repeat("-", width)
	}
	writePiped(output, rules, widths)

	for _, row := range cells {
		writePiped(output, row, widths)
	}

	return nil
}

// writeAsJSON emits the rows as objects plus the attached metadata
func (f *Formatter) writeAsJSON(table arrow.Table, output io.Writer) error {
	jsonResult := map[string]any{
		"data":     rowsToMaps(table),
		"rows":     table.NumRows(),
		"metadata": ifx.Annotations(table),
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	return encoder.Encode(jsonResult)
}

// writeAsCSV emits a header line followed by the rows
func (f *Formatter) writeAsCSV(table arrow.Table, output io.Writer) error {
	writer := csv.NewWriter(output)
	defer writer.Flush()

	if err := writer.Write(ifx.ColumnNames(table)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range ifx.Rows(table) {
		values := make([]string, len(row))
		for i, value := range row {
			values[i] = formatValue(value)
		}

		if err := writer.Write(values); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

// writeAsYAML emits the rows as objects plus the attached metadata
func (f *Formatter) writeAsYAML(table arrow.Table, output io.Writer) error {
	yamlResult := map[string]any{
		"data":     rowsToMaps(table),
		"rows":     table.NumRows(),
		"metadata": ifx.Annotations(table),
	}

	data, err := yaml.Marshal(yamlResult)
	if err != nil {
		return fmt.Errorf("failed to marshal results to YAML: %w", err)
	}

	_, err = output.Write(data)

	return err
}

// rowsToMaps converts the table rows to column-keyed maps
func rowsToMaps(table arrow.Table) []map[string]any {
	columns := ifx.ColumnNames(table)

	var result []map[string]any

	for _, row := range ifx.Rows(table) {
		rowMap := make(map[string]any, len(columns))
		for i, column := range columns {
			rowMap[column] = row[i]
		}

		result = append(result, rowMap)
	}

	return result
}

// formatValue formats a cell value as a string
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stringCells(rows [][]any) [][]string {
	cells := make([][]string, len(rows))

	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, value := range row {
			cells[i][j] = formatValue(value)
		}
	}

	return cells
}

func columnWidths(columns []string, cells [][]string) []int {
	widths := make([]int, len(columns))
	for i, column := range columns {
		widths[i] = len(column)
	}

	for _, row := range cells {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	return widths
}

func writeAligned(output io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}

	fmt.Fprintln(output, strings.TrimRight(strings.Join(parts, "  "), " "))
}

func writePiped(output io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}

	fmt.Fprintln(output, "| "+strings.Join(parts, " | ")+" |")
}
