package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/shibukawa/ifx"
)

const sampleInput = `Author=Jane
Columns=A,B
[Data]
1 x
2.5 y
`

func parseSample(t *testing.T) arrow.Table {
	t.Helper()

	table, err := ifx.Read(strings.NewReader(sampleInput))
	assert.NoError(t, err)
	t.Cleanup(table.Release)

	return table
}

func TestIsValidOutputFormat(t *testing.T) {
	assert.True(t, IsValidOutputFormat("table"))
	assert.True(t, IsValidOutputFormat("JSON"))
	assert.True(t, IsValidOutputFormat("markdown"))
	assert.False(t, IsValidOutputFormat("xml"))
}

func TestWriteUnknownFormat(t *testing.T) {
	table := parseSample(t)

	err := NewFormatter("xml").Write(table, &bytes.Buffer{})
	assert.IsError(t, err, ErrInvalidOutputFormat)
}

func TestWriteCSV(t *testing.T) {
	table := parseSample(t)

	var buf bytes.Buffer
	err := NewFormatter(FormatCSV).Write(table, &buf)
	assert.NoError(t, err)

	assert.Equal(t, "A,B\n1,x\n2.5,y\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	table := parseSample(t)

	var buf bytes.Buffer
	err := NewFormatter(FormatJSON).Write(table, &buf)
	assert.NoError(t, err)

	var decoded struct {
		Data     []map[string]any  `json:"data"`
		Rows     int               `json:"rows"`
		Metadata map[string]string `json:"metadata"`
	}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 2, decoded.Rows)
	assert.Equal(t, 2, len(decoded.Data))
	assert.Equal(t, "x", decoded.Data[0]["B"].(string))
	assert.Equal(t, 2.5, decoded.Data[1]["A"].(float64))
	assert.Equal(t, "Jane", decoded.Metadata["Author"])
	assert.Equal(t, "A,B", decoded.Metadata["Columns"])
}

func TestWriteYAML(t *testing.T) {
	table := parseSample(t)

	var buf bytes.Buffer
	err := NewFormatter(FormatYAML).Write(table, &buf)
	assert.NoError(t, err)

	assert.Contains(t, buf.String(), "rows: 2")
	assert.Contains(t, buf.String(), "Author: Jane")
}

func TestWriteTable(t *testing.T) {
	table := parseSample(t)

	var buf bytes.Buffer
	err := NewFormatter(FormatTable).Write(table, &buf)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 4, len(lines))
	assert.Contains(t, lines[0], "A")
	assert.Contains(t, lines[0], "B")
	assert.Contains(t, lines[2], "2.5")
	assert.Equal(t, "(2 rows)", lines[3])
}

func TestWriteTableEmpty(t *testing.T) {
	input := "Columns=A,B\n[Data]\n"

	table, err := ifx.Read(strings.NewReader(input))
	assert.NoError(t, err)
	defer table.Release()

	var buf bytes.Buffer
	assert.NoError(t, NewFormatter(FormatTable).Write(table, &buf))
	assert.Equal(t, "No rows\n", buf.String())
}

func TestWriteMarkdown(t *testing.T) {
	table := parseSample(t)

	var buf bytes.Buffer
	err := NewFormatter(FormatMarkdown).Write(table, &buf)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 4, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "| "))
	assert.Contains(t, lines[1], "---")
	assert.Contains(t, lines[2], "| 1")
}
