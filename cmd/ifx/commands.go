package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/fatih/color"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shibukawa/ifx"
	"github.com/shibukawa/ifx/export"
	"github.com/shibukawa/ifx/format"
)

// CatCmd represents the cat command
type CatCmd struct {
	Input  string `arg:"" help:"IFX file to read" type:"path"`
	Format string `help:"Output format (table, json, csv, yaml, markdown)"`
}

func (c *CatCmd) Run(ctx *Context) error {
	config, err := ifx.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outputFormat := c.Format
	if outputFormat == "" {
		outputFormat = config.Output.DefaultFormat
	}

	if !format.IsValidOutputFormat(outputFormat) {
		return fmt.Errorf("%w: %s", format.ErrInvalidOutputFormat, outputFormat)
	}

	if ctx.Verbose {
		color.Blue("Reading %s", c.Input)
	}

	table, err := readWithConfig(c.Input, config)
	if err != nil {
		return err
	}
	defer table.Release()

	formatter := format.NewFormatter(format.OutputFormat(strings.ToLower(outputFormat)))
	if err := formatter.Write(table, os.Stdout); err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	return nil
}

// MetaCmd represents the meta command
type MetaCmd struct {
	Input string `arg:"" help:"IFX file to read" type:"path"`
}

func (m *MetaCmd) Run(ctx *Context) error {
	config, err := ifx.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	table, err := readWithConfig(m.Input, config)
	if err != nil {
		return err
	}
	defer table.Release()

	annotations := ifx.Annotations(table)

	keys := make([]string, 0, len(annotations))
	for key := range annotations {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("%s=%s\n", key, annotations[key])
	}

	if ctx.Verbose {
		color.Green("%d metadata entries", len(annotations))
	}

	return nil
}

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Files []string `arg:"" help:"IFX files to check" type:"path"`
}

func (v *ValidateCmd) Run(ctx *Context) error {
	config, err := ifx.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	failed := 0

	for _, file := range v.Files {
		table, err := readWithConfig(file, config)
		if err != nil {
			failed++

			if !ctx.Quiet {
				color.Red("%s: %v", file, err)
			}

			continue
		}

		if ctx.Verbose {
			color.Blue("%s: %d columns, %d rows", file, table.NumCols(), table.NumRows())
		}

		table.Release()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(v.Files))
	}

	if !ctx.Quiet {
		color.Green("%d file(s) OK", len(v.Files))
	}

	return nil
}

// ExportCmd represents the export command
type ExportCmd struct {
	Input  string `arg:"" help:"IFX file to read" type:"path"`
	Output string `short:"o" help:"SQLite database path (defaults to export.path from config)" type:"path"`
	Table  string `help:"Destination table name (defaults to export.table from config)"`
}

func (e *ExportCmd) Run(ctx *Context) error {
	config, err := ifx.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	output := e.Output
	if output == "" {
		output = config.Export.Path
	}

	tableName := e.Table
	if tableName == "" {
		tableName = config.Export.Table
	}

	table, err := readWithConfig(e.Input, config)
	if err != nil {
		return err
	}
	defer table.Release()

	db, err := sql.Open("sqlite3", output)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	execCtx := context.Background()

	if err := db.PingContext(execCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := export.ToSQLite(execCtx, db, tableName, table); err != nil {
		return err
	}

	if !ctx.Quiet {
		color.Green("Exported %d rows to %s (table %s)", table.NumRows(), output, tableName)
	}

	return nil
}

// readWithConfig reads an IFX file honoring the data-section settings
// from the configuration.
func readWithConfig(path string, config *ifx.Config) (arrow.Table, error) {
	opts := []ifx.ReadOption{ifx.CommentPrefix(config.Data.CommentPrefix)}
	if config.Data.RequireRows {
		opts = append(opts, ifx.RequireRows())
	}

	return ifx.ReadFile(path, opts...)
}
