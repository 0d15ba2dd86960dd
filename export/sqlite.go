// Package export writes parsed IFX tables into SQLite databases.
package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/shibukawa/ifx"
)

// ErrNoColumns is returned when the table has no columns to export.
var ErrNoColumns = errors.New("table has no columns to export")

// ToSQLite creates a table named name in db matching t's schema (REAL for
// numeric columns, TEXT otherwise) and inserts every row inside a single
// transaction. The transaction rolls back on any failure.
func ToSQLite(ctx context.Context, db *sql.DB, name string, t arrow.Table) error {
	columns := ifx.ColumnNames(t)
	if len(columns) == 0 {
		return ErrNoColumns
	}

	defs := make([]string, len(columns))
	for i, field := range t.Schema().Fields() {
		defs[i] = quoteIdent(field.Name) + " " + sqliteType(field.Type)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createStmt := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insertStmt := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(name), placeholders)

	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range ifx.Rows(t) {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// sqliteType maps an arrow column type to a SQLite column type.
func sqliteType(dt arrow.DataType) string {
	if dt.ID() == arrow.FLOAT64 {
		return "REAL"
	}

	return "TEXT"
}

// quoteIdent quotes a SQLite identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
