// internal/output/sqlite.go
package output

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/valpere/ProductHarvester/internal/extract"
)

// SQLiteWriter writes the dataset into a SQLite database file, one row per
// product, using the same flattened columns as the spreadsheet formats.
type SQLiteWriter struct {
	path  string
	table string
}

// NewSQLiteWriter creates a SQLite writer targeting the database at path.
func NewSQLiteWriter(path, table string) *SQLiteWriter {
	if table == "" {
		table = "products"
	}
	return &SQLiteWriter{path: path, table: table}
}

// Write persists records in a single transaction.
func (w *SQLiteWriter) Write(records []*extract.ProductRecord) error {
	db, err := sql.Open("sqlite3", w.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	columns := extract.Columns()

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = fmt.Sprintf("%q", column)
		placeholders[i] = "?"
	}

	createStmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %q (id INTEGER PRIMARY KEY AUTOINCREMENT, %s TEXT)",
		w.table, strings.Join(quoted, " TEXT, "),
	)
	if _, err := db.Exec(createStmt); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	insertStmt := fmt.Sprintf(
		"INSERT INTO %q (%s) VALUES (%s)",
		w.table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "),
	)
	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	values := make([]interface{}, len(columns))
	for _, record := range records {
		row := record.Row()
		for i, column := range columns {
			values[i] = cell(row[column])
		}
		if _, err := stmt.Exec(values...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
