package db

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ExportTables dumps each table in the snapshot database to a separate CSV
// file under exportDir. The directory is recreated fresh on every export.
func ExportTables(dbPath, exportDir string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_ = os.RemoveAll(exportDir)
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	for _, table := range tables {
		log.Info().Str("table", table).Msg("dumping table")
		if err := dumpTable(db, table, filepath.Join(exportDir, table+".csv")); err != nil {
			return err
		}
	}
	return nil
}

func dumpTable(db *sql.DB, table, outputPath string) error {
	// Table names cannot be bound as parameters; they come from
	// sqlite_master, not user input.
	rows, err := db.Query("SELECT * FROM " + table)
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(cols); err != nil {
		return err
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for rows.Next() {
		for i := range cols {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		record := make([]string, len(cols))
		for i, v := range values {
			if v != nil {
				record[i] = fmt.Sprintf("%v", v)
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return rows.Err()
}
