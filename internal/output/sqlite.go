package output

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/rubiojr/fuelrank/pkg/api"
)

// SQLiteWriter writes the result into a fresh SQLite database file with a
// single results table.
type SQLiteWriter struct {
	log *slog.Logger
}

func (w *SQLiteWriter) Write(ctx context.Context, path string, result api.Result) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing previous output: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	if err := configureSQLitePragmas(ctx, db); err != nil {
		return err
	}
	if err := createTables(ctx, db); err != nil {
		return err
	}

	return w.insertResult(ctx, db, result)
}

func (w *SQLiteWriter) insertResult(ctx context.Context, db *sql.DB, result api.Result) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			w.logger().Error("Rollback failed", "error", err)
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (rank, fuel, latitude, longitude, price, distance)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range result.Stations {
		if _, err := stmt.ExecContext(ctx, s.Rank, result.Name, s.Latitude, s.Longitude, s.Price, s.Distance); err != nil {
			return fmt.Errorf("error inserting station ranked %d: %w", s.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	w.logger().Debug("Result written to database", "stations", len(result.Stations))
	return nil
}

func (w *SQLiteWriter) logger() *slog.Logger {
	if w.log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.log
}

func createTables(ctx context.Context, db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS results (
		rank INTEGER PRIMARY KEY,
		fuel TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		price REAL NOT NULL,
		distance REAL NOT NULL
	);
	`

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("error creating results table: %w", err)
	}
	return nil
}

// configureSQLitePragmas leaves the journal in its default mode so the
// database stays a single file.
func configureSQLitePragmas(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 10000;"); err != nil {
		return fmt.Errorf("error setting busy timeout: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA synchronous = NORMAL;"); err != nil {
		return fmt.Errorf("error setting synchronous: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA temp_store = memory;"); err != nil {
		return fmt.Errorf("error setting temp store: %w", err)
	}
	return nil
}
