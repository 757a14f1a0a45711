package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"github.com/wadjakorntonsri/resource-directory/pkg/core/domain"
	"github.com/wadjakorntonsri/resource-directory/pkg/ports"
)

// documentName is the row holding the resource collection.
const documentName = "resources"

// ErrNoDocument is returned by Load before anything has been saved.
var ErrNoDocument = errors.New("collection document not found")

var _ ports.CollectionRepository = (*SQLiteRepository)(nil)

// SQLiteRepository stores the whole collection as one JSON document row, so
// it keeps the same read-all/write-all semantics as the file backend.
type SQLiteRepository struct {
	db *sql.DB
}

// DriverName picks the database/sql driver for dbURL: remote Turso URLs use
// libsql, everything else the embedded SQLite driver.
func DriverName(dbURL string) string {
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		return "libsql"
	}
	return "sqlite"
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	db, err := sql.Open(DriverName(dbURL), dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context) (domain.Collection, error) {
	query := `SELECT document FROM collections WHERE name = ?`

	var doc string
	err := r.db.QueryRowContext(ctx, query, documentName).Scan(&doc)
	if err == sql.ErrNoRows {
		return domain.Collection{}, ErrNoDocument
	}
	if err != nil {
		return domain.Collection{}, err
	}

	var c domain.Collection
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return domain.Collection{}, fmt.Errorf("decode document: %w", err)
	}
	return c, nil
}

// Save replaces the document inside a transaction.
func (r *SQLiteRepository) Save(ctx context.Context, c domain.Collection) error {
	doc, err := c.Encode()
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO collections (name, document, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, query, documentName, string(doc), time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}
