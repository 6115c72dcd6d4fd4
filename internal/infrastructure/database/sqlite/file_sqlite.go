// Package sqlite
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/portbound/go-filedb/internal/infrastructure/database"
	"github.com/portbound/go-filedb/internal/models"
)

//go:embed schema.sql
var schema string

const DriverName string = "sqlite3"

const (
	insertFile = `INSERT INTO files (id, name, content_type, data) VALUES (?, ?, ?, ?)`
	selectFile = `SELECT id, name, content_type, data FROM files WHERE id = ?`
	selectAll  = `SELECT id, name, content_type, data FROM files`
	updateFile = `UPDATE files SET name = ?, content_type = ?, data = ? WHERE id = ?`
	deleteFile = `DELETE FROM files WHERE id = ?`
)

// FileDB stores file records in a single SQLite table, payload
// included. It assigns each record its UUID on first save.
type FileDB struct {
	db *sql.DB
}

// New wraps an existing connection. The schema is assumed to be in
// place; Open is the normal entry point.
func New(db *sql.DB) *FileDB {
	return &FileDB{db: db}
}

func Open(connStr string) (*FileDB, error) {
	conn, err := database.NewDBConnection(&database.DBConnectionDetails{
		DriverName: DriverName,
		ConnStr:    connStr,
		Schema:     schema,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: failed to create new sqlite connection: %w", err)
	}
	return &FileDB{db: conn.DB}, nil
}

func (fdb *FileDB) Close() error {
	return fdb.db.Close()
}

func (fdb *FileDB) Save(ctx context.Context, file *models.File) (*models.File, error) {
	saved := *file
	saved.ID = uuid.New()

	if _, err := fdb.db.ExecContext(ctx, insertFile, saved.ID.String(), saved.Name, saved.Type, saved.Data); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (fdb *FileDB) Get(ctx context.Context, id uuid.UUID) (*models.File, error) {
	row := fdb.db.QueryRowContext(ctx, selectFile, id.String())
	return scanFile(row.Scan)
}

func (fdb *FileDB) GetAll(ctx context.Context) ([]*models.File, error) {
	rows, err := fdb.db.QueryContext(ctx, selectAll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*models.File
	for rows.Next() {
		file, err := scanFile(rows.Scan)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

// Update reports sql.ErrNoRows when no row matched the id, so callers
// can distinguish a vanished record from a write failure.
func (fdb *FileDB) Update(ctx context.Context, file *models.File) error {
	res, err := fdb.db.ExecContext(ctx, updateFile, file.Name, file.Type, file.Data, file.ID.String())
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (fdb *FileDB) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := fdb.db.ExecContext(ctx, deleteFile, id.String())
	return err
}

func scanFile(scan func(dest ...any) error) (*models.File, error) {
	var rawID string
	var file models.File

	if err := scan(&rawID, &file.Name, &file.Type, &file.Data); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("sqlite.scanFile: failed to parse stored id %q: %w", rawID, err)
	}
	file.ID = id
	return &file, nil
}
