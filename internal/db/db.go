package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/chris/mapdate/internal/db/migrations"
	"github.com/chris/mapdate/internal/timeaxis"
	"github.com/chris/mapdate/pkg/models"
)

const defaultDBPath = "~/.local/share/mapdate/layers.db"

var (
	// ErrNotInitialized is returned by New when the schema has not been created
	ErrNotInitialized = errors.New("database not initialized, run: mapdate init-db")

	// ErrLayerNotFound is returned when an id matches no layer
	ErrLayerNotFound = errors.New("layer not found")

	// ErrInvalidExtent is returned for a layer whose end precedes its start
	ErrInvalidExtent = errors.New("layer ends before it starts")
)

// DB wraps the SQLite layer catalog
type DB struct {
	conn *sql.DB
	path string
}

// Options configures database connection behavior
type Options struct {
	// SkipSchemaCheck opens the database without verifying schema exists.
	// Use this for init-db command which creates the schema.
	SkipSchemaCheck bool
}

// New opens the catalog, upgrading an older schema in place
func New(dbPath string) (*DB, error) {
	return NewWithOptions(dbPath, Options{})
}

// ResolvePath expands "~" and maps "" to $XDG_DATA_HOME/mapdate/layers.db
func ResolvePath(dbPath string) (string, error) {
	if dbPath == "" || dbPath == defaultDBPath {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get user home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".local/share")
		}
		return filepath.Join(dataDir, "mapdate/layers.db"), nil
	}
	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, dbPath[1:]), nil
	}
	return dbPath, nil
}

// NewWithOptions creates a new database connection with configurable options
func NewWithOptions(dbPath string, opts Options) (*DB, error) {
	dbPath, err := ResolvePath(dbPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// busy timeout first, before anything that might need a write lock
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if !opts.SkipSchemaCheck {
		version, err := migrations.Version(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		if version == 0 {
			conn.Close()
			return nil, ErrNotInitialized
		}
		if version < migrations.Latest() {
			if _, err := migrations.Migrate(conn); err != nil {
				conn.Close()
				return nil, err
			}
		}
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// NewForTesting creates a new database with schema initialized.
// This is a convenience function for tests.
func NewForTesting(dbPath string) (*DB, error) {
	db, err := NewWithOptions(dbPath, Options{SkipSchemaCheck: true})
	if err != nil {
		return nil, err
	}

	if _, err := db.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitSchema runs pending migrations.
// Returns true if anything was applied, false if the schema was current.
func (db *DB) InitSchema() (bool, error) {
	applied, err := migrations.Migrate(db.conn)
	if err != nil {
		return false, err
	}
	return applied > 0, nil
}

// SchemaVersion reports the catalog's user_version
func (db *DB) SchemaVersion() (int, error) {
	return migrations.Version(db.conn)
}

// layerSelectColumns is the common SELECT clause for layer queries
const layerSelectColumns = `id, name, source, start_date, end_date, created_at`

// scanLayer scans a row into a Layer (used with layerSelectColumns)
func scanLayer(scanner interface{ Scan(...any) error }) (*models.Layer, error) {
	var (
		l          models.Layer
		start, end sql.NullString
	)
	if err := scanner.Scan(&l.ID, &l.Name, &l.Source, &start, &end, &l.CreatedAt); err != nil {
		return nil, err
	}

	d, err := timeaxis.ParseDate(start.String)
	if err != nil {
		return nil, fmt.Errorf("layer %d: %w", l.ID, err)
	}
	l.StartDate = d

	if end.Valid {
		d, err := timeaxis.ParseDate(end.String)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", l.ID, err)
		}
		l.EndDate = &d
	}
	return &l, nil
}

func (db *DB) queryLayers(query string, args ...any) ([]models.Layer, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var layers []models.Layer
	for rows.Next() {
		l, err := scanLayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan layer: %w", err)
		}
		layers = append(layers, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating layers: %w", err)
	}
	return layers, nil
}

// InsertLayer stores l and returns its id
func (db *DB) InsertLayer(l *models.Layer) (int64, error) {
	var end any
	if l.EndDate != nil {
		if l.EndDate.Before(l.StartDate) {
			return 0, fmt.Errorf("%w: %s", ErrInvalidExtent, l.Extent())
		}
		end = l.EndDate.String()
	}

	result, err := db.conn.Exec(`
		INSERT INTO layers (name, source, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		l.Name,
		l.Source,
		l.StartDate.String(),
		end,
		l.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert layer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	l.ID = id
	return id, nil
}

// GetLayer retrieves a layer by id
func (db *DB) GetLayer(id int64) (*models.Layer, error) {
	row := db.conn.QueryRow("SELECT "+layerSelectColumns+" FROM layers WHERE id = ?", id)
	l, err := scanLayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrLayerNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get layer: %w", err)
	}
	return l, nil
}

// LayersOn returns the layers whose extent includes d, ordered by name
func (db *DB) LayersOn(d timeaxis.Date) ([]models.Layer, error) {
	day := d.String()
	layers, err := db.queryLayers(`
		SELECT `+layerSelectColumns+` FROM layers
		WHERE start_date <= ? AND (end_date IS NULL OR end_date >= ?)
		ORDER BY name ASC`,
		day, day,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get layers on %s: %w", day, err)
	}
	return layers, nil
}

// ListLayers returns every layer ordered by start date, then name
func (db *DB) ListLayers() ([]models.Layer, error) {
	layers, err := db.queryLayers(`
		SELECT ` + layerSelectColumns + ` FROM layers
		ORDER BY start_date ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list layers: %w", err)
	}
	return layers, nil
}

// DeleteLayer removes a layer by id
func (db *DB) DeleteLayer(id int64) error {
	result, err := db.conn.Exec("DELETE FROM layers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete layer: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete layer: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrLayerNotFound, id)
	}
	return nil
}

// CountLayers returns the total number of layers in the catalog
func (db *DB) CountLayers() (int, error) {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM layers").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count layers: %w", err)
	}
	return count, nil
}

// TableExists checks if the layers table exists
func (db *DB) TableExists() (bool, error) {
	var name string
	err := db.conn.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='layers'",
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return true, nil
}
