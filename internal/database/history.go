package database

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// DBFileName is the database file inside the database directory.
const DBFileName = "htrdiff.db"

// createdAtLayout is fixed-width so that text order equals time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	// ErrRunNotFound is returned when no run matches an ID.
	ErrRunNotFound = errors.New("run not found")

	// ErrAmbiguousRunID is returned when an ID prefix matches several runs.
	ErrAmbiguousRunID = errors.New("run ID prefix matches more than one run")
)

// HistoryDB stores analysis runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run analyze with --save first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (h *HistoryDB) createTables() error {
	schema := `
	-- One row per analysis run
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		reference TEXT NOT NULL,
		hypothesis TEXT NOT NULL,
		ref_hash TEXT,
		hyp_hash TEXT,
		pages INTEGER NOT NULL DEFAULT 0,
		stats_json TEXT NOT NULL,
		result_xz BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_hashes ON runs(ref_hash, hyp_hash);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// Fingerprints identify the exact input documents of a run.
type Fingerprints struct {
	Ref string
	Hyp string
}

// RunRecord is the listing view of a stored run.
type RunRecord struct {
	ID         string
	CreatedAt  time.Time
	Reference  string
	Hypothesis string
	RefHash    string
	HypHash    string
	Pages      int
	Stats      model.Stats
}

// SaveRun stores a result. The result must carry a run ID.
func (h *HistoryDB) SaveRun(ctx context.Context, result *model.Result, fp Fingerprints) error {
	if result.RunID == "" {
		return errors.New("cannot save a run without an ID")
	}

	statsJSON, err := json.Marshal(result.Stats)
	if err != nil {
		return fmt.Errorf("failed to serialize stats: %w", err)
	}
	blob, err := compressResult(result)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO runs (id, created_at, reference, hypothesis, ref_hash, hyp_hash, pages, stats_json, result_xz)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = h.db.ExecContext(ctx, query,
		result.RunID,
		result.CreatedAt.UTC().Format(createdAtLayout),
		result.Reference,
		result.Hypothesis,
		fp.Ref,
		fp.Hyp,
		result.ProcessedPages,
		string(statsJSON),
		blob,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A non-positive limit
// returns every run.
func (h *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
	SELECT id, created_at, reference, hypothesis, ref_hash, hyp_hash, pages, stats_json
	FROM runs
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?
	`
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetRecord returns the listing view of one run. id may be a unique prefix.
func (h *HistoryDB) GetRecord(ctx context.Context, id string) (RunRecord, error) {
	fullID, err := h.resolveID(ctx, id)
	if err != nil {
		return RunRecord{}, err
	}

	query := `
	SELECT id, created_at, reference, hypothesis, ref_hash, hyp_hash, pages, stats_json
	FROM runs
	WHERE id = ?
	`
	return scanRecord(h.db.QueryRowContext(ctx, query, fullID))
}

// GetRun returns the complete stored result of a run. id may be a unique prefix.
func (h *HistoryDB) GetRun(ctx context.Context, id string) (*model.Result, error) {
	fullID, err := h.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	var blob []byte
	err = h.db.QueryRowContext(ctx, `SELECT result_xz FROM runs WHERE id = ?`, fullID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return decompressResult(blob)
}

// DeleteRun removes a run. id may be a unique prefix.
func (h *HistoryDB) DeleteRun(ctx context.Context, id string) error {
	fullID, err := h.resolveID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := h.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, fullID); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// resolveID expands a run ID prefix to the full ID.
func (h *HistoryDB) resolveID(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty ID", ErrRunNotFound)
	}

	// substr avoids LIKE wildcards in user input.
	rows, err := h.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("failed to resolve run ID: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to resolve run ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to resolve run ID: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousRunID, prefix)
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one listing row.
func scanRecord(row rowScanner) (RunRecord, error) {
	var (
		rec       RunRecord
		createdAt string
		refHash   sql.NullString
		hypHash   sql.NullString
		statsJSON string
	)
	err := row.Scan(&rec.ID, &createdAt, &rec.Reference, &rec.Hypothesis, &refHash, &hypHash, &rec.Pages, &statsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, ErrRunNotFound
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to scan run: %w", err)
	}

	rec.CreatedAt = parseTimestamp(createdAt)
	rec.RefHash = refHash.String
	rec.HypHash = hypHash.String
	if err := json.Unmarshal([]byte(statsJSON), &rec.Stats); err != nil {
		return RunRecord{}, fmt.Errorf("failed to parse stats of run %s: %w", rec.ID, err)
	}
	return rec, nil
}

// compressResult serializes a result to xz-compressed JSON.
func compressResult(result *model.Result) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(result); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress result: %w", err)
	}
	return buf.Bytes(), nil
}

// decompressResult reverses compressResult.
func decompressResult(blob []byte) (*model.Result, error) {
	zr, err := xz.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed result: %w", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress result: %w", err)
	}

	result := model.NewResult()
	if err := json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("failed to parse result: %w", err)
	}
	return result, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
