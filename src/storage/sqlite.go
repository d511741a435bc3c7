package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"trade-stats/src/logger"
	"trade-stats/src/models"

	_ "modernc.org/sqlite"
)

// SQLite batch constants
const (
	sqliteMaxVars   = 32000
	paramsPerRow    = 5
	sqliteBatchSize = sqliteMaxVars / paramsPerRow // ~6400 rows
)

// -----------------------------------------------------------------------------

type SQLiteJournal struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteJournal(cfg *models.MConfig, log *logger.Logger) (*SQLiteJournal, error) {
	return &SQLiteJournal{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteJournal) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteJournal) createTables() error {
	// The journal is append-forever, so existing rows survive restarts.
	// SQLite types: INTEGER for int64, REAL for float64, TEXT for string
	query := `
		CREATE TABLE IF NOT EXISTS observations (
			symbol TEXT,
			value REAL,
			batch_seq INTEGER,
			position INTEGER,
			received_at INTEGER
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create observations: %w", err)
	}

	query = `CREATE INDEX IF NOT EXISTS idx_observations_received
		ON observations (received_at);`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create received_at index: %w", err)
	}

	d.Logger.Info("SQLiteJournal initialized successfully (%s)", d.Config.Storage.DBPath)
	return nil
}

// -----------------------------------------------------------------------------

// SaveObservationsBulk inserts rows in chunks below the SQLite variable limit.
func (d *SQLiteJournal) SaveObservationsBulk(obs []models.MObservation) error {
	if len(obs) == 0 {
		return nil
	}

	for start := 0; start < len(obs); start += sqliteBatchSize {
		end := start + sqliteBatchSize
		if end > len(obs) {
			end = len(obs)
		}
		if err := d.insertChunk(obs[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteJournal) insertChunk(obs []models.MObservation) error {
	placeholders := make([]string, 0, len(obs))
	args := make([]interface{}, 0, len(obs)*paramsPerRow)

	for _, o := range obs {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?)")
		args = append(args, o.Symbol, o.Value, o.BatchSeq, o.Position, o.ReceivedAt)
	}

	query := fmt.Sprintf(
		"INSERT INTO observations (symbol, value, batch_seq, position, received_at) VALUES %s",
		strings.Join(placeholders, ","))

	if _, err := d.DB.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert observations: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// CleanupOldData removes rows outside the retention window.
func (d *SQLiteJournal) CleanupOldData() error {
	if d.Config.Storage.RetentionDays <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -d.Config.Storage.RetentionDays).Unix()
	res, err := d.DB.Exec("DELETE FROM observations WHERE received_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup observations: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows > 0 {
		d.Logger.Info("Cleaned up %d old journal rows", rows)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteJournal) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
