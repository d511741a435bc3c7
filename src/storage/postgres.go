package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trade-stats/src/logger"
	"trade-stats/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresJournal struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresJournal(cfg *models.MConfig, log *logger.Logger) (*PostgresJournal, error) {
	// Use the executable name for the schema so several deployments can
	// share one database.
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresJournal{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresJournal) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."observations" (
			symbol TEXT,
			value DOUBLE PRECISION,
			batch_seq BIGINT,
			position INTEGER,
			received_at BIGINT
		);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create observations: %w", err)
	}

	query = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_observations_received
		ON "%s"."observations" (received_at);`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create received_at index: %w", err)
	}

	d.Logger.Info("PostgresJournal initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresJournal) SaveObservationsBulk(obs []models.MObservation) error {
	if len(obs) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(obs))
	args := make([]interface{}, 0, len(obs)*paramsPerRow)

	for i, o := range obs {
		base := i * paramsPerRow
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, o.Symbol, o.Value, o.BatchSeq, o.Position, o.ReceivedAt)
	}

	query := fmt.Sprintf(
		`INSERT INTO "%s"."observations" (symbol, value, batch_seq, position, received_at) VALUES %s`,
		d.Schema, strings.Join(placeholders, ","))

	if _, err := d.DB.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert observations: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresJournal) CleanupOldData() error {
	if d.Config.Storage.RetentionDays <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -d.Config.Storage.RetentionDays).Unix()
	query := fmt.Sprintf(`DELETE FROM "%s"."observations" WHERE received_at < $1`, d.Schema)
	res, err := d.DB.Exec(query, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup observations: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows > 0 {
		d.Logger.Info("Cleaned up %d old journal rows", rows)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresJournal) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
