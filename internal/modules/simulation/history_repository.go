package simulation

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// RunRecord is one persisted simulation run
type RunRecord struct {
	ID          string   `json:"id"`
	CreatedAt   string   `json:"created_at"` // RFC3339
	Years       int      `json:"years"`
	TargetGoal  *float64 `json:"target_goal,omitempty"`
	TrialCount  int      `json:"trial_count"`
	Seed        int64    `json:"seed"`
	RequestJSON string   `json:"request"`
	ResultJSON  string   `json:"result"`
}

// HistoryRepository stores completed runs. Persistence sits outside the
// engine: a storage failure is logged and reported, but never affects the
// simulation result itself.
type HistoryRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewHistoryRepository creates a new run history repository
func NewHistoryRepository(db *sql.DB, log zerolog.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:  db,
		log: log.With().Str("repo", "simulation_history").Logger(),
	}
}

// Save inserts a completed run
func (r *HistoryRepository) Save(rec RunRecord) error {
	query := `
		INSERT INTO simulation_runs
		(id, created_at, years, target_goal, trial_count, seed, request_json, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		rec.ID,
		rec.CreatedAt,
		rec.Years,
		nullFloat64Ptr(rec.TargetGoal),
		rec.TrialCount,
		rec.Seed,
		rec.RequestJSON,
		rec.ResultJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save simulation run: %w", err)
	}

	r.log.Debug().Str("id", rec.ID).Msg("Simulation run saved")
	return nil
}

// List returns the most recent runs, newest first
func (r *HistoryRepository) List(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, created_at, years, target_goal, trial_count, seed, request_json, result_json
		FROM simulation_runs
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulation runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRunRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Get returns one run by id, or sql.ErrNoRows if it does not exist
func (r *HistoryRepository) Get(id string) (*RunRecord, error) {
	query := `
		SELECT id, created_at, years, target_goal, trial_count, seed, request_json, result_json
		FROM simulation_runs
		WHERE id = ?
	`

	row := r.db.QueryRow(query, id)
	rec, err := scanRunRecord(row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteOlderThan removes runs created more than the given number of days
// ago and returns how many were deleted
func (r *HistoryRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format(time.RFC3339)

	result, err := r.db.Exec(`DELETE FROM simulation_runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune simulation runs: %w", err)
	}

	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRunRecord(row rowScanner) (RunRecord, error) {
	var rec RunRecord
	var target sql.NullFloat64

	err := row.Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.Years,
		&target,
		&rec.TrialCount,
		&rec.Seed,
		&rec.RequestJSON,
		&rec.ResultJSON,
	)
	if err != nil {
		return RunRecord{}, err
	}

	if target.Valid {
		rec.TargetGoal = &target.Float64
	}
	return rec, nil
}

func nullFloat64Ptr(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
