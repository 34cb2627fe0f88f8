package scheduler

import (
	"github.com/rs/zerolog"
)

// historyPruner deletes persisted simulation runs older than a retention window.
type historyPruner interface {
	DeleteOlderThan(days int) (int64, error)
}

// HistoryRetentionJob prunes old simulation runs from the database
type HistoryRetentionJob struct {
	pruner        historyPruner
	retentionDays int
	log           zerolog.Logger
}

// NewHistoryRetentionJob creates a new retention job
func NewHistoryRetentionJob(pruner historyPruner, retentionDays int, log zerolog.Logger) *HistoryRetentionJob {
	return &HistoryRetentionJob{
		pruner:        pruner,
		retentionDays: retentionDays,
		log:           log.With().Str("job", "history_retention").Logger(),
	}
}

// Name returns the job name
func (j *HistoryRetentionJob) Name() string {
	return "history_retention"
}

// Run deletes runs older than the configured retention window
func (j *HistoryRetentionJob) Run() error {
	deleted, err := j.pruner.DeleteOlderThan(j.retentionDays)
	if err != nil {
		return err
	}

	if deleted > 0 {
		j.log.Info().
			Int64("deleted", deleted).
			Int("retention_days", j.retentionDays).
			Msg("Pruned old simulation runs")
	}

	return nil
}
