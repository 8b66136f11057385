// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/keyquest/internal/logger"
	"github.com/verte-zerg/keyquest/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.Get().Warn("failed to close database after migration error", "path", path, "error", cerr)
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			game_id TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			reason TEXT NOT NULL,
			score INTEGER NOT NULL,
			speed INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			stars INTEGER NOT NULL,
			words_completed INTEGER NOT NULL,
			won INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS result_letter_stats (
			result_id INTEGER NOT NULL,
			letter TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			PRIMARY KEY (result_id, letter)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_ended_at ON results(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SubmitResult stores a finished session and its per-letter stats.
func (s *Store) SubmitResult(ctx context.Context, result model.Result) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				logger.Get().Warn("failed to rollback result insert", "session_id", result.SessionID, "error", rerr)
			}
		}
	}()

	won := 0
	if result.Won {
		won = 1
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO results (session_id, mode, game_id, started_at, ended_at, reason, score, speed, accuracy, stars, words_completed, won, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.SessionID,
		result.Mode.String(),
		result.GameID,
		result.StartedAt.UnixMilli(),
		result.EndedAt.UnixMilli(),
		result.Reason,
		result.Score,
		result.Speed,
		result.Accuracy,
		result.Stars,
		result.WordsCompleted,
		won,
		result.DurationMs,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if len(result.Letters) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO result_letter_stats (result_id, letter, correct, incorrect) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				logger.Get().Warn("failed to close letter stats statement", "error", cerr)
			}
		}()
		for _, ls := range result.Letters {
			if _, err := stmt.ExecContext(ctx, id, ls.Letter, ls.Correct, ls.Incorrect); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// ListResults returns stored results filtered by the history config, oldest first.
func (s *Store) ListResults(ctx context.Context, cfg model.HistoryConfig) ([]model.ResultAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, cfg.Mode)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UnixMilli())
	}
	query := fmt.Sprintf(`SELECT id, mode, game_id, ended_at, score, speed, accuracy, duration_ms
		FROM results
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			logger.Get().Warn("failed to close result rows", "error", cerr)
		}
	}()

	var results []model.ResultAggregate
	for rows.Next() {
		var agg model.ResultAggregate
		var mode string
		var endedAt int64
		if err := rows.Scan(&agg.ID, &mode, &agg.GameID, &endedAt, &agg.Score, &agg.Speed, &agg.Accuracy, &agg.DurationMs); err != nil {
			return nil, err
		}
		agg.Mode, err = model.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = time.UnixMilli(endedAt).UTC()
		results = append(results, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListLetterAggregates sums per-letter stats across the given results.
func (s *Store) ListLetterAggregates(ctx context.Context, resultIDs []int64) ([]model.LetterAggregate, error) {
	if len(resultIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(resultIDs))
	args := make([]any, len(resultIDs))
	for i, id := range resultIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT letter, SUM(correct) AS correct, SUM(incorrect) AS incorrect
		FROM result_letter_stats
		WHERE result_id IN (%s)
		GROUP BY letter`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			logger.Get().Warn("failed to close letter stats rows", "error", cerr)
		}
	}()

	var result []model.LetterAggregate
	for rows.Next() {
		var agg model.LetterAggregate
		if err := rows.Scan(&agg.Letter, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
