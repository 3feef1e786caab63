// internal/store/scores/postgres.go
package scores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"jobseeker-scoring/internal/models"
)

// Schema creates the score tables. History is ordered by seq, not by
// calculated_at, so entries with equal timestamps keep insertion order.
const Schema = `CREATE TABLE IF NOT EXISTS jobseeker_scores (
	user_id         TEXT PRIMARY KEY,
	total_score     NUMERIC(4,1) NOT NULL,
	tier            TEXT NOT NULL,
	breakdown       JSONB NOT NULL,
	missing_items   JSONB NOT NULL,
	recommendations JSONB NOT NULL,
	last_calculated TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS jobseeker_score_history (
	seq           BIGSERIAL PRIMARY KEY,
	id            TEXT NOT NULL,
	user_id       TEXT NOT NULL REFERENCES jobseeker_scores(user_id) ON DELETE CASCADE,
	score         NUMERIC(4,1) NOT NULL,
	calculated_at TIMESTAMPTZ NOT NULL,
	changes       JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS jobseeker_score_history_user_seq ON jobseeker_score_history (user_id, seq);`

const (
	selectScore = `SELECT total_score, tier, breakdown, missing_items, recommendations, last_calculated
		FROM jobseeker_scores WHERE user_id = $1`

	selectHistory = `SELECT id, score, calculated_at, changes
		FROM jobseeker_score_history WHERE user_id = $1 ORDER BY seq`

	upsertScore = `INSERT INTO jobseeker_scores
		(user_id, total_score, tier, breakdown, missing_items, recommendations, last_calculated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			total_score = EXCLUDED.total_score,
			tier = EXCLUDED.tier,
			breakdown = EXCLUDED.breakdown,
			missing_items = EXCLUDED.missing_items,
			recommendations = EXCLUDED.recommendations,
			last_calculated = EXCLUDED.last_calculated`

	insertHistory = `INSERT INTO jobseeker_score_history (id, user_id, score, calculated_at, changes)
		VALUES ($1, $2, $3, $4, $5)`

	trimHistorySQL = `DELETE FROM jobseeker_score_history
		WHERE user_id = $1 AND seq NOT IN (
			SELECT seq FROM jobseeker_score_history WHERE user_id = $1 ORDER BY seq DESC LIMIT $2
		)`
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the score tables when they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate score tables: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (*models.ScoreRecord, error) {
	rec := &models.ScoreRecord{UserID: userID}
	var (
		tier                     string
		breakdown, missing, recs []byte
		lastCalculated           sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, selectScore, userID).Scan(
		&rec.TotalScore, &tier, &breakdown, &missing, &recs, &lastCalculated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query score of user %s: %w", userID, err)
	}

	rec.Tier = models.Tier(tier)
	if lastCalculated.Valid {
		t := lastCalculated.Time
		rec.LastCalculated = &t
	}
	if err := json.Unmarshal(breakdown, &rec.Breakdown); err != nil {
		return nil, fmt.Errorf("decode breakdown of user %s: %w", userID, err)
	}
	if err := json.Unmarshal(missing, &rec.MissingItems); err != nil {
		return nil, fmt.Errorf("decode missing items of user %s: %w", userID, err)
	}
	if err := json.Unmarshal(recs, &rec.Recommendations); err != nil {
		return nil, fmt.Errorf("decode recommendations of user %s: %w", userID, err)
	}

	history, err := s.history(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec.History = history
	return rec, nil
}

func (s *PostgresStore) history(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectHistory, userID)
	if err != nil {
		return nil, fmt.Errorf("query score history of user %s: %w", userID, err)
	}
	defer rows.Close()

	var out []models.HistoryEntry
	for rows.Next() {
		var (
			h       models.HistoryEntry
			changes []byte
		)
		if err := rows.Scan(&h.ID, &h.Score, &h.CalculatedAt, &changes); err != nil {
			return nil, fmt.Errorf("scan score history: %w", err)
		}
		if err := json.Unmarshal(changes, &h.Changes); err != nil {
			return nil, fmt.Errorf("decode history changes: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Save upserts the record, inserts the history entry and trims history in one
// transaction.
func (s *PostgresStore) Save(ctx context.Context, userID string, record *models.ScoreRecord, entry models.HistoryEntry, limit int) (err error) {
	breakdown, _ := json.Marshal(record.Breakdown)
	missing, _ := json.Marshal(nonNil(record.MissingItems))
	recs, _ := json.Marshal(nonNil(record.Recommendations))
	changes, _ := json.Marshal(nonNil(entry.Changes))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin score transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, upsertScore,
		userID, record.TotalScore, string(record.Tier), breakdown, missing, recs, record.LastCalculated,
	); err != nil {
		return fmt.Errorf("upsert score of user %s: %w", userID, err)
	}

	if _, err = tx.ExecContext(ctx, insertHistory,
		entry.ID, userID, entry.Score, entry.CalculatedAt, changes,
	); err != nil {
		return fmt.Errorf("insert score history of user %s: %w", userID, err)
	}

	if limit > 0 {
		if _, err = tx.ExecContext(ctx, trimHistorySQL, userID, limit); err != nil {
			return fmt.Errorf("trim score history of user %s: %w", userID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit score of user %s: %w", userID, err)
	}
	return nil
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
