package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sarveshkp/bhashik/internal/db"
)

// DetectionEntity is one persisted analysis outcome. TextSample holds at most
// sampleRunes runes of the input so the table never stores full documents.
type DetectionEntity struct {
	ID         string                 `db:"id" json:"id"`
	Signature  string                 `db:"signature" json:"signature"`
	TextSample string                 `db:"text_sample" json:"text_sample"`
	TextLength int                    `db:"text_length" json:"text_length"`
	Language   string                 `db:"language" json:"language"`
	Confidence float64                `db:"confidence" json:"confidence"`
	Method     string                 `db:"method" json:"method"`
	Sentiment  string                 `db:"sentiment,omitempty" json:"sentiment,omitempty"`
	Toxicity   float64                `db:"toxicity,omitempty" json:"toxicity,omitempty"`
	IsProfane  bool                   `db:"is_profane" json:"is_profane"`
	Details    map[string]interface{} `db:"details" json:"details"`
	CreatedAt  time.Time              `db:"created_at" json:"created_at"`
}

// FeedbackEntity is a user correction against an earlier detection.
type FeedbackEntity struct {
	ID               string    `db:"id" json:"id"`
	TextSample       string    `db:"text_sample" json:"text_sample"`
	DetectedLanguage string    `db:"detected_language" json:"detected_language"`
	CorrectLanguage  string    `db:"correct_language" json:"correct_language"`
	Confidence       float64   `db:"confidence,omitempty" json:"confidence,omitempty"`
	Method           string    `db:"method,omitempty" json:"method,omitempty"`
	Comment          string    `db:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// LearningStats aggregates the stored history for the stats endpoint.
type LearningStats struct {
	TotalDetections    int64            `json:"total_detections"`
	TotalFeedback      int64            `json:"total_feedback"`
	Corrections        int64            `json:"corrections"`
	AccuracyEstimate   float64          `json:"accuracy_estimate"`
	FeedbackByLanguage map[string]int64 `json:"feedback_by_language"`
	DetectionsByMethod map[string]int64 `json:"detections_by_method"`
}

type HistoryRepository interface {
	SaveDetection(ctx context.Context, d *DetectionEntity) error
	SaveFeedback(ctx context.Context, f *FeedbackEntity) error
	RecentFeedback(ctx context.Context, limit, offset int) ([]*FeedbackEntity, error)
	Stats(ctx context.Context) (*LearningStats, error)
}

// dbExecutor captures the subset of pool API we use, to enable testing/mocking.
type dbExecutor interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PostgresHistoryRepo struct {
	pool dbExecutor
}

func NewPostgresHistoryRepo(pool *db.TimeoutPool) *PostgresHistoryRepo {
	return &PostgresHistoryRepo{pool: pool}
}

var ErrFeedbackNotFound = errors.New("feedback not found")

const sampleRunes = 120

const upsertDetection = `
INSERT INTO detections (
  id, signature, text_sample, text_length, language, confidence,
  method, sentiment, toxicity, is_profane, details, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,
  $7,$8,$9,$10,$11,$12
)
ON CONFLICT (signature) DO UPDATE SET
  text_sample = EXCLUDED.text_sample,
  text_length = EXCLUDED.text_length,
  language = EXCLUDED.language,
  confidence = EXCLUDED.confidence,
  method = EXCLUDED.method,
  sentiment = EXCLUDED.sentiment,
  toxicity = EXCLUDED.toxicity,
  is_profane = EXCLUDED.is_profane,
  details = EXCLUDED.details,
  created_at = EXCLUDED.created_at
`

const insertFeedback = `
INSERT INTO detection_feedback (
  id, text_sample, detected_language, correct_language,
  confidence, method, comment, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`

const selectRecentFeedback = `
SELECT id, text_sample, detected_language, correct_language,
       confidence, method, comment, created_at
FROM detection_feedback
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

const countDetections = `SELECT COUNT(*) FROM detections`

const countFeedback = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE detected_language <> correct_language)
FROM detection_feedback
`

const groupFeedbackByLanguage = `
SELECT correct_language, COUNT(*)
FROM detection_feedback
GROUP BY correct_language
ORDER BY COUNT(*) DESC
`

const groupDetectionsByMethod = `
SELECT method, COUNT(*)
FROM detections
GROUP BY method
ORDER BY COUNT(*) DESC
`

func truncateSample(text string) string {
	runes := []rune(text)
	if len(runes) <= sampleRunes {
		return text
	}
	return string(runes[:sampleRunes])
}

func (r *PostgresHistoryRepo) SaveDetection(ctx context.Context, d *DetectionEntity) error {
	detailsJSON, err := json.Marshal(d.Details)
	if err != nil {
		return err
	}
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.pool.Exec(ctx, upsertDetection,
		d.ID, d.Signature, truncateSample(d.TextSample), d.TextLength,
		d.Language, d.Confidence, d.Method, d.Sentiment, d.Toxicity,
		d.IsProfane, detailsJSON, createdAt,
	)
	return err
}

func (r *PostgresHistoryRepo) SaveFeedback(ctx context.Context, f *FeedbackEntity) error {
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, insertFeedback,
		f.ID, truncateSample(f.TextSample), f.DetectedLanguage, f.CorrectLanguage,
		f.Confidence, f.Method, f.Comment, createdAt,
	)
	return err
}

func (r *PostgresHistoryRepo) RecentFeedback(ctx context.Context, limit, offset int) ([]*FeedbackEntity, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, selectRecentFeedback, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*FeedbackEntity, 0, limit)
	for rows.Next() {
		var f FeedbackEntity
		var confNF sql.NullFloat64
		var methodNS, commentNS sql.NullString

		if err := rows.Scan(
			&f.ID, &f.TextSample, &f.DetectedLanguage, &f.CorrectLanguage,
			&confNF, &methodNS, &commentNS, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		if confNF.Valid {
			f.Confidence = confNF.Float64
		}
		if methodNS.Valid {
			f.Method = methodNS.String
		}
		if commentNS.Valid {
			f.Comment = commentNS.String
		}
		out = append(out, &f)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *PostgresHistoryRepo) Stats(ctx context.Context) (*LearningStats, error) {
	stats := &LearningStats{
		FeedbackByLanguage: map[string]int64{},
		DetectionsByMethod: map[string]int64{},
	}

	if err := r.pool.QueryRow(ctx, countDetections).Scan(&stats.TotalDetections); err != nil {
		return nil, err
	}
	if err := r.pool.QueryRow(ctx, countFeedback).Scan(&stats.TotalFeedback, &stats.Corrections); err != nil {
		return nil, err
	}
	if stats.TotalFeedback > 0 {
		stats.AccuracyEstimate = 1 - float64(stats.Corrections)/float64(stats.TotalFeedback)
	}

	if err := r.scanGroups(ctx, groupFeedbackByLanguage, stats.FeedbackByLanguage); err != nil {
		return nil, err
	}
	if err := r.scanGroups(ctx, groupDetectionsByMethod, stats.DetectionsByMethod); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *PostgresHistoryRepo) scanGroups(ctx context.Context, query string, into map[string]int64) error {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key] = n
	}
	return rows.Err()
}
