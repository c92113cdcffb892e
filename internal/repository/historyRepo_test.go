package repository

import (
	"context"
	stdsql "database/sql"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type mockRow struct{ scan func(dest ...any) error }

func (r mockRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeRows implements pgx.Rows minimally for our tests.
type fakeRows struct {
	scans []func(dest ...any) error
	idx   int
	err   error
}

func (r *fakeRows) Next() bool {
	if r.idx < len(r.scans) {
		r.idx++
		return true
	}
	return false
}
func (r *fakeRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.scans) {
		return stdsql.ErrNoRows
	}
	return r.scans[r.idx-1](dest...)
}
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) Close()                                       {}
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

// mockPool dispatches by query string so one mock can serve the stats
// aggregation, which issues several different queries.
type mockPool struct {
	execSQL  string
	execArgs []interface{}
	execErr  error
	rowFor   map[string]pgx.Row
	rowsFor  map[string]pgx.Rows
}

func (m *mockPool) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	m.execSQL = sql
	m.execArgs = args
	if m.execErr != nil {
		return pgconn.NewCommandTag(""), m.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}
func (m *mockPool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	if rows, ok := m.rowsFor[sql]; ok {
		return rows, nil
	}
	return &fakeRows{}, nil
}
func (m *mockPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	if row, ok := m.rowFor[sql]; ok {
		return row
	}
	return mockRow{scan: func(dest ...any) error { return stdsql.ErrNoRows }}
}

func TestPostgresHistoryRepo_SaveDetection_Args(t *testing.T) {
	mp := &mockPool{}
	repo := &PostgresHistoryRepo{pool: mp}
	now := time.Now().UTC()
	d := &DetectionEntity{
		ID: "id1", Signature: "latin:b1:w4:00ff", TextSample: "hello there world now",
		TextLength: 21, Language: "eng", Confidence: 0.92, Method: "glotlid_high_confidence",
		Sentiment: "neutral", Toxicity: 0, IsProfane: false,
		Details: map[string]interface{}{"latin_pct": 100.0}, CreatedAt: now,
	}
	if err := repo.SaveDetection(context.Background(), d); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(mp.execArgs) != 12 {
		t.Fatalf("expected 12 args, got %d", len(mp.execArgs))
	}
	if mp.execArgs[0] != "id1" || mp.execArgs[1] != "latin:b1:w4:00ff" {
		t.Fatalf("unexpected args prefix: %v", mp.execArgs[:2])
	}
	if !strings.Contains(mp.execSQL, "ON CONFLICT (signature)") {
		t.Fatalf("detection save must upsert by signature")
	}
}

func TestPostgresHistoryRepo_SaveDetection_TruncatesSample(t *testing.T) {
	mp := &mockPool{}
	repo := &PostgresHistoryRepo{pool: mp}
	long := strings.Repeat("नमस्ते ", 100)
	d := &DetectionEntity{ID: "id2", Signature: "s", TextSample: long, Language: "hin"}
	if err := repo.SaveDetection(context.Background(), d); err != nil {
		t.Fatalf("save: %v", err)
	}
	sample := mp.execArgs[2].(string)
	if got := len([]rune(sample)); got > sampleRunes {
		t.Fatalf("sample not truncated: %d runes", got)
	}
}

func TestPostgresHistoryRepo_SaveFeedback_Args(t *testing.T) {
	mp := &mockPool{}
	repo := &PostgresHistoryRepo{pool: mp}
	f := &FeedbackEntity{
		ID: "fb1", TextSample: "mi khup khush ahe", DetectedLanguage: "hin_romanized",
		CorrectLanguage: "mar_romanized", Confidence: 0.7, Method: "romanized_pattern",
	}
	if err := repo.SaveFeedback(context.Background(), f); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(mp.execArgs) != 8 {
		t.Fatalf("expected 8 args, got %d", len(mp.execArgs))
	}
	if mp.execArgs[2] != "hin_romanized" || mp.execArgs[3] != "mar_romanized" {
		t.Fatalf("language args wrong: %v", mp.execArgs[2:4])
	}
	if mp.execArgs[7].(time.Time).IsZero() {
		t.Fatalf("zero created_at must be filled in")
	}
}

func TestPostgresHistoryRepo_RecentFeedback(t *testing.T) {
	now := time.Now().UTC()
	row1 := func(dest ...any) error {
		*(dest[0].(*string)) = "fb1"
		*(dest[1].(*string)) = "sample one"
		*(dest[2].(*string)) = "eng"
		*(dest[3].(*string)) = "hin_mixed"
		*(dest[4].(*stdsql.NullFloat64)) = stdsql.NullFloat64{Float64: 0.8, Valid: true}
		*(dest[5].(*stdsql.NullString)) = stdsql.NullString{String: "latin_default_english", Valid: true}
		*(dest[6].(*stdsql.NullString)) = stdsql.NullString{String: "missed hinglish", Valid: true}
		*(dest[7].(*time.Time)) = now
		return nil
	}
	row2 := func(dest ...any) error {
		*(dest[0].(*string)) = "fb2"
		*(dest[1].(*string)) = "sample two"
		*(dest[2].(*string)) = "tam"
		*(dest[3].(*string)) = "tam"
		*(dest[4].(*stdsql.NullFloat64)) = stdsql.NullFloat64{Valid: false}
		*(dest[5].(*stdsql.NullString)) = stdsql.NullString{Valid: false}
		*(dest[6].(*stdsql.NullString)) = stdsql.NullString{Valid: false}
		*(dest[7].(*time.Time)) = now
		return nil
	}
	mp := &mockPool{rowsFor: map[string]pgx.Rows{
		selectRecentFeedback: &fakeRows{scans: []func(dest ...any) error{row1, row2}},
	}}
	repo := &PostgresHistoryRepo{pool: mp}

	got, err := repo.RecentFeedback(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if got[0].CorrectLanguage != "hin_mixed" || got[0].Comment != "missed hinglish" {
		t.Fatalf("bad first row: %+v", got[0])
	}
	if got[1].Confidence != 0 || got[1].Method != "" {
		t.Fatalf("nulls not handled: %+v", got[1])
	}
}

func TestPostgresHistoryRepo_Stats(t *testing.T) {
	mp := &mockPool{
		rowFor: map[string]pgx.Row{
			countDetections: mockRow{scan: func(dest ...any) error {
				*(dest[0].(*int64)) = 42
				return nil
			}},
			countFeedback: mockRow{scan: func(dest ...any) error {
				*(dest[0].(*int64)) = 10
				*(dest[1].(*int64)) = 3
				return nil
			}},
		},
		rowsFor: map[string]pgx.Rows{
			groupFeedbackByLanguage: &fakeRows{scans: []func(dest ...any) error{
				func(dest ...any) error {
					*(dest[0].(*string)) = "hin"
					*(dest[1].(*int64)) = 6
					return nil
				},
				func(dest ...any) error {
					*(dest[0].(*string)) = "mar"
					*(dest[1].(*int64)) = 4
					return nil
				},
			}},
			groupDetectionsByMethod: &fakeRows{scans: []func(dest ...any) error{
				func(dest ...any) error {
					*(dest[0].(*string)) = "glotlid_high_confidence"
					*(dest[1].(*int64)) = 30
					return nil
				},
			}},
		},
	}
	repo := &PostgresHistoryRepo{pool: mp}

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalDetections != 42 || stats.TotalFeedback != 10 || stats.Corrections != 3 {
		t.Fatalf("counts wrong: %+v", stats)
	}
	if stats.AccuracyEstimate < 0.69 || stats.AccuracyEstimate > 0.71 {
		t.Fatalf("accuracy: %v", stats.AccuracyEstimate)
	}
	if stats.FeedbackByLanguage["hin"] != 6 || stats.DetectionsByMethod["glotlid_high_confidence"] != 30 {
		t.Fatalf("groups wrong: %+v", stats)
	}
}
