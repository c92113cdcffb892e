package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/redis/go-redis/v9"

	"github.com/sarveshkp/bhashik/internal/analyze"
	"github.com/sarveshkp/bhashik/internal/detect"
)

// AnalysisRecord is the cached shape of one full analysis. It carries only
// what the analyze endpoint returns, never the input text itself.
type AnalysisRecord struct {
	Language   string                   `json:"language"`
	Confidence float64                  `json:"confidence"`
	Method     string                   `json:"method"`
	Sentiment  *analyze.SentimentResult `json:"sentiment,omitempty"`
	Toxicity   map[string]float64       `json:"toxicity,omitempty"`
	IsProfane  bool                     `json:"is_profane"`
	CachedAt   time.Time                `json:"cached_at"`
}

// CacheStats reports counters since process start plus the current key count.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Keys   int64 `json:"keys"`
}

// DetectionCache stores analysis results in Redis keyed by a structural
// signature of the input, not the raw text. A nil client degrades to a
// pass-through that always misses.
type DetectionCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

func NewDetectionCache(rdb *redis.Client, prefix string, ttl time.Duration) *DetectionCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &DetectionCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

const signatureLeadWords = 8

// Signature builds the cache key from structural features of the text:
// dominant script, length bucket, word count and a hash of the leading
// words. Near-identical requests share a key; unrelated texts do not.
func Signature(text string) string {
	trimmed := strings.TrimSpace(text)
	words := strings.Fields(trimmed)

	lead := words
	if len(lead) > signatureLeadWords {
		lead = lead[:signatureLeadWords]
	}
	h := fnv.New64a()
	for _, w := range lead {
		_, _ = h.Write([]byte(strings.ToLower(w)))
		_, _ = h.Write([]byte{0})
	}

	comp := detect.AnalyzeComposition(trimmed)
	bucket := utf8.RuneCountInString(trimmed) / 16

	return fmt.Sprintf("%s:b%d:w%d:%016x", comp.DominantScript, bucket, len(words), h.Sum64())
}

func (c *DetectionCache) key(text string) string {
	return c.prefix + "analysis:" + Signature(text)
}

// Lookup returns the cached record for the text's signature, if any.
func (c *DetectionCache) Lookup(ctx context.Context, text string) (*AnalysisRecord, bool) {
	if c.rdb == nil {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, c.key(text)).Bytes()
	if err != nil || len(bs) == 0 {
		c.misses.Add(1)
		return nil, false
	}
	var rec AnalysisRecord
	if json.Unmarshal(bs, &rec) != nil {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return &rec, true
}

// Store caches the record under the text's signature. Best-effort; errors
// are dropped so a flaky Redis never fails a request.
func (c *DetectionCache) Store(ctx context.Context, text string, rec *AnalysisRecord) {
	if c.rdb == nil || rec == nil {
		return
	}
	if rec.CachedAt.IsZero() {
		rec.CachedAt = time.Now()
	}
	if bs, err := json.Marshal(rec); err == nil {
		_ = c.rdb.Set(ctx, c.key(text), bs, c.ttl).Err()
	}
}

// Stats returns hit/miss counters and the live key count under the prefix.
func (c *DetectionCache) Stats(ctx context.Context) CacheStats {
	stats := CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
	if c.rdb == nil {
		return stats
	}
	iter := c.rdb.Scan(ctx, 0, c.prefix+"analysis:*", 0).Iterator()
	for iter.Next(ctx) {
		stats.Keys++
	}
	return stats
}

// Clear deletes every cached analysis under the prefix and returns the
// number of removed keys.
func (c *DetectionCache) Clear(ctx context.Context) (int64, error) {
	if c.rdb == nil {
		return 0, nil
	}
	var removed int64
	iter := c.rdb.Scan(ctx, 0, c.prefix+"analysis:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err == nil {
			removed++
		}
	}
	return removed, iter.Err()
}
