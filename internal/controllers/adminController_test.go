package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/sarveshkp/bhashik/internal/detect"
	"github.com/sarveshkp/bhashik/internal/repository"
)

type stubHistory struct {
	detections []*repository.DetectionEntity
	feedback   []*repository.FeedbackEntity
	stats      *repository.LearningStats
}

func (s *stubHistory) SaveDetection(ctx context.Context, d *repository.DetectionEntity) error {
	s.detections = append(s.detections, d)
	return nil
}
func (s *stubHistory) SaveFeedback(ctx context.Context, f *repository.FeedbackEntity) error {
	s.feedback = append(s.feedback, f)
	return nil
}
func (s *stubHistory) RecentFeedback(ctx context.Context, limit, offset int) ([]*repository.FeedbackEntity, error) {
	return s.feedback, nil
}
func (s *stubHistory) Stats(ctx context.Context) (*repository.LearningStats, error) {
	if s.stats != nil {
		return s.stats, nil
	}
	return &repository.LearningStats{
		FeedbackByLanguage: map[string]int64{},
		DetectionsByMethod: map[string]int64{},
	}, nil
}

func newAdminRouter(t *testing.T, cache *repository.DetectionCache, history repository.HistoryRepository) (*gin.Engine, *detect.Detector) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	detector := detect.New(detect.DefaultConfig())
	ctrl := NewAdminController(detector, cache, history, logrus.NewEntry(logrus.New()))

	router := gin.Default()
	router.POST("/feedback", ctrl.SubmitFeedback)
	router.GET("/learning/stats", ctrl.LearningStats)
	router.PATCH("/config/detection", ctrl.UpdateDetectionConfig)
	router.GET("/config/detection", ctrl.GetDetectionConfig)
	router.GET("/cache/stats", ctrl.CacheStats)
	router.DELETE("/cache/clear", ctrl.CacheClear)
	return router, detector
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitFeedback_NormalizesLanguages(t *testing.T) {
	history := &stubHistory{}
	router, _ := newAdminRouter(t, nil, history)

	w := doJSON(router, "POST", "/feedback", FeedbackInput{
		Text:             "yeh kya hai",
		DetectedLanguage: "en",
		CorrectLanguage:  "hi",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, history.feedback, 1)
	assert.Equal(t, "eng", history.feedback[0].DetectedLanguage)
	assert.Equal(t, "hin", history.feedback[0].CorrectLanguage)
	assert.NotEmpty(t, history.feedback[0].ID)
}

func TestSubmitFeedback_NoStore(t *testing.T) {
	router, _ := newAdminRouter(t, nil, nil)
	w := doJSON(router, "POST", "/feedback", FeedbackInput{
		Text: "x", DetectedLanguage: "eng", CorrectLanguage: "hin",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSubmitFeedback_MissingCorrection(t *testing.T) {
	router, _ := newAdminRouter(t, nil, &stubHistory{})
	w := doJSON(router, "POST", "/feedback", map[string]string{"text": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLearningStats_WithRecent(t *testing.T) {
	history := &stubHistory{
		stats: &repository.LearningStats{
			TotalDetections:    5,
			TotalFeedback:      2,
			Corrections:        1,
			AccuracyEstimate:   0.5,
			FeedbackByLanguage: map[string]int64{"hin": 2},
			DetectionsByMethod: map[string]int64{"glotlid_high_confidence": 5},
		},
		feedback: []*repository.FeedbackEntity{{ID: "fb1", CorrectLanguage: "hin"}},
	}
	router, _ := newAdminRouter(t, nil, history)

	w := doJSON(router, "GET", "/learning/stats?recent=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	stats := res["stats"].(map[string]interface{})
	assert.Equal(t, float64(5), stats["total_detections"])
	assert.Contains(t, res, "recent_feedback")
}

func TestUpdateDetectionConfig_UnknownKeyRejectsAll(t *testing.T) {
	router, detector := newAdminRouter(t, nil, nil)
	before := detector.Config().HighConfidence

	w := doJSON(router, "PATCH", "/config/detection", map[string]float64{
		"high_confidence_threshold": 0.85,
		"no_such_key":               1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, before, detector.Config().HighConfidence)
}

func TestUpdateDetectionConfig_Applies(t *testing.T) {
	router, detector := newAdminRouter(t, nil, nil)

	w := doJSON(router, "PATCH", "/config/detection", map[string]float64{
		"high_confidence_threshold": 0.85,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.85, detector.Config().HighConfidence)
}

func TestGetDetectionConfig(t *testing.T) {
	router, _ := newAdminRouter(t, nil, nil)
	w := doJSON(router, "GET", "/config/detection", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	keys := res["updatable_keys"].([]interface{})
	assert.NotEmpty(t, keys)
}

func TestCacheStats_NoCache(t *testing.T) {
	router, _ := newAdminRouter(t, nil, nil)
	w := doJSON(router, "GET", "/cache/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stats repository.CacheStats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Zero(t, stats.Keys)
}

func TestCacheClear(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := repository.NewDetectionCache(rdb, "test:", time.Minute)
	cache.Store(context.Background(), "some sample text", &repository.AnalysisRecord{Language: "eng"})

	router, _ := newAdminRouter(t, cache, nil)
	w := doJSON(router, "DELETE", "/cache/clear", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, float64(1), res["removed"])
}
