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
	"github.com/sarveshkp/bhashik/internal/normalize"
	"github.com/sarveshkp/bhashik/internal/repository"
	"github.com/sarveshkp/bhashik/internal/romanize"
)

func newDetectRouter(t *testing.T, cache *repository.DetectionCache, history repository.HistoryRepository) (*gin.Engine, *detect.Detector) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	detector := detect.New(detect.DefaultConfig())
	converter := romanize.New(detector.Config())
	ctrl := NewDetectController(detector, cache, history, converter, nil,
		logrus.NewEntry(logrus.New()))

	router := gin.Default()
	router.POST("/detect", ctrl.Detect)
	router.POST("/analyze", ctrl.Analyze)
	router.POST("/sentiment", ctrl.Sentiment)
	router.POST("/toxicity", ctrl.Toxicity)
	router.POST("/profanity", ctrl.Profanity)
	router.POST("/convert", ctrl.Convert)
	router.POST("/translate", ctrl.Translate)
	return router, detector
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDetectEndpoint_MissingText(t *testing.T) {
	router, _ := newDetectRouter(t, nil, nil)
	w := postJSON(router, "/detect", map[string]string{"language": "hin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetectEndpoint_RomanizedMarathi(t *testing.T) {
	router, _ := newDetectRouter(t, nil, nil)
	w := postJSON(router, "/detect", DetectInput{Text: "Mi aaj khup khush ahe!"})
	assert.Equal(t, http.StatusOK, w.Code)

	var res detect.Result
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "mar_romanized", res.Language)
	assert.Greater(t, res.Confidence, 0.7)
}

func TestDetectEndpoint_TooLong(t *testing.T) {
	router, _ := newDetectRouter(t, nil, nil)
	long := make([]byte, 0, 50001)
	for len(long) < 50001 {
		long = append(long, 'a')
	}
	w := postJSON(router, "/detect", DetectInput{Text: string(long)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpoint_URLOnlyInput(t *testing.T) {
	router, _ := newDetectRouter(t, nil, nil)
	w := postJSON(router, "/analyze", DetectInput{Text: "https://example.com/some/path"})
	assert.Equal(t, http.StatusOK, w.Code)

	var res AnalyzeResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "unknown", res.Language)
	assert.Equal(t, "empty_text", res.Method)
	assert.False(t, res.Cached)
}

func TestAnalyzeEndpoint_CacheHit(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := repository.NewDetectionCache(rdb, "test:", time.Minute)

	router, _ := newDetectRouter(t, cache, nil)

	text := "Mi aaj khup khush ahe!"
	cleaned := normalize.CleanText(text)
	cache.Store(context.Background(), cleaned, &repository.AnalysisRecord{
		Language: "mar_romanized", Confidence: 0.79, Method: "romanized_indic_early_detection",
	})

	w := postJSON(router, "/analyze", DetectInput{Text: text})
	assert.Equal(t, http.StatusOK, w.Code)

	var res AnalyzeResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Cached)
	assert.Equal(t, "mar_romanized", res.Language)
}

func TestSentimentEndpoint_ProvidedLanguage(t *testing.T) {
	router, _ := newDetectRouter(t, nil, nil)
	w := postJSON(router, "/sentiment", DetectInput{
		Text: "This is a wonderful amazing day", Language: "eng",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "eng", res["language"])
	sentiment := res["sentiment"].(map[string]interface{})
	assert.Equal(t, "positive", sentiment["label"])
}

func TestToxicityEndpoint(t *testing.T) {
	router, _ := newDetectRouter(t, nil, nil)
	w := postJSON(router, "/toxicity", DetectInput{Text: "you are such an idiot"})
	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	scores := res["scores"].(map[string]interface{})
	assert.Greater(t, scores["insult"].(float64), 0.0)
}

func TestProfanityEndpoint_Clean(t *testing.T) {
	router, _ := newDetectRouter(t, nil, nil)
	w := postJSON(router, "/profanity", DetectInput{Text: "what a lovely day"})
	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, false, res["is_profane"])
}

func TestConvertEndpoint_Hindi(t *testing.T) {
	router, _ := newDetectRouter(t, nil, nil)
	w := postJSON(router, "/convert", DetectInput{Text: "namaste", Language: "hin"})
	assert.Equal(t, http.StatusOK, w.Code)

	var res romanize.Result
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "नमस्ते", res.ConvertedText)
}

func TestTranslateEndpoint_NotConfigured(t *testing.T) {
	router, _ := newDetectRouter(t, nil, nil)
	w := postJSON(router, "/translate", map[string]string{
		"text": "hello", "target_lang": "hin",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTranslateEndpoint_MissingTarget(t *testing.T) {
	router, _ := newDetectRouter(t, nil, nil)
	w := postJSON(router, "/translate", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
