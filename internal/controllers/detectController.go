package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sarveshkp/bhashik/internal/analyze"
	"github.com/sarveshkp/bhashik/internal/detect"
	"github.com/sarveshkp/bhashik/internal/metrics"
	"github.com/sarveshkp/bhashik/internal/middleware"
	"github.com/sarveshkp/bhashik/internal/normalize"
	"github.com/sarveshkp/bhashik/internal/profanity"
	"github.com/sarveshkp/bhashik/internal/repository"
	"github.com/sarveshkp/bhashik/internal/romanize"
	"github.com/sarveshkp/bhashik/internal/translate"
)

// DetectInput is the shared request body for the text endpoints.
type DetectInput struct {
	Text     string `json:"text" binding:"required" example:"Mi aaj khup khush ahe!"`
	Language string `json:"language,omitempty" example:"mar"`
	Detailed bool   `json:"detailed,omitempty"`
}

// AnalyzeResponse is the full pipeline output.
type AnalyzeResponse struct {
	Language      string                   `json:"language"`
	Confidence    float64                  `json:"confidence"`
	Method        string                   `json:"method"`
	Sentiment     *analyze.SentimentResult `json:"sentiment,omitempty"`
	Toxicity      map[string]float64       `json:"toxicity,omitempty"`
	ToxicityLabel string                   `json:"toxicity_label,omitempty"`
	IsProfane     bool                     `json:"is_profane"`
	Cached        bool                     `json:"cached"`
}

type DetectController struct {
	detector   *detect.Detector
	cache      *repository.DetectionCache
	history    repository.HistoryRepository
	converter  *romanize.Converter
	translator *translate.Client
	log        *logrus.Entry
}

// NewDetectController wires the detection pipeline. History and translator
// may be nil; the corresponding steps are skipped.
func NewDetectController(d *detect.Detector, cache *repository.DetectionCache,
	history repository.HistoryRepository, converter *romanize.Converter,
	translator *translate.Client, log *logrus.Entry) *DetectController {
	return &DetectController{
		detector:   d,
		cache:      cache,
		history:    history,
		converter:  converter,
		translator: translator,
		log:        log,
	}
}

func (dc *DetectController) reqLogger(c *gin.Context) *logrus.Entry {
	return dc.log.WithFields(logrus.Fields{
		"handler":   "DetectController",
		"trace_id":  middleware.TraceID(c),
		"remote_ip": c.ClientIP(),
		"path":      c.Request.URL.Path,
	})
}

func (dc *DetectController) bindText(c *gin.Context, log *logrus.Entry) (DetectInput, bool) {
	var in DetectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.WithError(err).Warn("bad request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return in, false
	}
	return in, true
}

// Detect
// @Summary      Detect the language of a text
// @Description  Runs the detection pipeline. With detailed=true the response carries per-stage analyses.
// @Tags         detection
// @Accept       json
// @Produce      json
// @Param        body  body  DetectInput  true  "Text to detect"
// @Success      200  {object}  detect.DetailedResult
// @Failure      400  {object}  map[string]string
// @Router       /detect [post]
func (dc *DetectController) Detect(c *gin.Context) {
	log := dc.reqLogger(c).WithField("handler", "Detect")
	in, ok := dc.bindText(c, log)
	if !ok {
		return
	}

	start := time.Now()
	if in.Detailed {
		res, err := dc.detector.DetectDetailed(in.Text)
		if err != nil {
			metrics.DetectionsFailed.Inc()
			log.WithError(err).Warn("detection rejected")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		metrics.DetectionsTotal.WithLabelValues(res.Method).Inc()
		metrics.DetectionDuration.Observe(time.Since(start).Seconds())
		c.JSON(http.StatusOK, res)
		return
	}

	res, err := dc.detector.Detect(in.Text)
	if err != nil {
		metrics.DetectionsFailed.Inc()
		log.WithError(err).Warn("detection rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	metrics.DetectionsTotal.WithLabelValues(res.Method).Inc()
	metrics.DetectionDuration.Observe(time.Since(start).Seconds())
	c.JSON(http.StatusOK, res)
}

// Analyze
// @Summary      Full text analysis
// @Description  Cleans the text, then runs detection, sentiment, toxicity and profanity in one pass. Results are cached by structural signature.
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        body  body  DetectInput  true  "Text to analyse"
// @Success      200  {object}  AnalyzeResponse
// @Failure      400  {object}  map[string]string
// @Router       /analyze [post]
func (dc *DetectController) Analyze(c *gin.Context) {
	log := dc.reqLogger(c).WithField("handler", "Analyze")
	in, ok := dc.bindText(c, log)
	if !ok {
		return
	}

	start := time.Now()
	cleaned := normalize.CleanText(in.Text)

	ctx := c.Request.Context()
	if dc.cache != nil {
		if rec, hit := dc.cache.Lookup(ctx, cleaned); hit {
			metrics.CacheHits.Inc()
			worst, _ := analyze.ToxicityLabel(rec.Toxicity)
			c.JSON(http.StatusOK, AnalyzeResponse{
				Language:      rec.Language,
				Confidence:    rec.Confidence,
				Method:        rec.Method,
				Sentiment:     rec.Sentiment,
				Toxicity:      rec.Toxicity,
				ToxicityLabel: worst,
				IsProfane:     rec.IsProfane,
				Cached:        true,
			})
			return
		}
		metrics.CacheMisses.Inc()
	}

	res, err := dc.detector.Detect(cleaned)
	if err != nil {
		metrics.DetectionsFailed.Inc()
		log.WithError(err).Warn("detection rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	metrics.DetectionsTotal.WithLabelValues(res.Method).Inc()

	sentiment := analyze.PredictSentiment(cleaned, res.Language)
	toxicity := analyze.ScoreToxicity(cleaned)
	prof := profanity.Check(cleaned)
	worst, _ := analyze.ToxicityLabel(toxicity)

	record := &repository.AnalysisRecord{
		Language:   res.Language,
		Confidence: res.Confidence,
		Method:     res.Method,
		Sentiment:  &sentiment,
		Toxicity:   toxicity,
		IsProfane:  prof.IsProfane,
	}
	if dc.cache != nil {
		dc.cache.Store(ctx, cleaned, record)
	}
	if dc.history != nil {
		dc.saveHistory(ctx, log, cleaned, record, toxicity)
	}

	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	c.JSON(http.StatusOK, AnalyzeResponse{
		Language:      res.Language,
		Confidence:    res.Confidence,
		Method:        res.Method,
		Sentiment:     &sentiment,
		Toxicity:      toxicity,
		ToxicityLabel: worst,
		IsProfane:     prof.IsProfane,
	})
}

func (dc *DetectController) saveHistory(ctx context.Context, log *logrus.Entry,
	cleaned string, rec *repository.AnalysisRecord, toxicity map[string]float64) {
	saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, maxTox := analyze.ToxicityLabel(toxicity)
	entity := &repository.DetectionEntity{
		ID:         uuid.New().String(),
		Signature:  repository.Signature(cleaned),
		TextSample: cleaned,
		TextLength: len([]rune(cleaned)),
		Language:   rec.Language,
		Confidence: rec.Confidence,
		Method:     rec.Method,
		Toxicity:   maxTox,
		IsProfane:  rec.IsProfane,
	}
	if rec.Sentiment != nil {
		entity.Sentiment = rec.Sentiment.Label
	}
	if err := dc.history.SaveDetection(saveCtx, entity); err != nil {
		log.WithError(err).Warn("history save failed")
	}
}

// Sentiment
// @Summary      Sentiment of a text
// @Description  Detects the language first unless one is supplied, then scores sentiment with the matching lexicons.
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        body  body  DetectInput  true  "Text to score"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /sentiment [post]
func (dc *DetectController) Sentiment(c *gin.Context) {
	log := dc.reqLogger(c).WithField("handler", "Sentiment")
	in, ok := dc.bindText(c, log)
	if !ok {
		return
	}

	language := in.Language
	if language == "" {
		res, err := dc.detector.Detect(in.Text)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		language = res.Language
	}

	result := analyze.PredictSentiment(in.Text, language)
	c.JSON(http.StatusOK, gin.H{
		"language":  language,
		"sentiment": result,
	})
}

// Toxicity
// @Summary      Toxicity scores for a text
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        body  body  DetectInput  true  "Text to score"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /toxicity [post]
func (dc *DetectController) Toxicity(c *gin.Context) {
	log := dc.reqLogger(c).WithField("handler", "Toxicity")
	in, ok := dc.bindText(c, log)
	if !ok {
		return
	}

	scores := analyze.ScoreToxicity(in.Text)
	worst, max := analyze.ToxicityLabel(scores)
	c.JSON(http.StatusOK, gin.H{
		"scores":    scores,
		"label":     worst,
		"max_score": max,
		"is_toxic":  max >= 0.5,
	})
}

// Profanity
// @Summary      Profanity check
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        body  body  DetectInput  true  "Text to check"
// @Success      200  {object}  profanity.Result
// @Failure      400  {object}  map[string]string
// @Router       /profanity [post]
func (dc *DetectController) Profanity(c *gin.Context) {
	log := dc.reqLogger(c).WithField("handler", "Profanity")
	in, ok := dc.bindText(c, log)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profanity.Check(in.Text))
}

// Convert
// @Summary      Convert romanized text to native script
// @Description  Token-level conversion to Devanagari for supported languages. detailed=true includes per-token actions.
// @Tags         conversion
// @Accept       json
// @Produce      json
// @Param        body  body  DetectInput  true  "Text and target language"
// @Success      200  {object}  romanize.Result
// @Failure      400  {object}  map[string]string
// @Router       /convert [post]
func (dc *DetectController) Convert(c *gin.Context) {
	log := dc.reqLogger(c).WithField("handler", "Convert")
	in, ok := dc.bindText(c, log)
	if !ok {
		return
	}

	language := in.Language
	if language == "" {
		res, err := dc.detector.Detect(in.Text)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		language = res.Language
	}

	c.JSON(http.StatusOK, dc.converter.Convert(in.Text, language, in.Detailed))
}

// Translate
// @Summary      Translate text via the configured backend
// @Description  Romanized Indic input is converted to native script before translation.
// @Tags         translation
// @Accept       json
// @Produce      json
// @Param        body  body  translate.Request  true  "Translation request"
// @Success      200  {object}  translate.Response
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  translate.Response
// @Router       /translate [post]
func (dc *DetectController) Translate(c *gin.Context) {
	log := dc.reqLogger(c).WithField("handler", "Translate")

	var req translate.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Warn("bad request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TargetLang == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_lang is required"})
		return
	}
	if dc.translator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "translation not configured"})
		return
	}

	resp := dc.translator.Translate(c.Request.Context(), req)
	if !resp.Success {
		log.WithField("error", resp.Error).Warn("translation failed")
		c.JSON(http.StatusBadGateway, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
