package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sarveshkp/bhashik/internal/detect"
	"github.com/sarveshkp/bhashik/internal/metrics"
	"github.com/sarveshkp/bhashik/internal/middleware"
	"github.com/sarveshkp/bhashik/internal/repository"
)

// FeedbackInput reports a wrong detection together with the correction.
type FeedbackInput struct {
	Text             string  `json:"text" binding:"required"`
	DetectedLanguage string  `json:"detected_language" binding:"required"`
	CorrectLanguage  string  `json:"correct_language" binding:"required"`
	Confidence       float64 `json:"confidence,omitempty"`
	Method           string  `json:"method,omitempty"`
	Comment          string  `json:"comment,omitempty"`
}

type AdminController struct {
	detector *detect.Detector
	cache    *repository.DetectionCache
	history  repository.HistoryRepository
	log      *logrus.Entry
}

func NewAdminController(d *detect.Detector, cache *repository.DetectionCache,
	history repository.HistoryRepository, log *logrus.Entry) *AdminController {
	return &AdminController{detector: d, cache: cache, history: history, log: log}
}

func (ac *AdminController) reqLogger(c *gin.Context) *logrus.Entry {
	return ac.log.WithFields(logrus.Fields{
		"handler":   "AdminController",
		"trace_id":  middleware.TraceID(c),
		"remote_ip": c.ClientIP(),
		"path":      c.Request.URL.Path,
	})
}

// SubmitFeedback
// @Summary      Submit a detection correction
// @Tags         learning
// @Accept       json
// @Produce      json
// @Param        body  body  FeedbackInput  true  "Correction"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /feedback [post]
func (ac *AdminController) SubmitFeedback(c *gin.Context) {
	log := ac.reqLogger(c).WithField("handler", "SubmitFeedback")

	var in FeedbackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.WithError(err).Warn("bad feedback body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ac.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feedback store not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entity := &repository.FeedbackEntity{
		ID:               uuid.New().String(),
		TextSample:       in.Text,
		DetectedLanguage: detect.Normalize(in.DetectedLanguage),
		CorrectLanguage:  detect.Normalize(in.CorrectLanguage),
		Confidence:       in.Confidence,
		Method:           in.Method,
		Comment:          in.Comment,
	}
	if err := ac.history.SaveFeedback(ctx, entity); err != nil {
		log.WithError(err).Error("feedback save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save feedback"})
		return
	}

	metrics.FeedbackReceived.Inc()
	log.WithFields(logrus.Fields{
		"detected": entity.DetectedLanguage,
		"correct":  entity.CorrectLanguage,
	}).Info("feedback recorded")
	c.JSON(http.StatusCreated, gin.H{"id": entity.ID, "status": "recorded"})
}

// LearningStats
// @Summary      Aggregate detection and feedback statistics
// @Tags         learning
// @Produce      json
// @Param        recent  query  int  false  "Include this many recent feedback rows"  minimum(1)  maximum(100)
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /learning/stats [get]
func (ac *AdminController) LearningStats(c *gin.Context) {
	log := ac.reqLogger(c).WithField("handler", "LearningStats")

	if ac.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feedback store not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stats, err := ac.history.Stats(ctx)
	if err != nil {
		log.WithError(err).Error("stats query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	out := gin.H{"stats": stats}
	if s := c.Query("recent"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 100 {
			recent, err := ac.history.RecentFeedback(ctx, n, 0)
			if err != nil {
				log.WithError(err).Warn("recent feedback query failed")
			} else {
				out["recent_feedback"] = recent
			}
		}
	}
	c.JSON(http.StatusOK, out)
}

// UpdateDetectionConfig
// @Summary      Update detection thresholds at runtime
// @Description  Keys are whitelisted; any unknown key rejects the whole update.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]float64  true  "Threshold changes"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /config/detection [patch]
func (ac *AdminController) UpdateDetectionConfig(c *gin.Context) {
	log := ac.reqLogger(c).WithField("handler", "UpdateDetectionConfig")

	var changes map[string]float64
	if err := c.ShouldBindJSON(&changes); err != nil {
		log.WithError(err).Warn("bad config body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes supplied"})
		return
	}

	if err := ac.detector.UpdateConfig(changes); err != nil {
		log.WithError(err).Warn("config update rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied := make([]string, 0, len(changes))
	for k := range changes {
		applied = append(applied, k)
	}
	log.WithField("keys", applied).Info("detection config updated")
	c.JSON(http.StatusOK, gin.H{"status": "updated", "applied": len(changes)})
}

// GetDetectionConfig
// @Summary      Current detection thresholds and updatable keys
// @Tags         config
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /config/detection [get]
func (ac *AdminController) GetDetectionConfig(c *gin.Context) {
	cfg := ac.detector.Config()
	c.JSON(http.StatusOK, gin.H{
		"config":         cfg.Snapshot(),
		"updatable_keys": cfg.Keys(),
	})
}

// CacheStats
// @Summary      Analysis cache counters
// @Tags         cache
// @Produce      json
// @Success      200  {object}  repository.CacheStats
// @Router       /cache/stats [get]
func (ac *AdminController) CacheStats(c *gin.Context) {
	if ac.cache == nil {
		c.JSON(http.StatusOK, repository.CacheStats{})
		return
	}
	c.JSON(http.StatusOK, ac.cache.Stats(c.Request.Context()))
}

// CacheClear
// @Summary      Drop all cached analyses
// @Tags         cache
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /cache/clear [delete]
func (ac *AdminController) CacheClear(c *gin.Context) {
	log := ac.reqLogger(c).WithField("handler", "CacheClear")

	if ac.cache == nil {
		c.JSON(http.StatusOK, gin.H{"removed": 0})
		return
	}
	removed, err := ac.cache.Clear(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("cache clear failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache clear failed"})
		return
	}
	log.WithField("removed", removed).Info("cache cleared")
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
