package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Tovoson/multiStats/internal/models"
	"github.com/Tovoson/multiStats/internal/service"
	"github.com/Tovoson/multiStats/pkg/logger"
	"github.com/Tovoson/multiStats/pkg/validator"
)

type KpiHandler struct {
	service service.KpiUseCase
	now     func() time.Time
}

func NewKpiHandler(service service.KpiUseCase) *KpiHandler {
	return &KpiHandler{service: service, now: time.Now}
}

func (h *KpiHandler) List(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	items, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.ErrorContext(c.Request.Context(), err, "Failed to load kpi snapshots", nil)
		c.JSON(kpiErrorStatus(err), gin.H{"error": "Failed to load kpi snapshots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kpi_daily": items})
}

func (h *KpiHandler) Create(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	var req models.CreateKpiDailyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kpi, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		status := kpiErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.ErrorContext(c.Request.Context(), err, "Failed to create kpi snapshot", map[string]interface{}{"date": req.Date, "moment": req.Moment})
			c.JSON(status, gin.H{"error": "Failed to create kpi snapshot"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"kpi_daily": kpi})
}

// Delta reports the daily difference for ?date=YYYY-MM-DD, today (UTC) when absent.
func (h *KpiHandler) Delta(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	date := h.now().UTC()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := validator.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidDate.Error()})
			return
		}
		date = parsed
	}

	delta, err := h.service.DailyDelta(c.Request.Context(), date)
	if err != nil {
		status := kpiErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.ErrorContext(c.Request.Context(), err, "Failed to compute daily delta", map[string]interface{}{"date": date.Format(models.DateLayout)})
			c.JSON(status, gin.H{"error": "Failed to compute daily delta"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, delta)
}

func (h *KpiHandler) CreateStatsPeriod(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	var req models.CreateStatsPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	period, err := h.service.CreateStatsPeriod(c.Request.Context(), req)
	if err != nil {
		status := kpiErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.ErrorContext(c.Request.Context(), err, "Failed to create stats period", map[string]interface{}{"kpi_daily_id": req.KpiDailyID})
			c.JSON(status, gin.H{"error": "Failed to create stats period"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"stats_period": period})
}

func kpiErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidMoment),
		errors.Is(err, service.ErrInvalidPeriodType),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrPositivePenalty):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrKpiNotFound),
		errors.Is(err, service.ErrDeltaDataMissing),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrKpiAlreadyExists),
		errors.Is(err, service.ErrPeriodExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrRepositoryNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
