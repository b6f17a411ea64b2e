package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Tovoson/multiStats/internal/models"
	"github.com/Tovoson/multiStats/internal/repository"
	"github.com/Tovoson/multiStats/pkg/logger"
	"github.com/Tovoson/multiStats/pkg/validator"
)

type KpiService struct {
	kpiRepo    repository.KpiRepository
	periodRepo repository.StatsPeriodRepository
	cache      KpiCache
	now        func() time.Time
}

func NewKpiService(kpiRepo repository.KpiRepository, periodRepo repository.StatsPeriodRepository, cache KpiCache) *KpiService {
	return &KpiService{
		kpiRepo:    kpiRepo,
		periodRepo: periodRepo,
		cache:      cache,
		now:        time.Now,
	}
}

func (s *KpiService) ready() error {
	if s == nil || s.kpiRepo == nil || s.periodRepo == nil {
		return ErrRepositoryNotReady
	}
	return nil
}

func (s *KpiService) List(ctx context.Context) ([]models.KpiDaily, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached []models.KpiDaily
		if err := s.cache.GetCachedKpiList(&cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.kpiRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.KpiDaily{}
	}

	if s.cache != nil {
		if err := s.cache.CacheKpiList(items); err != nil {
			logger.WarnContext(ctx, "Failed to cache kpi list", map[string]interface{}{"error": err.Error()})
		}
	}

	return items, nil
}

// Create records a KPI snapshot. Date defaults to today (UTC) and moment to debut.
func (s *KpiService) Create(ctx context.Context, req models.CreateKpiDailyRequest) (*models.KpiDaily, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	moment := strings.ToLower(strings.TrimSpace(req.Moment))
	if moment == "" {
		moment = models.MomentStart
	}
	if !validator.IsMoment(moment) {
		return nil, ErrInvalidMoment
	}

	exists, err := s.kpiRepo.ExistsByDateAndMoment(ctx, date, moment)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrKpiAlreadyExists
	}

	kpi := &models.KpiDaily{
		Date:       date,
		Moment:     moment,
		MsgSent:    derefUint(req.MsgSent),
		MsgRR:      derefFloat(req.MsgRR),
		PhotosSent: derefUint(req.PhotosSent),
		PhotosRR:   derefFloat(req.PhotosRR),
		GiftsSent:  derefUint(req.GiftsSent),
		GiftsRR:    derefFloat(req.GiftsRR),
		SpeedRR:    derefFloat(req.SpeedRR),
		ImageURL:   strings.TrimSpace(req.ImageURL),
		Note:       validator.SanitizeString(req.Note),
	}

	if err := s.kpiRepo.Create(ctx, kpi); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrKpiAlreadyExists
		}
		return nil, err
	}

	s.invalidate(ctx)
	return kpi, nil
}

func (s *KpiService) CreateStatsPeriod(ctx context.Context, req models.CreateStatsPeriodRequest) (*models.StatsPeriod, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	moment := strings.ToLower(strings.TrimSpace(req.Moment))
	if !validator.IsMoment(moment) {
		return nil, ErrInvalidMoment
	}
	periodType := strings.ToLower(strings.TrimSpace(req.PeriodType))
	if !validator.IsPeriodType(periodType) {
		return nil, ErrInvalidPeriodType
	}
	if req.Penalties > 0 {
		return nil, ErrPositivePenalty
	}

	if _, err := s.kpiRepo.GetByID(ctx, req.KpiDailyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKpiNotFound
		}
		return nil, err
	}

	period := &models.StatsPeriod{
		KpiDailyID:    req.KpiDailyID,
		Moment:        moment,
		PeriodType:    periodType,
		Responses:     req.Responses,
		KpiEffect:     req.KpiEffect,
		ExtraBenefits: req.ExtraBenefits,
		Penalties:     req.Penalties,
		ImageURL:      strings.TrimSpace(req.ImageURL),
	}

	if err := s.periodRepo.Create(ctx, period); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPeriodExists
		}
		return nil, err
	}

	s.invalidate(ctx)
	return period, nil
}

// DailyDelta compares the fin snapshot of date with its debut snapshot. Both
// snapshots need their week and month stats.
func (s *KpiService) DailyDelta(ctx context.Context, date time.Time) (*models.DailyDelta, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	day := date.Format(models.DateLayout)

	if s.cache != nil {
		var cached models.DailyDelta
		if err := s.cache.GetCachedDelta(day, &cached); err == nil {
			return &cached, nil
		}
	}

	start, err := s.snapshot(ctx, date, models.MomentStart)
	if err != nil {
		return nil, err
	}
	end, err := s.snapshot(ctx, date, models.MomentEnd)
	if err != nil {
		return nil, err
	}

	startWeek, err := s.period(ctx, start, models.PeriodWeek)
	if err != nil {
		return nil, err
	}
	endWeek, err := s.period(ctx, end, models.PeriodWeek)
	if err != nil {
		return nil, err
	}
	if _, err := s.period(ctx, start, models.PeriodMonth); err != nil {
		return nil, err
	}
	endMonth, err := s.period(ctx, end, models.PeriodMonth)
	if err != nil {
		return nil, err
	}

	msgSent := int64(end.MsgSent) - int64(start.MsgSent)
	responses := int64(endWeek.Responses) - int64(startWeek.Responses)

	msgRR := 0.0
	if msgSent != 0 {
		msgRR = float64(responses*100) / float64(msgSent)
	}

	delta := &models.DailyDelta{
		DeltaKpi: models.DeltaKpi{
			Date:       day,
			MsgSent:    msgSent,
			MsgRR:      msgRR,
			PhotosSent: int64(end.PhotosSent) - int64(start.PhotosSent),
			GiftsSent:  int64(end.GiftsSent) - int64(start.GiftsSent),
		},
		DeltaStats: models.DeltaStats{
			Week:  summarize(*endWeek, responses),
			Month: summarize(*endMonth, int64(endMonth.Responses)),
		},
	}

	if s.cache != nil {
		if err := s.cache.CacheDelta(day, delta); err != nil {
			logger.WarnContext(ctx, "Failed to cache daily delta", map[string]interface{}{"date": day, "error": err.Error()})
		}
	}

	return delta, nil
}

func (s *KpiService) snapshot(ctx context.Context, date time.Time, moment string) (*models.KpiDaily, error) {
	kpi, err := s.kpiRepo.GetByDateAndMoment(ctx, date, moment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, missingData(date)
		}
		return nil, err
	}
	return kpi, nil
}

func (s *KpiService) period(ctx context.Context, kpi *models.KpiDaily, periodType string) (*models.StatsPeriod, error) {
	period, err := s.periodRepo.GetByKpi(ctx, kpi.ID, kpi.Moment, periodType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, missingData(kpi.Date)
		}
		return nil, err
	}
	return period, nil
}

func (s *KpiService) resolveDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := validator.ParseDate(value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

func (s *KpiService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateKpi(); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate kpi cache", map[string]interface{}{"error": err.Error()})
	}
}

func summarize(period models.StatsPeriod, responses int64) models.PeriodSummary {
	return models.PeriodSummary{
		Responses:    responses,
		KpiEffect:    period.KpiEffect,
		ExtraBenefit: period.ExtraBenefits,
		Penalty:      period.Penalties,
		Total:        period.Total(),
	}
}

func missingData(date time.Time) error {
	return fmt.Errorf("%w for %s", ErrDeltaDataMissing, date.Format(models.DateLayout))
}

func derefUint(value *uint) uint {
	if value == nil {
		return 0
	}
	return *value
}

func derefFloat(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
