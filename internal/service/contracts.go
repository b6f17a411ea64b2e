package service

import (
	"context"
	"time"

	"github.com/Tovoson/multiStats/internal/models"
)

type KpiUseCase interface {
	List(ctx context.Context) ([]models.KpiDaily, error)
	Create(ctx context.Context, req models.CreateKpiDailyRequest) (*models.KpiDaily, error)
	CreateStatsPeriod(ctx context.Context, req models.CreateStatsPeriodRequest) (*models.StatsPeriod, error)
	DailyDelta(ctx context.Context, date time.Time) (*models.DailyDelta, error)
}

// KpiCache is the subset of pkg/cache used by KpiService.
type KpiCache interface {
	CacheKpiList(items interface{}) error
	GetCachedKpiList(dest interface{}) error
	CacheDelta(date string, delta interface{}) error
	GetCachedDelta(date string, dest interface{}) error
	InvalidateKpi() error
}
