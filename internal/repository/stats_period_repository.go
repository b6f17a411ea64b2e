package repository

import (
	"context"

	"github.com/Tovoson/multiStats/internal/models"

	"gorm.io/gorm"
)

type StatsPeriodRepository interface {
	Create(ctx context.Context, period *models.StatsPeriod) error
	GetByKpi(ctx context.Context, kpiDailyID uint, moment, periodType string) (*models.StatsPeriod, error)
}

type statsPeriodRepository struct {
	db *gorm.DB
}

func NewStatsPeriodRepository(db *gorm.DB) StatsPeriodRepository {
	return &statsPeriodRepository{db: db}
}

func (r *statsPeriodRepository) Create(ctx context.Context, period *models.StatsPeriod) error {
	return r.db.WithContext(ctx).Create(period).Error
}

// GetByKpi matches the full (kpi_daily_id, moment, period_type) key, so at most one row qualifies.
func (r *statsPeriodRepository) GetByKpi(ctx context.Context, kpiDailyID uint, moment, periodType string) (*models.StatsPeriod, error) {
	var period models.StatsPeriod
	err := r.db.WithContext(ctx).
		Where("kpi_daily_id = ? AND moment = ? AND period_type = ?", kpiDailyID, moment, periodType).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}
