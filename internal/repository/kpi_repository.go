package repository

import (
	"context"
	"time"

	"github.com/Tovoson/multiStats/internal/models"

	"gorm.io/gorm"
)

type KpiRepository interface {
	List(ctx context.Context) ([]models.KpiDaily, error)
	Create(ctx context.Context, kpi *models.KpiDaily) error
	GetByID(ctx context.Context, id uint) (*models.KpiDaily, error)
	GetByDateAndMoment(ctx context.Context, date time.Time, moment string) (*models.KpiDaily, error)
	ExistsByDateAndMoment(ctx context.Context, date time.Time, moment string) (bool, error)
}

type kpiRepository struct {
	db *gorm.DB
}

func NewKpiRepository(db *gorm.DB) KpiRepository {
	return &kpiRepository{db: db}
}

func (r *kpiRepository) List(ctx context.Context) ([]models.KpiDaily, error) {
	var items []models.KpiDaily
	err := r.db.WithContext(ctx).Order("date DESC, moment ASC").Find(&items).Error
	return items, err
}

func (r *kpiRepository) Create(ctx context.Context, kpi *models.KpiDaily) error {
	return r.db.WithContext(ctx).Create(kpi).Error
}

func (r *kpiRepository) GetByID(ctx context.Context, id uint) (*models.KpiDaily, error) {
	var kpi models.KpiDaily
	if err := r.db.WithContext(ctx).First(&kpi, id).Error; err != nil {
		return nil, err
	}
	return &kpi, nil
}

func (r *kpiRepository) GetByDateAndMoment(ctx context.Context, date time.Time, moment string) (*models.KpiDaily, error) {
	var kpi models.KpiDaily
	err := r.db.WithContext(ctx).
		Where("date = ? AND moment = ?", date.Format(models.DateLayout), moment).
		First(&kpi).Error
	if err != nil {
		return nil, err
	}
	return &kpi, nil
}

func (r *kpiRepository) ExistsByDateAndMoment(ctx context.Context, date time.Time, moment string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.KpiDaily{}).
		Where("date = ? AND moment = ?", date.Format(models.DateLayout), moment).
		Count(&count).Error
	return count > 0, err
}
