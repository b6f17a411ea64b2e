package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MomentStart = "debut"
	MomentEnd   = "fin"

	PeriodWeek  = "week"
	PeriodMonth = "month"

	DateLayout = "2006-01-02"

	// periodRewardRate converts responses, KPI effect and extra benefits into payout units.
	periodRewardRate = 0.03
)

// KpiDaily is a snapshot of the daily counters, taken at the start or end of a capture session.
type KpiDaily struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_kpi_daily_date_moment" json:"date"`
	Moment     string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_kpi_daily_date_moment" json:"moment"`
	MsgSent    uint      `gorm:"not null;default:0" json:"msg_sent"`
	MsgRR      float64   `gorm:"column:msg_rr;not null" json:"msg_rr"`
	PhotosSent uint      `gorm:"not null;default:0" json:"photos_sent"`
	PhotosRR   float64   `gorm:"column:photos_rr;not null" json:"photos_rr"`
	GiftsSent  uint      `gorm:"not null;default:0" json:"gifts_sent"`
	GiftsRR    float64   `gorm:"column:gifts_rr;not null" json:"gifts_rr"`
	SpeedRR    float64   `gorm:"column:speed_rr;not null" json:"speed_rr"`
	ImageURL   string    `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	Note       string    `gorm:"type:varchar(255)" json:"note,omitempty"`

	StatsPeriods []StatsPeriod `gorm:"constraint:OnDelete:CASCADE" json:"stats_periods,omitempty"`
}

func (KpiDaily) TableName() string {
	return "kpi_daily"
}

// StatsPeriod holds the weekly or monthly aggregate seen alongside a KPI snapshot.
type StatsPeriod struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	KpiDailyID    uint   `gorm:"not null;uniqueIndex:idx_stats_period_unique;index:idx_stats_period_kpi_type" json:"kpi_daily_id"`
	Moment        string `gorm:"type:varchar(10);not null;uniqueIndex:idx_stats_period_unique" json:"moment"`
	PeriodType    string `gorm:"type:varchar(10);not null;uniqueIndex:idx_stats_period_unique;index;index:idx_stats_period_kpi_type" json:"period_type"`
	Responses     uint   `gorm:"not null;default:0" json:"responses"`
	KpiEffect     int    `gorm:"not null;default:0" json:"kpi_effect"`
	ExtraBenefits int    `gorm:"not null;default:0" json:"extra_benefits"`
	Penalties     int    `gorm:"column:penalites;not null;default:0;check:penalites <= 0" json:"penalties"`
	ImageURL      string `gorm:"type:varchar(512)" json:"image_url,omitempty"`
}

func (StatsPeriod) TableName() string {
	return "stats_period"
}

// Total is the period payout. Penalties are stored as non-positive values and
// subtracted as-is.
func (s StatsPeriod) Total() float64 {
	earned := float64(int(s.Responses) + s.KpiEffect + s.ExtraBenefits)
	return earned*periodRewardRate - float64(s.Penalties)
}

type CreateKpiDailyRequest struct {
	Date       string   `json:"date" binding:"omitempty,kpi_date"`
	Moment     string   `json:"moment" binding:"omitempty,moment"`
	MsgSent    *uint    `json:"msg_sent" binding:"required"`
	MsgRR      *float64 `json:"msg_rr" binding:"required,min=0"`
	PhotosSent *uint    `json:"photos_sent" binding:"required"`
	PhotosRR   *float64 `json:"photos_rr" binding:"required,min=0"`
	GiftsSent  *uint    `json:"gifts_sent" binding:"required"`
	GiftsRR    *float64 `json:"gifts_rr" binding:"required,min=0"`
	SpeedRR    *float64 `json:"speed_rr" binding:"required,min=0"`
	ImageURL   string   `json:"image_url" binding:"omitempty,url,max=512"`
	Note       string   `json:"note" binding:"max=255"`
}

type CreateStatsPeriodRequest struct {
	KpiDailyID    uint   `json:"kpi_daily_id" binding:"required"`
	Moment        string `json:"moment" binding:"required,moment"`
	PeriodType    string `json:"period_type" binding:"required,period_type"`
	Responses     uint   `json:"responses"`
	KpiEffect     int    `json:"kpi_effect"`
	ExtraBenefits int    `json:"extra_benefits"`
	Penalties     int    `json:"penalties" binding:"max=0"`
	ImageURL      string `json:"image_url" binding:"omitempty,url,max=512"`
}

type DeltaKpi struct {
	Date       string  `json:"date"`
	MsgSent    int64   `json:"msg_sent"`
	MsgRR      float64 `json:"msg_rr"`
	PhotosSent int64   `json:"photos_sent"`
	GiftsSent  int64   `json:"gifts_sent"`
}

type PeriodSummary struct {
	Responses    int64   `json:"responses"`
	KpiEffect    int     `json:"kpi_effect"`
	ExtraBenefit int     `json:"extra_benefit"`
	Penalty      int     `json:"penalite"`
	Total        float64 `json:"total"`
}

type DeltaStats struct {
	Week  PeriodSummary `json:"week"`
	Month PeriodSummary `json:"month"`
}

// DailyDelta is the difference between the end and start snapshots of one day.
type DailyDelta struct {
	DeltaKpi   DeltaKpi   `json:"delta_kpi"`
	DeltaStats DeltaStats `json:"delta_stats"`
}
