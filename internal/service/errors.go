package service

import "errors"

var (
	ErrKpiNotFound        = errors.New("kpi not found")
	ErrKpiAlreadyExists   = errors.New("kpi already recorded for this date and moment")
	ErrPeriodExists       = errors.New("stats period already recorded for this kpi")
	ErrInvalidMoment      = errors.New("moment must be debut or fin")
	ErrInvalidPeriodType  = errors.New("period type must be week or month")
	ErrInvalidDate        = errors.New("date must use the YYYY-MM-DD format")
	ErrPositivePenalty    = errors.New("penalties must be zero or negative")
	ErrDeltaDataMissing   = errors.New("missing data")
	ErrRepositoryNotReady = errors.New("kpi repository not configured")
)
