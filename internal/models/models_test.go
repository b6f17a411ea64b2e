package models

import (
	"math"
	"testing"
)

func TestStatsPeriodTotal(t *testing.T) {
	cases := []struct {
		name     string
		period   StatsPeriod
		expected float64
	}{
		{name: "empty", period: StatsPeriod{}, expected: 0},
		{name: "responses only", period: StatsPeriod{Responses: 100}, expected: 3},
		{
			name:     "with penalties",
			period:   StatsPeriod{Responses: 100, KpiEffect: 20, ExtraBenefits: 30, Penalties: -5},
			expected: 9.5,
		},
		{name: "negative effect", period: StatsPeriod{Responses: 10, KpiEffect: -20}, expected: -0.3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.period.Total(); math.Abs(got-tc.expected) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestTableNames(t *testing.T) {
	if (KpiDaily{}).TableName() != "kpi_daily" {
		t.Fatalf("unexpected kpi table name")
	}
	if (StatsPeriod{}).TableName() != "stats_period" {
		t.Fatalf("unexpected stats period table name")
	}
}
