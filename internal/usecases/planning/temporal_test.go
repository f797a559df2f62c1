package planning

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func profileOf(weights map[time.Month]int64) domain.SeasonalityProfile {
	profile := domain.SeasonalityProfile{}
	for i := range profile.Percentages {
		profile.Percentages[i] = decimal.Zero
	}
	for month, weight := range weights {
		profile.Percentages[month-1] = decimal.NewFromInt(weight)
	}
	return profile
}

func TestPeriodTotal(t *testing.T) {
	tests := []struct {
		name   string
		annual int
		days   int
		want   int
	}{
		{name: "ano inteiro", annual: 365, days: 365, want: 365},
		{name: "trimestre arredonda para cima", annual: 1200, days: 90, want: 296},
		{name: "um dia", annual: 1000, days: 1, want: 3},
		{name: "divisão exata", annual: 730, days: 10, want: 20},
		{name: "meta zero", annual: 0, days: 30, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodTotal(tt.annual, tt.days))
		})
	}
}

func TestMonthsInRange(t *testing.T) {
	months := MonthsInRange(date(2024, time.November, 15), date(2025, time.February, 1))

	assert.Equal(t, []time.Time{
		date(2024, time.November, 1),
		date(2024, time.December, 1),
		date(2025, time.January, 1),
		date(2025, time.February, 1),
	}, months)

	assert.Len(t, MonthsInRange(date(2025, time.March, 3), date(2025, time.March, 3)), 1)
}

func TestDistributeByMonth(t *testing.T) {
	t.Run("proporcional aos pesos do período", func(t *testing.T) {
		profile := profileOf(map[time.Month]int64{
			time.January:  40,
			time.February: 30,
			time.March:    30,
			time.April:    50,
		})

		allocations := DistributeByMonth(1200, profile, date(2025, time.January, 1), date(2025, time.March, 31))

		require.Len(t, allocations, 3)
		assert.Equal(t, MonthAllocation{Month: date(2025, time.January, 1), Events: 480}, allocations[0])
		assert.Equal(t, MonthAllocation{Month: date(2025, time.February, 1), Events: 360}, allocations[1])
		assert.Equal(t, MonthAllocation{Month: date(2025, time.March, 1), Events: 360}, allocations[2])
	})

	t.Run("arredondamento para cima pode passar do total", func(t *testing.T) {
		profile := profileOf(map[time.Month]int64{
			time.January:  1,
			time.February: 1,
			time.March:    1,
		})

		allocations := DistributeByMonth(10, profile, date(2025, time.January, 1), date(2025, time.March, 31))

		sum := 0
		for _, allocation := range allocations {
			assert.Equal(t, 4, allocation.Events)
			sum += allocation.Events
		}
		assert.Equal(t, 12, sum)
	})

	t.Run("meses de borda parciais recebem peso inteiro", func(t *testing.T) {
		profile := profileOf(map[time.Month]int64{
			time.January:  10,
			time.February: 10,
		})

		allocations := DistributeByMonth(100, profile, date(2025, time.January, 20), date(2025, time.February, 5))

		require.Len(t, allocations, 2)
		assert.Equal(t, 50, allocations[0].Events)
		assert.Equal(t, 50, allocations[1].Events)
	})

	t.Run("soma de pesos zero gera zero em todos os meses", func(t *testing.T) {
		profile := profileOf(map[time.Month]int64{time.December: 100})

		allocations := DistributeByMonth(500, profile, date(2025, time.January, 1), date(2025, time.February, 28))

		require.Len(t, allocations, 2)
		for _, allocation := range allocations {
			assert.Zero(t, allocation.Events)
		}
	})

	t.Run("perfil uniforme padrão", func(t *testing.T) {
		allocations := DistributeByMonth(296, DefaultSeasonalityProfile(), date(2025, time.January, 1), date(2025, time.March, 31))

		require.Len(t, allocations, 3)
		for _, allocation := range allocations {
			assert.Equal(t, 99, allocation.Events)
		}
	})
}
