package planning

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
	"github.com/vfg2006/allocation-planner-api/pkg/utils"
)

// MonthAllocation é o volume destinado a um mês do período
type MonthAllocation struct {
	Month  time.Time // primeiro dia do mês
	Events int
}

// PeriodTotal calcula ceil(annualTarget * dias / 365)
func PeriodTotal(annualTarget int, daysInPeriod int) int {
	if annualTarget <= 0 || daysInPeriod <= 0 {
		return 0
	}
	return (annualTarget*daysInPeriod + 364) / 365
}

// MonthsInRange lista o primeiro dia de cada mês que cruza [start, end]
func MonthsInRange(start time.Time, end time.Time) []time.Time {
	months := make([]time.Time, 0)
	last := utils.FirstDayOfMonth(end)
	for month := utils.FirstDayOfMonth(start); !month.After(last); month = month.AddDate(0, 1, 0) {
		months = append(months, month)
	}
	return months
}

// DistributeByMonth espalha o total pelos meses do período, proporcional ao peso de cada mês
// sobre a soma dos pesos dos meses do período. Meses de borda contam inteiros e cada mês
// arredonda para cima, então a soma pode passar do total.
func DistributeByMonth(total int, profile domain.SeasonalityProfile, start time.Time, end time.Time) []MonthAllocation {
	months := MonthsInRange(start, end)
	allocations := make([]MonthAllocation, len(months))

	weights := make([]decimal.Decimal, len(months))
	weightSum := decimal.Zero
	for i, month := range months {
		weight := profile.Weight(month.Month())
		if weight.IsNegative() {
			weight = decimal.Zero
		}
		weights[i] = weight
		weightSum = weightSum.Add(weight)
	}

	totalDec := decimal.NewFromInt(int64(total))
	for i, month := range months {
		allocations[i] = MonthAllocation{Month: month}
		if total <= 0 || !weightSum.IsPositive() {
			continue
		}

		allocations[i].Events = int(totalDec.Mul(weights[i]).Div(weightSum).Ceil().IntPart())
	}

	return allocations
}
