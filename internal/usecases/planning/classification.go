package planning

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
)

// CityAllocation é a cota mensal de uma cidade de destino, separada pela classe de origem exigida
type CityAllocation struct {
	City  domain.City
	FromA int
	FromB int
	FromC int

	// Share é a cota da cidade antes do arredondamento (tierTotal / cidades da classe)
	Share decimal.Decimal
}

// From retorna a quantidade que deve vir da classe de origem informada
func (a CityAllocation) From(origin domain.Classification) int {
	switch origin {
	case domain.ClassificationA:
		return a.FromA
	case domain.ClassificationB:
		return a.FromB
	case domain.ClassificationC:
		return a.FromC
	}
	return 0
}

func (a CityAllocation) Total() int {
	return a.FromA + a.FromB + a.FromC
}

// DistributeByClassification reparte o volume do mês entre as cidades ativas usando a matriz.
// Classes sem cidade ativa são descartadas, sem redistribuição. Cada sub-cota arredonda para cima.
func DistributeByClassification(monthEvents int, matrix domain.ClassificationMatrix, cities []domain.City) []CityAllocation {
	byClass := make(map[domain.Classification][]domain.City, len(domain.Classifications))
	for _, city := range cities {
		byClass[city.Classification] = append(byClass[city.Classification], city)
	}

	allocations := make([]CityAllocation, 0, len(cities))
	events := decimal.NewFromInt(int64(monthEvents))

	for _, destination := range domain.Classifications {
		classCities := byClass[destination]
		if len(classCities) == 0 {
			continue
		}

		row, ok := matrix[destination]
		if !ok {
			row = DefaultClassificationRow(destination)
		}

		from := make(map[domain.Classification]decimal.Decimal, len(domain.Classifications))
		tierTotal := decimal.Zero
		for _, origin := range domain.Classifications {
			pct := row.Percent(origin)
			if pct.IsNegative() {
				pct = decimal.Zero
			}
			from[origin] = events.Mul(pct).Div(hundred)
			tierTotal = tierTotal.Add(from[origin])
		}

		cityCount := decimal.NewFromInt(int64(len(classCities)))
		share := tierTotal.Div(cityCount)

		// perCity * fromX / tierTotal == fromX / cidades da classe
		counts := make(map[domain.Classification]int, len(domain.Classifications))
		if tierTotal.IsPositive() {
			for _, origin := range domain.Classifications {
				counts[origin] = int(from[origin].Div(cityCount).Ceil().IntPart())
			}
		}

		for _, city := range classCities {
			allocations = append(allocations, CityAllocation{
				City:  city,
				FromA: counts[domain.ClassificationA],
				FromB: counts[domain.ClassificationB],
				FromC: counts[domain.ClassificationC],
				Share: share,
			})
		}
	}

	return allocations
}
