package planning

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)

	// equalThird é usado nas linhas da matriz que a conta não configurou
	equalThird = hundred.Div(decimal.NewFromInt(3))

	// flatMonthWeight é o peso mensal (~8,33%) quando não há sazonalidade cadastrada
	flatMonthWeight = hundred.Div(decimal.NewFromInt(12))
)

// DefaultClassificationRow divide o tráfego da classe de destino em terços iguais
func DefaultClassificationRow(destination domain.Classification) domain.ClassificationRow {
	return domain.ClassificationRow{
		Classification: destination,
		FromA:          equalThird,
		FromB:          equalThird,
		FromC:          equalThird,
	}
}

// DefaultSeasonalityProfile distribui o volume anual igualmente entre os meses
func DefaultSeasonalityProfile() domain.SeasonalityProfile {
	profile := domain.SeasonalityProfile{}
	for i := range profile.Percentages {
		profile.Percentages[i] = flatMonthWeight
	}
	return profile
}

// BuildClassificationMatrix completa com terços iguais as classes sem linha configurada
func BuildClassificationMatrix(rows []domain.ClassificationRow) domain.ClassificationMatrix {
	matrix := make(domain.ClassificationMatrix, len(domain.Classifications))
	for _, row := range rows {
		if !row.Classification.Valid() {
			continue
		}
		matrix[row.Classification] = row
	}

	for _, class := range domain.Classifications {
		if _, ok := matrix[class]; !ok {
			matrix[class] = DefaultClassificationRow(class)
		}
	}

	return matrix
}
