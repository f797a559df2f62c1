package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/allocation-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
)

const (
	seasonalityTable = "seasonality s"
)

type SeasonalityRepository interface {
	// GetProfile retorna nil quando não há sazonalidade cadastrada para o ano
	GetProfile(ctx context.Context, accountID string, productID string, year int) (*domain.SeasonalityProfile, error)
}

type seasonalityRepository struct {
	conn *postgres.Connection
}

func NewSeasonalityRepository(conn *postgres.Connection) SeasonalityRepository {
	return &seasonalityRepository{
		conn: conn,
	}
}

func seasonalityQuery(accountID string, productID string, year int) squirrel.SelectBuilder {
	return squirrel.
		Select("s.month, s.percentage").
		From(seasonalityTable).
		Where(squirrel.Eq{
			"s.account_id": accountID,
			"s.product_id": productID,
			"s.year":       year,
		}).
		OrderBy("s.month ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *seasonalityRepository) GetProfile(ctx context.Context, accountID string, productID string, year int) (*domain.SeasonalityProfile, error) {
	query, args, err := seasonalityQuery(accountID, productID, year).ToSql()
	if err != nil {
		return nil, postgres.DecorateError(err, "build seasonality query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.DecorateError(err, "query seasonality")
	}
	defer rows.Close()

	profile := &domain.SeasonalityProfile{}
	found := false
	for rows.Next() {
		var month int
		var percentage decimal.Decimal
		if err := rows.Scan(&month, &percentage); err != nil {
			return nil, postgres.DecorateError(err, "scan seasonality")
		}

		if month < 1 || month > 12 {
			logrus.Warnf("Mês de sazonalidade inválido ignorado: %d (conta %s)", month, accountID)
			continue
		}

		profile.Percentages[month-1] = percentage
		found = true
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.DecorateError(err, "iterate seasonality")
	}

	if !found {
		return nil, nil
	}

	return profile, nil
}
