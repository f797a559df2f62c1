package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/allocation-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
)

const (
	citiesTable = "cities c"
)

type CityRepository interface {
	ListActive(ctx context.Context, accountID string) ([]domain.City, error)
}

type cityRepository struct {
	conn *postgres.Connection
}

func NewCityRepository(conn *postgres.Connection) CityRepository {
	return &cityRepository{
		conn: conn,
	}
}

func activeCitiesQuery(accountID string) squirrel.SelectBuilder {
	return squirrel.
		Select("c.id, c.name, c.classification").
		From(citiesTable).
		Where(squirrel.Eq{"c.account_id": accountID, "c.active": true}).
		OrderBy("c.name ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *cityRepository) ListActive(ctx context.Context, accountID string) ([]domain.City, error) {
	query, args, err := activeCitiesQuery(accountID).ToSql()
	if err != nil {
		return nil, postgres.DecorateError(err, "build active cities query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.DecorateError(err, "query active cities")
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		city := domain.City{}
		if err := rows.Scan(&city.ID, &city.Name, &city.Classification); err != nil {
			return nil, postgres.DecorateError(err, "scan city")
		}

		cities = append(cities, city)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.DecorateError(err, "iterate cities")
	}

	return cities, nil
}
