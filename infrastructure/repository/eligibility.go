// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/allocation-planner-api/infrastructure/database/postgres"
)

const (
	carrierProductsTable = "carrier_products cp"
)

type EligibilityRepository interface {
	IsCarrierAuthorized(ctx context.Context, carrierID string, productID string) (bool, error)
}

type eligibilityRepository struct {
	conn *postgres.Connection
}

func NewEligibilityRepository(conn *postgres.Connection) EligibilityRepository {
	return &eligibilityRepository{
		conn: conn,
	}
}

func carrierAuthorizedQuery(carrierID string, productID string) squirrel.SelectBuilder {
	return squirrel.
		Select("1").
		From(carrierProductsTable).
		Where(squirrel.Eq{
			"cp.carrier_id": carrierID,
			"cp.product_id": productID,
			"cp.active":     true,
		}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)
}

// IsCarrierAuthorized verifica se existe vínculo ativo entre a transportadora e o produto
func (r *eligibilityRepository) IsCarrierAuthorized(ctx context.Context, carrierID string, productID string) (bool, error) {
	query, args, err := carrierAuthorizedQuery(carrierID, productID).ToSql()
	if err != nil {
		return false, postgres.DecorateError(err, "build carrier product query")
	}

	var found int
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, postgres.DecorateError(err, "query carrier product")
	}

	return true, nil
}
