package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/allocation-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
)

const (
	classificationMatrixTable = "classification_matrix cm"
)

type ClassificationMatrixRepository interface {
	GetByAccount(ctx context.Context, accountID string) ([]domain.ClassificationRow, error)
}

type classificationMatrixRepository struct {
	conn *postgres.Connection
}

func NewClassificationMatrixRepository(conn *postgres.Connection) ClassificationMatrixRepository {
	return &classificationMatrixRepository{
		conn: conn,
	}
}

func classificationMatrixQuery(accountID string) squirrel.SelectBuilder {
	return squirrel.
		Select("cm.classification, cm.pct_from_a, cm.pct_from_b, cm.pct_from_c").
		From(classificationMatrixTable).
		Where(squirrel.Eq{"cm.account_id": accountID}).
		OrderBy("cm.classification ASC").
		PlaceholderFormat(squirrel.Dollar)
}

// GetByAccount retorna de 0 a 3 linhas da matriz de classificação da conta
func (r *classificationMatrixRepository) GetByAccount(ctx context.Context, accountID string) ([]domain.ClassificationRow, error) {
	query, args, err := classificationMatrixQuery(accountID).ToSql()
	if err != nil {
		return nil, postgres.DecorateError(err, "build classification matrix query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.DecorateError(err, "query classification matrix")
	}
	defer rows.Close()

	matrix := make([]domain.ClassificationRow, 0, len(domain.Classifications))
	for rows.Next() {
		row := domain.ClassificationRow{}
		if err := rows.Scan(&row.Classification, &row.FromA, &row.FromB, &row.FromC); err != nil {
			return nil, postgres.DecorateError(err, "scan classification matrix row")
		}

		matrix = append(matrix, row)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.DecorateError(err, "iterate classification matrix")
	}

	return matrix, nil
}
