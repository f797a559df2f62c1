package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/allocation-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
)

const (
	nodesTable              = "nodes n"
	panelistStatusAvailable = "available"
)

type TopologyRepository interface {
	// ListActiveNodes retorna apenas nós ativos, de cidades ativas, cujo panelista está disponível
	ListActiveNodes(ctx context.Context, accountID string) ([]domain.Node, error)
}

type topologyRepository struct {
	conn *postgres.Connection
}

func NewTopologyRepository(conn *postgres.Connection) TopologyRepository {
	return &topologyRepository{
		conn: conn,
	}
}

func activeNodesQuery(accountID string) squirrel.SelectBuilder {
	return squirrel.
		Select("n.code, n.city_id, c.classification, n.active, p.status").
		From(nodesTable).
		Join("cities c ON c.id = n.city_id").
		Join("panelists p ON p.id = n.panelist_id").
		Where(squirrel.Eq{
			"n.account_id": accountID,
			"n.active":     true,
			"c.active":     true,
			"p.status":     panelistStatusAvailable,
		}).
		OrderBy("n.code ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *topologyRepository) ListActiveNodes(ctx context.Context, accountID string) ([]domain.Node, error) {
	query, args, err := activeNodesQuery(accountID).ToSql()
	if err != nil {
		return nil, postgres.DecorateError(err, "build topology query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.DecorateError(err, "query topology")
	}
	defer rows.Close()

	nodes := make([]domain.Node, 0)
	for rows.Next() {
		node := domain.Node{}
		var panelistStatus string
		if err := rows.Scan(&node.Code, &node.CityID, &node.Classification, &node.Active, &panelistStatus); err != nil {
			return nil, postgres.DecorateError(err, "scan node")
		}

		node.HasActiveOperator = panelistStatus == panelistStatusAvailable
		nodes = append(nodes, node)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.DecorateError(err, "iterate topology")
	}

	return nodes, nil
}
