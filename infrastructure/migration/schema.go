// Package migration cria as tabelas usadas pelo gerador de planos de alocação
package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/allocation-planner-api/infrastructure/database/postgres"
)

// Statements é aplicado em ordem; todos são idempotentes
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS carrier_products (
		carrier_id VARCHAR(64) NOT NULL,
		product_id VARCHAR(64) NOT NULL,
		active     BOOLEAN     NOT NULL DEFAULT TRUE,
		PRIMARY KEY (carrier_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS cities (
		id             VARCHAR(64)  PRIMARY KEY,
		account_id     VARCHAR(64)  NOT NULL,
		name           VARCHAR(255) NOT NULL,
		classification CHAR(1)      NOT NULL CHECK (classification IN ('A', 'B', 'C')),
		active         BOOLEAN      NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cities_account ON cities (account_id) WHERE active`,
	`CREATE TABLE IF NOT EXISTS classification_matrix (
		account_id     VARCHAR(64)   NOT NULL,
		classification CHAR(1)       NOT NULL CHECK (classification IN ('A', 'B', 'C')),
		pct_from_a     NUMERIC(7, 4) NOT NULL DEFAULT 0,
		pct_from_b     NUMERIC(7, 4) NOT NULL DEFAULT 0,
		pct_from_c     NUMERIC(7, 4) NOT NULL DEFAULT 0,
		PRIMARY KEY (account_id, classification)
	)`,
	`CREATE TABLE IF NOT EXISTS seasonality (
		account_id VARCHAR(64)   NOT NULL,
		product_id VARCHAR(64)   NOT NULL,
		year       INTEGER       NOT NULL,
		month      SMALLINT      NOT NULL CHECK (month BETWEEN 1 AND 12),
		percentage NUMERIC(7, 4) NOT NULL DEFAULT 0,
		PRIMARY KEY (account_id, product_id, year, month)
	)`,
	`CREATE TABLE IF NOT EXISTS panelists (
		id     VARCHAR(64) PRIMARY KEY,
		name   VARCHAR(255) NOT NULL,
		status VARCHAR(32)  NOT NULL DEFAULT 'available'
	)`,
	`CREATE TABLE IF NOT EXISTS nodes (
		code        VARCHAR(64) PRIMARY KEY,
		account_id  VARCHAR(64) NOT NULL,
		city_id     VARCHAR(64) NOT NULL REFERENCES cities (id),
		panelist_id VARCHAR(64) REFERENCES panelists (id),
		active      BOOLEAN     NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_nodes_account ON nodes (account_id) WHERE active`,
	`CREATE TABLE IF NOT EXISTS allocation_plans (
		id                       VARCHAR(32)  PRIMARY KEY,
		account_id               VARCHAR(64)  NOT NULL,
		carrier_id               VARCHAR(64)  NOT NULL,
		product_id               VARCHAR(64)  NOT NULL,
		start_date               DATE         NOT NULL,
		end_date                 DATE         NOT NULL,
		annual_target            INTEGER      NOT NULL,
		max_events_per_node_week INTEGER      NOT NULL,
		merge_strategy           VARCHAR(16)  NOT NULL,
		requested_by             VARCHAR(64)  NOT NULL,
		total_events             INTEGER      NOT NULL,
		generated_events         INTEGER      NOT NULL,
		unassigned_total         INTEGER      NOT NULL DEFAULT 0,
		unassigned_breakdown     JSONB        NOT NULL DEFAULT '[]',
		status                   VARCHAR(16)  NOT NULL DEFAULT 'draft',
		created_at               TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_allocation_plans_account ON allocation_plans (account_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_allocation_plans_status ON allocation_plans (status, created_at)`,
	`CREATE TABLE IF NOT EXISTS allocation_plan_events (
		id                    BIGSERIAL   PRIMARY KEY,
		plan_id               VARCHAR(32) NOT NULL REFERENCES allocation_plans (id) ON DELETE CASCADE,
		origin_node_code      VARCHAR(64) NOT NULL,
		destination_node_code VARCHAR(64) NOT NULL,
		scheduled_date        DATE        NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_allocation_plan_events_plan ON allocation_plan_events (plan_id)`,
}

// Apply executa todas as instruções numa única transação
func Apply(ctx context.Context, conn *postgres.Connection) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return applyStatements(ctx, tx)
	})
}

func applyStatements(ctx context.Context, q postgres.Queryer) error {
	for i, statement := range Statements {
		if _, err := q.ExecContext(ctx, statement); err != nil {
			return postgres.DecorateError(err, fmt.Sprintf("apply schema statement %d", i+1))
		}
	}

	logrus.WithField("statements", len(Statements)).Info("Schema aplicado com sucesso")
	return nil
}
