package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/allocation-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	allocationPlansTable      = "allocation_plans"
	allocationPlanEventsTable = "allocation_plan_events"
	defaultEventBatchSize     = 1000
)

var allocationPlanColumns = []string{
	"ap.id",
	"ap.account_id",
	"ap.carrier_id",
	"ap.product_id",
	"ap.start_date",
	"ap.end_date",
	"ap.annual_target",
	"ap.max_events_per_node_week",
	"ap.merge_strategy",
	"ap.requested_by",
	"ap.total_events",
	"ap.generated_events",
	"ap.unassigned_total",
	"ap.unassigned_breakdown",
	"ap.status",
	"ap.created_at",
}

type AllocationPlanRepository interface {
	// Create grava o cabeçalho e todos os eventos numa única transação
	Create(ctx context.Context, plan *domain.DraftPlan) error
	GetByID(ctx context.Context, planID string) (*domain.DraftPlan, error)
	ListEvents(ctx context.Context, planID string) ([]domain.GeneratedEvent, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.DraftPlan, error)
	DeleteStaleDrafts(ctx context.Context, olderThan time.Time) (int64, error)
}

type allocationPlanRepository struct {
	conn      *postgres.Connection
	batchSize int
}

func NewAllocationPlanRepository(conn *postgres.Connection, batchSize int) AllocationPlanRepository {
	if batchSize <= 0 {
		batchSize = defaultEventBatchSize
	}

	return &allocationPlanRepository{
		conn:      conn,
		batchSize: batchSize,
	}
}

func insertPlanQuery(plan *domain.DraftPlan) (squirrel.InsertBuilder, error) {
	breakdown, err := json.Marshal(plan.Unassigned)
	if err != nil {
		return squirrel.InsertBuilder{}, err
	}

	return squirrel.StatementBuilder.
		Insert(allocationPlansTable).
		Columns(
			"id",
			"account_id",
			"carrier_id",
			"product_id",
			"start_date",
			"end_date",
			"annual_target",
			"max_events_per_node_week",
			"merge_strategy",
			"requested_by",
			"total_events",
			"generated_events",
			"unassigned_total",
			"unassigned_breakdown",
			"status",
			"created_at",
		).
		Values(
			plan.ID,
			plan.Request.AccountID,
			plan.Request.CarrierID,
			plan.Request.ProductID,
			plan.Request.StartDate,
			plan.Request.EndDate,
			plan.Request.AnnualTarget,
			plan.Request.MaxEventsPerNodeWeek,
			plan.Request.MergeStrategy,
			plan.Request.RequestedBy,
			plan.TotalEvents,
			len(plan.Events),
			plan.UnassignedTotal,
			string(breakdown),
			plan.Status,
			plan.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar), nil
}

func insertEventsQuery(planID string, events []domain.GeneratedEvent) squirrel.InsertBuilder {
	query := squirrel.StatementBuilder.
		Insert(allocationPlanEventsTable).
		Columns("plan_id", "origin_node_code", "destination_node_code", "scheduled_date").
		PlaceholderFormat(squirrel.Dollar)

	for _, event := range events {
		query = query.Values(planID, event.OriginNodeCode, event.DestinationNodeCode, event.ScheduledDate)
	}

	return query
}

func (r *allocationPlanRepository) Create(ctx context.Context, plan *domain.DraftPlan) error {
	planQuery, err := insertPlanQuery(plan)
	if err != nil {
		return postgres.DecorateError(err, "encode unassigned breakdown")
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		sqlQuery, args, err := planQuery.ToSql()
		if err != nil {
			return postgres.DecorateError(err, "build allocation plan insert")
		}

		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return postgres.DecorateError(err, "insert allocation plan")
		}

		// Insere os eventos em lotes para não estourar o limite de parâmetros do Postgres
		for start := 0; start < len(plan.Events); start += r.batchSize {
			end := start + r.batchSize
			if end > len(plan.Events) {
				end = len(plan.Events)
			}

			sqlQuery, args, err := insertEventsQuery(plan.ID, plan.Events[start:end]).ToSql()
			if err != nil {
				return postgres.DecorateError(err, "build allocation plan events insert")
			}

			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return postgres.DecorateError(err, "insert allocation plan events")
			}
		}

		logrus.WithFields(logrus.Fields{
			"plan_id": plan.ID,
			"events":  len(plan.Events),
		}).Debug("Plano de alocação gravado")

		return nil
	})
}

func selectPlansQuery() squirrel.SelectBuilder {
	return squirrel.
		Select(allocationPlanColumns...).
		From(allocationPlansTable + " ap").
		PlaceholderFormat(squirrel.Dollar)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAllocationPlan(row rowScanner) (*domain.DraftPlan, error) {
	plan := &domain.DraftPlan{}
	var breakdown []byte

	err := row.Scan(
		&plan.ID,
		&plan.Request.AccountID,
		&plan.Request.CarrierID,
		&plan.Request.ProductID,
		&plan.Request.StartDate,
		&plan.Request.EndDate,
		&plan.Request.AnnualTarget,
		&plan.Request.MaxEventsPerNodeWeek,
		&plan.Request.MergeStrategy,
		&plan.Request.RequestedBy,
		&plan.TotalEvents,
		&plan.EventCount,
		&plan.UnassignedTotal,
		&breakdown,
		&plan.Status,
		&plan.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	plan.Unassigned = make([]domain.UnassignedCity, 0)
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &plan.Unassigned); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func (r *allocationPlanRepository) GetByID(ctx context.Context, planID string) (*domain.DraftPlan, error) {
	query, args, err := selectPlansQuery().Where(squirrel.Eq{"ap.id": planID}).ToSql()
	if err != nil {
		return nil, postgres.DecorateError(err, "build allocation plan query")
	}

	plan, err := scanAllocationPlan(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.DecorateError(err, "query allocation plan")
	}

	return plan, nil
}

func (r *allocationPlanRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.DraftPlan, error) {
	query, args, err := selectPlansQuery().
		Where(squirrel.Eq{"ap.account_id": accountID}).
		OrderBy("ap.created_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.DecorateError(err, "build allocation plans query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.DecorateError(err, "query allocation plans")
	}
	defer rows.Close()

	plans := make([]*domain.DraftPlan, 0)
	for rows.Next() {
		plan, err := scanAllocationPlan(rows)
		if err != nil {
			return nil, postgres.DecorateError(err, "scan allocation plan")
		}

		plans = append(plans, plan)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.DecorateError(err, "iterate allocation plans")
	}

	return plans, nil
}

func listEventsQuery(planID string) squirrel.SelectBuilder {
	return squirrel.
		Select("e.origin_node_code, e.destination_node_code, e.scheduled_date").
		From(allocationPlanEventsTable + " e").
		Where(squirrel.Eq{"e.plan_id": planID}).
		OrderBy("e.scheduled_date ASC", "e.destination_node_code ASC", "e.id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *allocationPlanRepository) ListEvents(ctx context.Context, planID string) ([]domain.GeneratedEvent, error) {
	query, args, err := listEventsQuery(planID).ToSql()
	if err != nil {
		return nil, postgres.DecorateError(err, "build allocation plan events query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.DecorateError(err, "query allocation plan events")
	}
	defer rows.Close()

	events := make([]domain.GeneratedEvent, 0)
	for rows.Next() {
		event := domain.GeneratedEvent{}
		if err := rows.Scan(&event.OriginNodeCode, &event.DestinationNodeCode, &event.ScheduledDate); err != nil {
			return nil, postgres.DecorateError(err, "scan allocation plan event")
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.DecorateError(err, "iterate allocation plan events")
	}

	return events, nil
}

func deleteStaleDraftsQuery(olderThan time.Time) squirrel.DeleteBuilder {
	return squirrel.
		Delete(allocationPlansTable).
		Where(squirrel.Eq{"status": domain.PlanStatusDraft}).
		Where(squirrel.Lt{"created_at": olderThan}).
		PlaceholderFormat(squirrel.Dollar)
}

// DeleteStaleDrafts remove rascunhos antigos; os eventos caem junto via ON DELETE CASCADE
func (r *allocationPlanRepository) DeleteStaleDrafts(ctx context.Context, olderThan time.Time) (int64, error) {
	query, args, err := deleteStaleDraftsQuery(olderThan).ToSql()
	if err != nil {
		return 0, postgres.DecorateError(err, "build stale drafts delete")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, postgres.DecorateError(err, "delete stale drafts")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, postgres.DecorateError(err, "read rows affected")
	}

	return deleted, nil
}
