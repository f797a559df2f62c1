package planning

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/allocation-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
	"github.com/vfg2006/allocation-planner-api/pkg/apiErrors"
	"github.com/vfg2006/allocation-planner-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

var fixedNow = time.Date(2025, 1, 2, 10, 30, 0, 0, time.UTC)

type serviceMocks struct {
	eligibility *mocks.MockEligibilityRepository
	matrix      *mocks.MockClassificationMatrixRepository
	city        *mocks.MockCityRepository
	seasonality *mocks.MockSeasonalityRepository
	topology    *mocks.MockTopologyRepository
	plan        *mocks.MockAllocationPlanRepository
}

func newTestService(ctrl *gomock.Controller) (*Service, *serviceMocks) {
	m := &serviceMocks{
		eligibility: mocks.NewMockEligibilityRepository(ctrl),
		matrix:      mocks.NewMockClassificationMatrixRepository(ctrl),
		city:        mocks.NewMockCityRepository(ctrl),
		seasonality: mocks.NewMockSeasonalityRepository(ctrl),
		topology:    mocks.NewMockTopologyRepository(ctrl),
		plan:        mocks.NewMockAllocationPlanRepository(ctrl),
	}

	service := NewService(m.eligibility, m.matrix, m.city, m.seasonality, m.topology, m.plan, nil).
		WithRandSource(func() RandSource { return rand.New(rand.NewPCG(42, 42)) }).
		WithClock(func() time.Time { return fixedNow })

	return service, m
}

func validRequest() domain.PlanRequest {
	return domain.PlanRequest{
		AccountID:            "ACC001",
		CarrierID:            "CARRIER01",
		ProductID:            "PROD01",
		StartDate:            date(2025, time.January, 1),
		EndDate:              date(2025, time.March, 31),
		AnnualTarget:         1200,
		MaxEventsPerNodeWeek: 100,
		MergeStrategy:        domain.MergeStrategyAdd,
		RequestedBy:          "42",
	}
}

// scenarioNetwork monta 2 cidades A, 3 B e 5 C com dois nós cada
func scenarioNetwork() ([]domain.City, []domain.Node) {
	cities := append(citiesOf(domain.ClassificationA, "A1", "A2"), citiesOf(domain.ClassificationB, "B1", "B2", "B3")...)
	cities = append(cities, citiesOf(domain.ClassificationC, "C1", "C2", "C3", "C4", "C5")...)

	nodes := make([]domain.Node, 0, len(cities)*2)
	for _, city := range cities {
		nodes = append(nodes,
			node(city.ID+"-N2", city.ID, city.Classification),
			node(city.ID+"-N1", city.ID, city.Classification),
		)
	}
	return cities, nodes
}

func expectInputs(m *serviceMocks, rows []domain.ClassificationRow, cities []domain.City, profile *domain.SeasonalityProfile, nodes []domain.Node) {
	m.eligibility.EXPECT().IsCarrierAuthorized(gomock.Any(), "CARRIER01", "PROD01").Return(true, nil)
	m.matrix.EXPECT().GetByAccount(gomock.Any(), "ACC001").Return(rows, nil)
	m.city.EXPECT().ListActive(gomock.Any(), "ACC001").Return(cities, nil)
	m.seasonality.EXPECT().GetProfile(gomock.Any(), "ACC001", "PROD01", 2025).Return(profile, nil)
	m.topology.EXPECT().ListActiveNodes(gomock.Any(), "ACC001").Return(nodes, nil)
}

func assertPlanError(t *testing.T, err error, target error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, target)

	var planErr *PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, code, planErr.Code)
}

func TestService_Generate_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.PlanRequest)
	}{
		{name: "sem conta", mutate: func(r *domain.PlanRequest) { r.AccountID = " " }},
		{name: "sem transportadora", mutate: func(r *domain.PlanRequest) { r.CarrierID = "" }},
		{name: "sem produto", mutate: func(r *domain.PlanRequest) { r.ProductID = "" }},
		{name: "meta anual zero", mutate: func(r *domain.PlanRequest) { r.AnnualTarget = 0 }},
		{name: "capacidade negativa", mutate: func(r *domain.PlanRequest) { r.MaxEventsPerNodeWeek = -1 }},
		{name: "estratégia desconhecida", mutate: func(r *domain.PlanRequest) { r.MergeStrategy = "merge" }},
		{name: "fim antes do início", mutate: func(r *domain.PlanRequest) { r.EndDate = date(2024, time.December, 31) }},
		{name: "sem data", mutate: func(r *domain.PlanRequest) { r.StartDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, _ := newTestService(ctrl)
			request := validRequest()
			tt.mutate(&request)

			plan, err := service.Generate(context.Background(), request)

			assert.Nil(t, plan)
			assertPlanError(t, err, ErrInvalidRequest, apiErrors.ErrInvalidRequest)
		})
	}
}

func TestService_Generate_NotAuthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	// nenhum outro colaborador pode ser consultado
	m.eligibility.EXPECT().IsCarrierAuthorized(gomock.Any(), "CARRIER01", "PROD01").Return(false, nil)

	plan, err := service.Generate(context.Background(), validRequest())

	assert.Nil(t, plan)
	assertPlanError(t, err, ErrNotAuthorized, apiErrors.ErrCarrierNotAuthorized)
}

func TestService_Generate_DataSourceErrors(t *testing.T) {
	dbErr := errors.New("connection refused")

	t.Run("falha na habilitação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		m.eligibility.EXPECT().IsCarrierAuthorized(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, dbErr)

		_, err := service.Generate(context.Background(), validRequest())

		assertPlanError(t, err, ErrDataSource, apiErrors.ErrDatabaseOperation)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("falha na topologia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		cities, _ := scenarioNetwork()
		m.eligibility.EXPECT().IsCarrierAuthorized(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.matrix.EXPECT().GetByAccount(gomock.Any(), gomock.Any()).Return(nil, nil)
		m.city.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(cities, nil)
		m.seasonality.EXPECT().GetProfile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		m.topology.EXPECT().ListActiveNodes(gomock.Any(), gomock.Any()).Return(nil, dbErr)

		_, err := service.Generate(context.Background(), validRequest())

		assertPlanError(t, err, ErrDataSource, apiErrors.ErrDatabaseOperation)
	})
}

func TestService_Generate_EmptyNetwork(t *testing.T) {
	cities, nodes := scenarioNetwork()

	t.Run("sem cidades ativas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		expectInputs(m, nil, []domain.City{}, nil, nodes)

		plan, err := service.Generate(context.Background(), validRequest())

		assert.Nil(t, plan)
		assertPlanError(t, err, ErrNoActiveCities, apiErrors.ErrNoActiveCities)
	})

	t.Run("sem nós ativos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		expectInputs(m, nil, cities, nil, []domain.Node{})

		plan, err := service.Generate(context.Background(), validRequest())

		assert.Nil(t, plan)
		assertPlanError(t, err, ErrNoActiveNodes, apiErrors.ErrNoActiveNodes)
	})

	t.Run("nós sem panelista disponível não contam", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		idle := []domain.Node{{Code: "A1-N1", CityID: "A1", Classification: domain.ClassificationA, Active: true}}
		expectInputs(m, nil, cities, nil, idle)

		_, err := service.Generate(context.Background(), validRequest())

		assertPlanError(t, err, ErrNoActiveNodes, apiErrors.ErrNoActiveNodes)
	})
}

func TestService_Generate_PersistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	cities, nodes := scenarioNetwork()
	expectInputs(m, nil, cities, nil, nodes)
	m.plan.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))

	plan, err := service.Generate(context.Background(), validRequest())

	assert.Nil(t, plan)
	assertPlanError(t, err, ErrPersistenceFailure, apiErrors.ErrDatabaseOperation)
}

func TestService_Generate_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	cities, nodes := scenarioNetwork()
	expectInputs(m, nil, cities, nil, nodes)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan, err := service.Generate(ctx, validRequest())

	assert.Nil(t, plan)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Generate_Scenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	cities, nodes := scenarioNetwork()
	expectInputs(m, nil, cities, nil, nodes)

	var persisted *domain.DraftPlan
	m.plan.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, plan *domain.DraftPlan) error {
		persisted = plan
		return nil
	})

	plan, err := service.Generate(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Same(t, persisted, plan)

	// 1200 * 90 / 365 arredondado para cima; 99 por mês; 306 por mês somando as três classes
	assert.Equal(t, 296, plan.TotalEvents)
	assert.Equal(t, 918, plan.EventCount+plan.UnassignedTotal)
	assert.Equal(t, 918, plan.EventCount)
	assert.Zero(t, plan.UnassignedTotal)
	assert.Empty(t, plan.Unassigned)
	assert.Len(t, plan.Events, plan.EventCount)

	assert.Equal(t, domain.PlanStatusDraft, plan.Status)
	assert.Len(t, plan.ID, 12)
	assert.Equal(t, fixedNow, plan.CreatedAt)
	assert.Equal(t, "42", plan.Request.RequestedBy)

	classOf := make(map[string]domain.Classification, len(nodes))
	for _, n := range nodes {
		classOf[n.Code] = n.Classification
	}

	weekly := make(map[string]int)
	for _, event := range plan.Events {
		assert.NotEqual(t, event.OriginNodeCode, event.DestinationNodeCode)
		assert.Contains(t, classOf, event.OriginNodeCode)
		assert.Contains(t, classOf, event.DestinationNodeCode)
		assert.False(t, event.ScheduledDate.Before(date(2025, time.January, 1)))
		assert.False(t, event.ScheduledDate.After(date(2025, time.March, 31)))
		weekly[weekKey(event.ScheduledDate, event.DestinationNodeCode)]++
	}
	for key, count := range weekly {
		assert.LessOrEqual(t, count, 100, key)
	}
}

func TestService_Generate_ConfiguredMatrixAndClippedWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	cities, nodes := scenarioNetwork()
	rows := []domain.ClassificationRow{
		{
			Classification: domain.ClassificationA,
			FromA:          decimal.NewFromInt(100),
			FromB:          decimal.Zero,
			FromC:          decimal.Zero,
		},
	}
	profile := DefaultSeasonalityProfile()
	expectInputs(m, rows, cities, &profile, nodes)
	m.plan.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	request := validRequest()
	request.StartDate = date(2025, time.January, 10)
	request.EndDate = date(2025, time.January, 20)

	plan, err := service.Generate(context.Background(), request)

	require.NoError(t, err)
	for _, event := range plan.Events {
		assert.False(t, event.ScheduledDate.Before(request.StartDate))
		assert.False(t, event.ScheduledDate.After(request.EndDate))

		// cidades A só recebem tráfego vindo de nós A
		if event.DestinationNodeCode[0] == 'A' {
			assert.Equal(t, byte('A'), event.OriginNodeCode[0], event.OriginNodeCode)
		}
	}
}

func TestService_Generate_CityWithoutNodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	cities, nodes := scenarioNetwork()
	cities = append(cities, domain.City{ID: "C6", Name: "Cidade Isolada", Classification: domain.ClassificationC})
	expectInputs(m, nil, cities, nil, nodes)
	m.plan.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	plan, err := service.Generate(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, plan.Unassigned, 1)
	assert.Equal(t, "C6", plan.Unassigned[0].CityID)
	assert.Equal(t, "Cidade Isolada", plan.Unassigned[0].CityName)

	// com 6 cidades C cada uma recebe ceil(32,99/6) = 6 por classe de origem
	assert.Equal(t, 3*18, plan.Unassigned[0].Count)
	assert.Equal(t, plan.Unassigned[0].Count, plan.UnassignedTotal)
	for _, event := range plan.Events {
		assert.NotEqual(t, "C6", event.DestinationNodeCode[:2])
	}
}

func TestService_GetPlan(t *testing.T) {
	t.Run("plano inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		m.plan.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

		_, err := service.GetPlan(context.Background(), "missing")

		assertPlanError(t, err, ErrPlanNotFound, apiErrors.ErrPlanNotFound)
	})

	t.Run("eventos de plano inexistente não consultam a tabela de eventos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		m.plan.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

		_, err := service.ListPlanEvents(context.Background(), "missing")

		assertPlanError(t, err, ErrPlanNotFound, apiErrors.ErrPlanNotFound)
	})

	t.Run("eventos do plano", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		events := []domain.GeneratedEvent{{OriginNodeCode: "N1", DestinationNodeCode: "N2", ScheduledDate: date(2025, time.January, 3)}}
		m.plan.EXPECT().GetByID(gomock.Any(), "PLAN01").Return(&domain.DraftPlan{ID: "PLAN01"}, nil)
		m.plan.EXPECT().ListEvents(gomock.Any(), "PLAN01").Return(events, nil)

		result, err := service.ListPlanEvents(context.Background(), "PLAN01")

		require.NoError(t, err)
		assert.Equal(t, events, result)
	})

	t.Run("planos da conta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		m.plan.EXPECT().ListByAccount(gomock.Any(), "ACC001").Return([]*domain.DraftPlan{{ID: "PLAN01"}}, nil)

		plans, err := service.ListAccountPlans(context.Background(), "ACC001")

		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, "PLAN01", plans[0].ID)

		_, err = service.ListAccountPlans(context.Background(), "")
		assertPlanError(t, err, ErrInvalidRequest, apiErrors.ErrMissingRequiredData)
	})
}
