package planning

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/allocation-planner-api/infrastructure/repository"
	"github.com/vfg2006/allocation-planner-api/internal/config"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
	"github.com/vfg2006/allocation-planner-api/pkg/apiErrors"
	"github.com/vfg2006/allocation-planner-api/pkg/log"
	"github.com/vfg2006/allocation-planner-api/pkg/utils"
)

type AllocationPlanner interface {
	Generate(ctx context.Context, request domain.PlanRequest) (*domain.DraftPlan, error)
	GetPlan(ctx context.Context, planID string) (*domain.DraftPlan, error)
	ListPlanEvents(ctx context.Context, planID string) ([]domain.GeneratedEvent, error)
	ListAccountPlans(ctx context.Context, accountID string) ([]*domain.DraftPlan, error)
}

type Service struct {
	eligibilityRepo repository.EligibilityRepository
	matrixRepo      repository.ClassificationMatrixRepository
	cityRepo        repository.CityRepository
	seasonalityRepo repository.SeasonalityRepository
	topologyRepo    repository.TopologyRepository
	planRepo        repository.AllocationPlanRepository
	cfg             *config.Config

	// newRand cria uma fonte por execução; *rand.Rand não é seguro para uso concorrente
	newRand func() RandSource
	now     func() time.Time
}

func NewService(
	eligibilityRepo repository.EligibilityRepository,
	matrixRepo repository.ClassificationMatrixRepository,
	cityRepo repository.CityRepository,
	seasonalityRepo repository.SeasonalityRepository,
	topologyRepo repository.TopologyRepository,
	planRepo repository.AllocationPlanRepository,
	cfg *config.Config,
) *Service {
	s := &Service{
		eligibilityRepo: eligibilityRepo,
		matrixRepo:      matrixRepo,
		cityRepo:        cityRepo,
		seasonalityRepo: seasonalityRepo,
		topologyRepo:    topologyRepo,
		planRepo:        planRepo,
		cfg:             cfg,
		now:             time.Now,
	}

	seed := uint64(0)
	if cfg != nil {
		seed = cfg.Planning.RandomSeed
	}
	s.newRand = func() RandSource {
		if seed == 0 {
			return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
		}
		return rand.New(rand.NewPCG(seed, seed))
	}

	return s
}

// WithRandSource troca a fonte de aleatoriedade de todas as execuções
func (s *Service) WithRandSource(factory func() RandSource) *Service {
	s.newRand = factory
	return s
}

// WithClock troca o relógio usado no carimbo de criação do plano
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Generate monta um plano rascunho para o pedido e o persiste.
// Nada é gravado quando a execução falha ou o contexto é cancelado.
func (s *Service) Generate(ctx context.Context, request domain.PlanRequest) (*domain.DraftPlan, error) {
	request, err := normalizeRequest(request)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id":     request.AccountID,
		"plan_carrier":   request.CarrierID,
		"plan_product":   request.ProductID,
		"plan_start":     request.StartDate.Format(time.DateOnly),
		"plan_end":       request.EndDate.Format(time.DateOnly),
		"plan_requester": request.RequestedBy,
	})

	authorized, err := s.eligibilityRepo.IsCarrierAuthorized(ctx, request.CarrierID, request.ProductID)
	if err != nil {
		logger.WithError(err).Error("Erro ao verificar habilitação da transportadora")
		return nil, NewPlanErrorWithCause(ErrDataSource, apiErrors.ErrDatabaseOperation,
			errors.Wrap(err, "check carrier eligibility"), "Falha ao verificar habilitação da transportadora")
	}
	if !authorized {
		logger.Warn("Transportadora não habilitada para o produto")
		return nil, NewPlanError(ErrNotAuthorized, apiErrors.ErrCarrierNotAuthorized,
			"Transportadora "+request.CarrierID+" não habilitada para o produto "+request.ProductID)
	}

	inputs, err := s.loadInputs(ctx, request)
	if err != nil {
		logger.WithError(err).Error("Erro ao carregar dados do planejamento")
		return nil, err
	}

	if len(inputs.cities) == 0 {
		return nil, NewPlanError(ErrNoActiveCities, apiErrors.ErrNoActiveCities, "Conta sem cidades ativas")
	}
	if len(inputs.nodes) == 0 {
		return nil, NewPlanError(ErrNoActiveNodes, apiErrors.ErrNoActiveNodes, "Conta sem nós ativos com panelista disponível")
	}

	total := PeriodTotal(request.AnnualTarget, request.DaysInPeriod())
	months := DistributeByMonth(total, inputs.profile, request.StartDate, request.EndDate)

	destinations := make(map[string][]domain.Node, len(inputs.cities))
	for _, node := range inputs.nodes {
		destinations[node.CityID] = append(destinations[node.CityID], node)
	}

	engine := newPlacementEngine(s.newRand(), inputs.nodes, request.MaxEventsPerNodeWeek)
	states := make(map[string]*placementState, len(inputs.cities))
	unassigned := newUnassignedTally()
	events := make([]domain.GeneratedEvent, 0, total)

	for _, month := range months {
		if err := ctx.Err(); err != nil {
			logger.WithError(err).Warn("Geração de plano cancelada")
			return nil, err
		}

		window := newPlacementWindow(
			utils.MaxDate(month.Month, request.StartDate),
			utils.MinDate(utils.LastDayOfMonth(month.Month), request.EndDate),
		)

		for _, allocation := range DistributeByClassification(month.Events, inputs.matrix, inputs.cities) {
			if err := ctx.Err(); err != nil {
				logger.WithError(err).Warn("Geração de plano cancelada")
				return nil, err
			}

			state, ok := states[allocation.City.ID]
			if !ok {
				state = newPlacementState(destinations[allocation.City.ID])
				states[allocation.City.ID] = state
			}

			result := engine.placeCity(state, allocation, window)
			events = append(events, result.events...)
			unassigned.add(allocation.City, result.unassigned)
		}
	}

	planID, err := utils.GenerateID()
	if err != nil {
		return nil, NewPlanErrorWithCause(ErrPersistenceFailure, apiErrors.ErrInternalServer,
			errors.Wrap(err, "generate plan id"), "Falha ao gerar identificador do plano")
	}

	plan := &domain.DraftPlan{
		ID:              planID,
		Request:         request,
		TotalEvents:     total,
		EventCount:      len(events),
		Events:          events,
		Unassigned:      unassigned.cities,
		UnassignedTotal: unassigned.total,
		Status:          domain.PlanStatusDraft,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		logger.WithError(err).WithField("plan_id", plan.ID).Error("Erro ao persistir plano rascunho")
		return nil, NewPlanErrorWithCause(ErrPersistenceFailure, apiErrors.ErrDatabaseOperation,
			errors.Wrap(err, "persist draft plan"), "Falha ao gravar o plano rascunho")
	}

	logger.WithFields(log.Fields{
		"plan_id":               plan.ID,
		"plan_total_events":     plan.TotalEvents,
		"plan_generated_events": plan.EventCount,
		"plan_unassigned":       plan.UnassignedTotal,
	}).Info("Plano rascunho gerado")

	return plan, nil
}

func (s *Service) GetPlan(ctx context.Context, planID string) (*domain.DraftPlan, error) {
	if strings.TrimSpace(planID) == "" {
		return nil, NewPlanError(ErrInvalidRequest, apiErrors.ErrMissingRequiredData, "ID do plano é obrigatório")
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, NewPlanErrorWithCause(ErrDataSource, apiErrors.ErrDatabaseOperation,
			errors.Wrap(err, "get allocation plan"), "Falha ao buscar plano")
	}
	if plan == nil {
		return nil, NewPlanError(ErrPlanNotFound, apiErrors.ErrPlanNotFound, "Plano "+planID+" não encontrado")
	}

	return plan, nil
}

func (s *Service) ListPlanEvents(ctx context.Context, planID string) ([]domain.GeneratedEvent, error) {
	if _, err := s.GetPlan(ctx, planID); err != nil {
		return nil, err
	}

	events, err := s.planRepo.ListEvents(ctx, planID)
	if err != nil {
		return nil, NewPlanErrorWithCause(ErrDataSource, apiErrors.ErrDatabaseOperation,
			errors.Wrap(err, "list allocation plan events"), "Falha ao listar eventos do plano")
	}

	return events, nil
}

func (s *Service) ListAccountPlans(ctx context.Context, accountID string) ([]*domain.DraftPlan, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, NewPlanError(ErrInvalidRequest, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório")
	}

	plans, err := s.planRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, NewPlanErrorWithCause(ErrDataSource, apiErrors.ErrDatabaseOperation,
			errors.Wrap(err, "list account allocation plans"), "Falha ao listar planos da conta")
	}

	return plans, nil
}

// planningInputs reúne tudo que a execução lê dos colaboradores
type planningInputs struct {
	matrix  domain.ClassificationMatrix
	cities  []domain.City
	profile domain.SeasonalityProfile
	nodes   []domain.Node
}

func (s *Service) loadInputs(ctx context.Context, request domain.PlanRequest) (*planningInputs, error) {
	rows, err := s.matrixRepo.GetByAccount(ctx, request.AccountID)
	if err != nil {
		return nil, NewPlanErrorWithCause(ErrDataSource, apiErrors.ErrDatabaseOperation,
			errors.Wrap(err, "load classification matrix"), "Falha ao carregar matriz de classificação")
	}

	cities, err := s.cityRepo.ListActive(ctx, request.AccountID)
	if err != nil {
		return nil, NewPlanErrorWithCause(ErrDataSource, apiErrors.ErrDatabaseOperation,
			errors.Wrap(err, "load active cities"), "Falha ao carregar cidades ativas")
	}

	profile, err := s.seasonalityRepo.GetProfile(ctx, request.AccountID, request.ProductID, request.StartDate.Year())
	if err != nil {
		return nil, NewPlanErrorWithCause(ErrDataSource, apiErrors.ErrDatabaseOperation,
			errors.Wrap(err, "load seasonality profile"), "Falha ao carregar sazonalidade")
	}
	if profile == nil {
		defaultProfile := DefaultSeasonalityProfile()
		profile = &defaultProfile
	}

	nodes, err := s.topologyRepo.ListActiveNodes(ctx, request.AccountID)
	if err != nil {
		return nil, NewPlanErrorWithCause(ErrDataSource, apiErrors.ErrDatabaseOperation,
			errors.Wrap(err, "load network topology"), "Falha ao carregar topologia da rede")
	}

	eligible := make([]domain.Node, 0, len(nodes))
	for _, node := range nodes {
		if node.Active && node.HasActiveOperator {
			eligible = append(eligible, node)
		}
	}

	return &planningInputs{
		matrix:  BuildClassificationMatrix(rows),
		cities:  cities,
		profile: *profile,
		nodes:   eligible,
	}, nil
}

// normalizeRequest valida o pedido e trunca as datas para o dia em UTC
func normalizeRequest(request domain.PlanRequest) (domain.PlanRequest, error) {
	invalid := func(details string) (domain.PlanRequest, error) {
		return request, NewPlanError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, details)
	}

	request.AccountID = strings.TrimSpace(request.AccountID)
	request.CarrierID = strings.TrimSpace(request.CarrierID)
	request.ProductID = strings.TrimSpace(request.ProductID)

	switch {
	case request.AccountID == "":
		return invalid("account_id é obrigatório")
	case request.CarrierID == "":
		return invalid("carrier_id é obrigatório")
	case request.ProductID == "":
		return invalid("product_id é obrigatório")
	case request.StartDate.IsZero() || request.EndDate.IsZero():
		return invalid("start_date e end_date são obrigatórios")
	case request.AnnualTarget <= 0:
		return invalid("annual_target deve ser positivo")
	case request.MaxEventsPerNodeWeek <= 0:
		return invalid("max_events_per_node_week deve ser positivo")
	case !request.MergeStrategy.Valid():
		return invalid("merge_strategy deve ser add ou replace")
	}

	request.StartDate = time.Date(request.StartDate.Year(), request.StartDate.Month(), request.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	request.EndDate = time.Date(request.EndDate.Year(), request.EndDate.Month(), request.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	if request.EndDate.Before(request.StartDate) {
		return invalid("start_date deve ser anterior ou igual a end_date")
	}

	return request, nil
}

// unassignedTally soma os não atribuídos por cidade, na ordem em que aparecem
type unassignedTally struct {
	cities []domain.UnassignedCity
	index  map[string]int
	total  int
}

func newUnassignedTally() *unassignedTally {
	return &unassignedTally{
		cities: make([]domain.UnassignedCity, 0),
		index:  make(map[string]int),
	}
}

func (t *unassignedTally) add(city domain.City, count int) {
	if count <= 0 {
		return
	}

	t.total += count
	if i, ok := t.index[city.ID]; ok {
		t.cities[i].Count += count
		return
	}

	t.index[city.ID] = len(t.cities)
	t.cities = append(t.cities, domain.UnassignedCity{
		CityID:   city.ID,
		CityName: city.Name,
		Count:    count,
	})
}
