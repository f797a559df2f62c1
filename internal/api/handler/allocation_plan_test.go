package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/allocation-planner-api/internal/api/handler/router"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
	"github.com/vfg2006/allocation-planner-api/internal/usecases/planning"
	"github.com/vfg2006/allocation-planner-api/internal/usecases/planning/mocks"
	"github.com/vfg2006/allocation-planner-api/pkg/apiErrors"
	"github.com/vfg2006/allocation-planner-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

var (
	supervisor = &domain.Claims{UserID: 7, UserName: "Supervisora", UserRoleID: middleware.RoleSupervisor}
	analyst    = &domain.Claims{UserID: 9, UserName: "Analista", UserRoleID: middleware.RoleAnalyst}
	admin      = &domain.Claims{UserID: 1, UserName: "Admin", UserRoleID: middleware.RoleAdmin}
)

// authenticated simula o AuthMiddleware gravando as claims no contexto
func authenticated(next http.Handler, claims *domain.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.ContextKeyUser, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func serve(t *testing.T, routes []router.Route, claims *domain.Claims, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	rt := router.New(router.WithRoutes(routes...))
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()

	authenticated(rt, claims).ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func samplePlan() *domain.DraftPlan {
	return &domain.DraftPlan{
		ID: "PLANabc12345",
		Request: domain.PlanRequest{
			AccountID:            "ACC001",
			CarrierID:            "CARRIER01",
			ProductID:            "PROD01",
			StartDate:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:              time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			AnnualTarget:         1200,
			MaxEventsPerNodeWeek: 5,
			MergeStrategy:        domain.MergeStrategyAdd,
			RequestedBy:          "7",
		},
		TotalEvents:     296,
		EventCount:      900,
		UnassignedTotal: 18,
		Unassigned:      []domain.UnassignedCity{{CityID: "C6", CityName: "Cidade Isolada", Count: 18}},
		Status:          domain.PlanStatusDraft,
		CreatedAt:       time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

const createBody = `{
	"account_id": "ACC001",
	"carrier_id": "CARRIER01",
	"product_id": "PROD01",
	"start_date": "2025-01-01",
	"end_date": "2025-03-31",
	"annual_target": 1200,
	"max_events_per_node_week": 5,
	"merge_strategy": "add"
}`

func TestCreateAllocationPlan(t *testing.T) {
	t.Run("gera o plano com o usuário do token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAllocationPlanner(ctrl)
		service.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, request domain.PlanRequest) (*domain.DraftPlan, error) {
			assert.Equal(t, "7", request.RequestedBy)
			assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), request.StartDate)
			assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), request.EndDate)
			assert.Equal(t, domain.MergeStrategyAdd, request.MergeStrategy)
			assert.Equal(t, 5, request.MaxEventsPerNodeWeek)
			return samplePlan(), nil
		})

		rec := serve(t, AllocationPlans(service), supervisor, http.MethodPost, "/v1/allocation-plans", createBody)

		require.Equal(t, http.StatusCreated, rec.Code)

		var response domain.AllocationPlanResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "PLANabc12345", response.ID)
		assert.Equal(t, "2025-01-01", response.StartDate)
		assert.Equal(t, 900, response.GeneratedEvents)
		assert.Equal(t, 18, response.UnassignedTotal)
		require.Len(t, response.Unassigned, 1)
		assert.Equal(t, "Cidade Isolada", response.Unassigned[0].CityName)
	})

	t.Run("analista não pode gerar planos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAllocationPlanner(ctrl)

		rec := serve(t, AllocationPlans(service), analyst, http.MethodPost, "/v1/allocation-plans", createBody)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeAPIError(t, rec).Code)
	})

	t.Run("data em formato inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAllocationPlanner(ctrl)
		body := strings.Replace(createBody, "2025-01-01", "01/01/2025", 1)

		rec := serve(t, AllocationPlans(service), supervisor, http.MethodPost, "/v1/allocation-plans", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})

	t.Run("corpo inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAllocationPlanner(ctrl)

		rec := serve(t, AllocationPlans(service), supervisor, http.MethodPost, "/v1/allocation-plans", "{")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("erros do planejamento viram códigos da API", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{
				name:       "transportadora não habilitada",
				err:        planning.NewPlanError(planning.ErrNotAuthorized, apiErrors.ErrCarrierNotAuthorized, ""),
				wantStatus: http.StatusForbidden,
				wantCode:   apiErrors.ErrCarrierNotAuthorized,
			},
			{
				name:       "sem cidades",
				err:        planning.NewPlanError(planning.ErrNoActiveCities, apiErrors.ErrNoActiveCities, ""),
				wantStatus: http.StatusUnprocessableEntity,
				wantCode:   apiErrors.ErrNoActiveCities,
			},
			{
				name:       "falha ao gravar",
				err:        planning.NewPlanErrorWithCause(planning.ErrPersistenceFailure, apiErrors.ErrDatabaseOperation, errors.New("deadlock"), ""),
				wantStatus: http.StatusInternalServerError,
				wantCode:   apiErrors.ErrDatabaseOperation,
			},
			{
				name:       "requisição cancelada",
				err:        context.Canceled,
				wantStatus: http.StatusServiceUnavailable,
				wantCode:   apiErrors.ErrCommunication,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				service := mocks.NewMockAllocationPlanner(ctrl)
				service.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, tt.err)

				rec := serve(t, AllocationPlans(service), admin, http.MethodPost, "/v1/allocation-plans", createBody)

				assert.Equal(t, tt.wantStatus, rec.Code)
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
			})
		}
	})
}

func TestGetAllocationPlan(t *testing.T) {
	t.Run("plano encontrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAllocationPlanner(ctrl)
		service.EXPECT().GetPlan(gomock.Any(), "PLANabc12345").Return(samplePlan(), nil)

		rec := serve(t, AllocationPlans(service), analyst, http.MethodGet, "/v1/allocation-plans/PLANabc12345", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"draft"`)
	})

	t.Run("plano inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAllocationPlanner(ctrl)
		service.EXPECT().GetPlan(gomock.Any(), "missing").
			Return(nil, planning.NewPlanError(planning.ErrPlanNotFound, apiErrors.ErrPlanNotFound, "Plano missing não encontrado"))

		rec := serve(t, AllocationPlans(service), analyst, http.MethodGet, "/v1/allocation-plans/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		apiErr := decodeAPIError(t, rec)
		assert.Equal(t, apiErrors.ErrPlanNotFound, apiErr.Code)
		assert.Equal(t, "Plano missing não encontrado", apiErr.Details)
	})
}

func TestListAllocationPlanEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockAllocationPlanner(ctrl)
	service.EXPECT().ListPlanEvents(gomock.Any(), "PLANabc12345").Return([]domain.GeneratedEvent{
		{OriginNodeCode: "N-010", DestinationNodeCode: "N-020", ScheduledDate: time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)},
	}, nil)

	rec := serve(t, AllocationPlans(service), analyst, http.MethodGet, "/v1/allocation-plans/PLANabc12345/events", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var events []domain.AllocationPlanEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Equal(t, []domain.AllocationPlanEventResponse{
		{OriginNodeCode: "N-010", DestinationNodeCode: "N-020", ScheduledDate: "2025-02-14"},
	}, events)
}

func TestListAccountAllocationPlans(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockAllocationPlanner(ctrl)
	service.EXPECT().ListAccountPlans(gomock.Any(), "ACC001").Return([]*domain.DraftPlan{samplePlan()}, nil)

	rec := serve(t, AllocationPlans(service), analyst, http.MethodGet, "/v1/accounts/ACC001/allocation-plans", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var plans []domain.AllocationPlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, "PLANabc12345", plans[0].ID)
}
