package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
	"github.com/vfg2006/allocation-planner-api/internal/usecases/planning"
	"github.com/vfg2006/allocation-planner-api/pkg/apiErrors"
	"github.com/vfg2006/allocation-planner-api/pkg/log"
	"github.com/vfg2006/allocation-planner-api/pkg/middleware"
	"github.com/vfg2006/allocation-planner-api/pkg/utils"
)

func CreateAllocationPlan(service planning.AllocationPlanner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var body domain.CreateAllocationPlanRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if body.StartDate == "" || body.EndDate == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "start_date e end_date são obrigatórios", nil)
			return
		}

		startDate, err := utils.ParseDate(body.StartDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date deve estar no formato YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(body.EndDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date deve estar no formato YYYY-MM-DD", nil)
			return
		}

		plan, err := service.Generate(r.Context(), domain.PlanRequest{
			AccountID:            body.AccountID,
			CarrierID:            body.CarrierID,
			ProductID:            body.ProductID,
			StartDate:            *startDate,
			EndDate:              *endDate,
			AnnualTarget:         body.AnnualTarget,
			MaxEventsPerNodeWeek: body.MaxEventsPerNodeWeek,
			MergeStrategy:        domain.MergeStrategy(body.MergeStrategy),
			RequestedBy:          strconv.Itoa(userClaims.UserID),
		})
		if err != nil {
			logger.WithError(err).Error("Erro ao gerar plano de alocação")
			writePlanningError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, domain.NewAllocationPlanResponse(plan))
	})
}

func GetAllocationPlan(service planning.AllocationPlanner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		planID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		plan, err := service.GetPlan(r.Context(), planID)
		if err != nil {
			writePlanningError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, domain.NewAllocationPlanResponse(plan))
	})
}

func ListAllocationPlanEvents(service planning.AllocationPlanner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		planID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		events, err := service.ListPlanEvents(r.Context(), planID)
		if err != nil {
			writePlanningError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, domain.NewAllocationPlanEventResponses(events))
	})
}

func ListAccountAllocationPlans(service planning.AllocationPlanner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		plans, err := service.ListAccountPlans(r.Context(), accountID)
		if err != nil {
			writePlanningError(w, err)
			return
		}

		response := make([]*domain.AllocationPlanResponse, 0, len(plans))
		for _, plan := range plans {
			response = append(response, domain.NewAllocationPlanResponse(plan))
		}

		writeJSON(w, http.StatusOK, response)
	})
}

func writePlanningError(w http.ResponseWriter, err error) {
	var planErr *planning.PlanError
	if errors.As(err, &planErr) {
		var details any
		if planErr.Details != "" {
			details = planErr.Details
		}
		apiErr := apiErrors.FromError(planErr.Err, planErr.Code)
		apiErrors.WriteError(w, apiErr.Code, apiErr.Message, details)
		return
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		apiErrors.WriteError(w, apiErrors.ErrCommunication, "Geração de plano interrompida", nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar plano de alocação", nil)
}
