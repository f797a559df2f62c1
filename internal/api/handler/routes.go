package handler

import (
	"net/http"

	"github.com/vfg2006/allocation-planner-api/internal/api/handler/router"
	"github.com/vfg2006/allocation-planner-api/internal/usecases/planning"
	"github.com/vfg2006/allocation-planner-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func AllocationPlans(service planning.AllocationPlanner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/allocation-plans",
			Method:      http.MethodPost,
			Handler:     CreateAllocationPlan(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/allocation-plans/:id",
			Method:      http.MethodGet,
			Handler:     GetAllocationPlan(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/allocation-plans/:id/events",
			Method:      http.MethodGet,
			Handler:     ListAllocationPlanEvents(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:id/allocation-plans",
			Method:      http.MethodGet,
			Handler:     ListAccountAllocationPlans(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/jobs/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
