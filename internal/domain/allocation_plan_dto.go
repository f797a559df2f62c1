package domain

import "time"

// CreateAllocationPlanRequest é o corpo recebido pela API, com datas no formato YYYY-MM-DD
type CreateAllocationPlanRequest struct {
	AccountID            string `json:"account_id"`
	CarrierID            string `json:"carrier_id"`
	ProductID            string `json:"product_id"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	AnnualTarget         int    `json:"annual_target"`
	MaxEventsPerNodeWeek int    `json:"max_events_per_node_week"`
	MergeStrategy        string `json:"merge_strategy"`
}

type AllocationPlanResponse struct {
	ID                   string           `json:"id"`
	AccountID            string           `json:"account_id"`
	CarrierID            string           `json:"carrier_id"`
	ProductID            string           `json:"product_id"`
	StartDate            string           `json:"start_date"`
	EndDate              string           `json:"end_date"`
	AnnualTarget         int              `json:"annual_target"`
	MaxEventsPerNodeWeek int              `json:"max_events_per_node_week"`
	MergeStrategy        MergeStrategy    `json:"merge_strategy"`
	RequestedBy          string           `json:"requested_by"`
	TotalEvents          int              `json:"total_events"`
	GeneratedEvents      int              `json:"generated_events"`
	UnassignedTotal      int              `json:"unassigned_total"`
	Unassigned           []UnassignedCity `json:"unassigned"`
	Status               PlanStatus       `json:"status"`
	CreatedAt            time.Time        `json:"created_at"`
}

type AllocationPlanEventResponse struct {
	OriginNodeCode      string `json:"origin_node_code"`
	DestinationNodeCode string `json:"destination_node_code"`
	ScheduledDate       string `json:"scheduled_date"`
}

// NewAllocationPlanResponse converte um plano para o formato de resposta da API
func NewAllocationPlanResponse(plan *DraftPlan) *AllocationPlanResponse {
	unassigned := plan.Unassigned
	if unassigned == nil {
		unassigned = []UnassignedCity{}
	}

	return &AllocationPlanResponse{
		ID:                   plan.ID,
		AccountID:            plan.Request.AccountID,
		CarrierID:            plan.Request.CarrierID,
		ProductID:            plan.Request.ProductID,
		StartDate:            plan.Request.StartDate.Format(time.DateOnly),
		EndDate:              plan.Request.EndDate.Format(time.DateOnly),
		AnnualTarget:         plan.Request.AnnualTarget,
		MaxEventsPerNodeWeek: plan.Request.MaxEventsPerNodeWeek,
		MergeStrategy:        plan.Request.MergeStrategy,
		RequestedBy:          plan.Request.RequestedBy,
		TotalEvents:          plan.TotalEvents,
		GeneratedEvents:      plan.EventCount,
		UnassignedTotal:      plan.UnassignedTotal,
		Unassigned:           unassigned,
		Status:               plan.Status,
		CreatedAt:            plan.CreatedAt,
	}
}

func NewAllocationPlanEventResponses(events []GeneratedEvent) []AllocationPlanEventResponse {
	response := make([]AllocationPlanEventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, AllocationPlanEventResponse{
			OriginNodeCode:      event.OriginNodeCode,
			DestinationNodeCode: event.DestinationNodeCode,
			ScheduledDate:       event.ScheduledDate.Format(time.DateOnly),
		})
	}
	return response
}
