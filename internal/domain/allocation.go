// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classification é a classe (A, B ou C) de uma cidade, herdada pelos seus nós
type Classification string

const (
	ClassificationA Classification = "A"
	ClassificationB Classification = "B"
	ClassificationC Classification = "C"
)

// Classifications lista as classes na ordem em que o motor as processa
var Classifications = []Classification{ClassificationA, ClassificationB, ClassificationC}

func (c Classification) Valid() bool {
	switch c {
	case ClassificationA, ClassificationB, ClassificationC:
		return true
	}
	return false
}

type MergeStrategy string

const (
	MergeStrategyAdd     MergeStrategy = "add"
	MergeStrategyReplace MergeStrategy = "replace"
)

func (m MergeStrategy) Valid() bool {
	return m == MergeStrategyAdd || m == MergeStrategyReplace
}

type PlanStatus string

const (
	PlanStatusDraft  PlanStatus = "draft"
	PlanStatusMerged PlanStatus = "merged"
)

// PlanRequest são os parâmetros de uma geração de plano. EndDate é inclusivo.
type PlanRequest struct {
	AccountID            string        `json:"account_id"`
	CarrierID            string        `json:"carrier_id"`
	ProductID            string        `json:"product_id"`
	StartDate            time.Time     `json:"start_date"`
	EndDate              time.Time     `json:"end_date"`
	AnnualTarget         int           `json:"annual_target"`
	MaxEventsPerNodeWeek int           `json:"max_events_per_node_week"`
	MergeStrategy        MergeStrategy `json:"merge_strategy"`
	RequestedBy          string        `json:"requested_by"`
}

// DaysInPeriod retorna a quantidade de dias do período, contando as duas pontas
func (r PlanRequest) DaysInPeriod() int {
	start := truncateDay(r.StartDate)
	end := truncateDay(r.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SeasonalityProfile guarda os doze percentuais mensais (índice 0 = janeiro).
// A soma não precisa fechar 100.
type SeasonalityProfile struct {
	Percentages [12]decimal.Decimal `json:"percentages"`
}

func (p SeasonalityProfile) Weight(month time.Month) decimal.Decimal {
	return p.Percentages[month-1]
}

// ClassificationRow diz, para uma classe de destino, quanto do tráfego vem de cada classe de origem
type ClassificationRow struct {
	Classification Classification  `json:"classification"`
	FromA          decimal.Decimal `json:"pct_from_a"`
	FromB          decimal.Decimal `json:"pct_from_b"`
	FromC          decimal.Decimal `json:"pct_from_c"`
}

// Percent retorna o percentual vindo da classe de origem informada
func (r ClassificationRow) Percent(origin Classification) decimal.Decimal {
	switch origin {
	case ClassificationA:
		return r.FromA
	case ClassificationB:
		return r.FromB
	case ClassificationC:
		return r.FromC
	}
	return decimal.Zero
}

// ClassificationMatrix indexa as linhas pela classe de destino
type ClassificationMatrix map[Classification]ClassificationRow

type City struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
}

type Node struct {
	Code              string         `json:"node_code"`
	CityID            string         `json:"city_id"`
	Classification    Classification `json:"city_classification"`
	Active            bool           `json:"active"`
	HasActiveOperator bool           `json:"has_active_operator"`
}

// GeneratedEvent é um envio agendado de um nó de origem para um nó de destino
type GeneratedEvent struct {
	OriginNodeCode      string    `json:"origin_node_code"`
	DestinationNodeCode string    `json:"destination_node_code"`
	ScheduledDate       time.Time `json:"scheduled_date"`
}

// UnassignedCity acumula, por cidade de destino, os eventos que não couberam em nenhum nó
type UnassignedCity struct {
	CityID   string `json:"city_id"`
	CityName string `json:"city_name"`
	Count    int    `json:"count"`
}

type DraftPlan struct {
	ID              string           `json:"id"`
	Request         PlanRequest      `json:"request"`
	TotalEvents     int              `json:"total_events"`
	EventCount      int              `json:"event_count"`
	Events          []GeneratedEvent `json:"events,omitempty"`
	Unassigned      []UnassignedCity `json:"unassigned"`
	UnassignedTotal int              `json:"unassigned_total"`
	Status          PlanStatus       `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}
