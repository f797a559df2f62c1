package planning

import (
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/allocation-planner-api/internal/domain"
)

const (
	// rodadas seguidas sem nenhum evento posicionado que encerram a primeira passada
	maxIdleRounds = 3
)

// RandSource é a fonte de aleatoriedade usada nos sorteios de origem e data.
// *rand.Rand de math/rand/v2 satisfaz a interface.
type RandSource interface {
	IntN(n int) int
}

// originPool indexa os nós de origem elegíveis por classe, em ordem de código
type originPool struct {
	codes map[domain.Classification][]string
	index map[domain.Classification]map[string]int
}

func newOriginPool(nodes []domain.Node) *originPool {
	pool := &originPool{
		codes: make(map[domain.Classification][]string, len(domain.Classifications)),
		index: make(map[domain.Classification]map[string]int, len(domain.Classifications)),
	}

	for _, node := range nodes {
		if !node.Active || !node.HasActiveOperator {
			continue
		}
		pool.codes[node.Classification] = append(pool.codes[node.Classification], node.Code)
	}

	for class, codes := range pool.codes {
		sort.Strings(codes)
		positions := make(map[string]int, len(codes))
		for i, code := range codes {
			positions[code] = i
		}
		pool.index[class] = positions
	}

	return pool
}

// pick sorteia um nó da classe informada diferente do destino
func (p *originPool) pick(rng RandSource, class domain.Classification, destination string) (string, bool) {
	codes := p.codes[class]

	excluded, isMember := p.index[class][destination]
	if !isMember {
		if len(codes) == 0 {
			return "", false
		}
		return codes[rng.IntN(len(codes))], true
	}

	if len(codes) < 2 {
		return "", false
	}

	// sorteia entre os demais e pula a posição do destino
	r := rng.IntN(len(codes) - 1)
	if r >= excluded {
		r++
	}
	return codes[r], true
}

// placementState é o estado de uma cidade de destino durante toda a execução:
// o cursor do round-robin e a carga semanal de cada nó
type placementState struct {
	nodes        []string
	nodeIndex    int
	weeklyCounts map[string]int
}

func newPlacementState(destinations []domain.Node) *placementState {
	codes := make([]string, 0, len(destinations))
	for _, node := range destinations {
		codes = append(codes, node.Code)
	}
	sort.Strings(codes)

	return &placementState{
		nodes:        codes,
		weeklyCounts: make(map[string]int),
	}
}

// next devolve o próximo nó de destino e avança o cursor
func (s *placementState) next() string {
	code := s.nodes[s.nodeIndex%len(s.nodes)]
	s.nodeIndex = (s.nodeIndex + 1) % len(s.nodes)
	return code
}

func weekKey(date time.Time, nodeCode string) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d|%s", year, week, nodeCode)
}

// placementWindow é o intervalo de datas (inclusivo) em que os eventos de um mês podem cair
type placementWindow struct {
	first time.Time
	days  int
}

func newPlacementWindow(from time.Time, to time.Time) placementWindow {
	if to.Before(from) {
		return placementWindow{first: from}
	}
	return placementWindow{
		first: from,
		days:  int(to.Sub(from).Hours()/24) + 1,
	}
}

func (w placementWindow) randomDate(rng RandSource) time.Time {
	return w.first.AddDate(0, 0, rng.IntN(w.days))
}

// placementResult é o resultado do posicionamento de uma sub-cota
type placementResult struct {
	events     []domain.GeneratedEvent
	unassigned int
}

type placementEngine struct {
	rng       RandSource
	origins   *originPool
	weeklyCap int
}

func newPlacementEngine(rng RandSource, nodes []domain.Node, weeklyCap int) *placementEngine {
	return &placementEngine{
		rng:       rng,
		origins:   newOriginPool(nodes),
		weeklyCap: weeklyCap,
	}
}

// placeCity posiciona as três sub-cotas da cidade (A, B e C, nessa ordem)
func (e *placementEngine) placeCity(state *placementState, allocation CityAllocation, window placementWindow) placementResult {
	result := placementResult{}
	for _, origin := range domain.Classifications {
		sub := e.place(state, origin, allocation.From(origin), window)
		result.events = append(result.events, sub.events...)
		result.unassigned += sub.unassigned
	}
	return result
}

// place posiciona count eventos com origem na classe informada nos nós de destino da cidade.
// A primeira passada respeita o limite semanal por nó. A segunda ignora o limite e só
// precisa de uma origem válida. O que sobrar volta como não atribuído.
func (e *placementEngine) place(state *placementState, origin domain.Classification, count int, window placementWindow) placementResult {
	result := placementResult{}
	if count <= 0 {
		return result
	}
	if len(state.nodes) == 0 || window.days <= 0 {
		result.unassigned = count
		return result
	}

	events := make([]domain.GeneratedEvent, 0, count)

	idleRounds := 0
	for len(events) < count && idleRounds < maxIdleRounds {
		placedInRound := 0
		for range state.nodes {
			if len(events) >= count {
				break
			}

			destination := state.next()
			originCode, ok := e.origins.pick(e.rng, origin, destination)
			if !ok {
				continue
			}

			date := window.randomDate(e.rng)
			key := weekKey(date, destination)
			if state.weeklyCounts[key] >= e.weeklyCap {
				continue
			}

			state.weeklyCounts[key]++
			events = append(events, domain.GeneratedEvent{
				OriginNodeCode:      originCode,
				DestinationNodeCode: destination,
				ScheduledDate:       date,
			})
			placedInRound++
		}

		if placedInRound == 0 {
			idleRounds++
		} else {
			idleRounds = 0
		}
	}

	misses := 0
	maxMisses := 2 * len(state.nodes)
	for len(events) < count && misses < maxMisses {
		destination := state.next()
		originCode, ok := e.origins.pick(e.rng, origin, destination)
		if !ok {
			misses++
			continue
		}

		date := window.randomDate(e.rng)
		state.weeklyCounts[weekKey(date, destination)]++
		events = append(events, domain.GeneratedEvent{
			OriginNodeCode:      originCode,
			DestinationNodeCode: destination,
			ScheduledDate:       date,
		})
		misses = 0
	}

	result.events = events
	result.unassigned = count - len(events)
	return result
}
