// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/allocation-planner-api/infrastructure/repository"
	"github.com/vfg2006/allocation-planner-api/internal/config"
)

type DraftPlanJanitorConfig struct {
	CronSchedule  string
	RetentionDays int
	Enabled       bool
}

// DraftPlanJanitorService apaga periodicamente os planos rascunho que nunca foram mesclados
type DraftPlanJanitorService struct {
	scheduler *gocron.Scheduler
	planRepo  repository.AllocationPlanRepository
	config    DraftPlanJanitorConfig
	now       func() time.Time

	runMutex            sync.Mutex
	statusMutex         sync.RWMutex
	running             bool
	lastRunStartedAt    time.Time
	lastRunCompletedAt  time.Time
	lastDeletedCount    int64
	lastRunErrorMessage string
}

func NewDraftPlanJanitorService(planRepo repository.AllocationPlanRepository, cfg *config.Config) *DraftPlanJanitorService {
	janitorConfig := DraftPlanJanitorConfig{
		CronSchedule:  cfg.DraftPlanJanitor.CronSchedule,  // Default: 2h da manhã todos os dias
		RetentionDays: cfg.DraftPlanJanitor.RetentionDays, // Default: 30 dias
		Enabled:       cfg.DraftPlanJanitor.Enabled,       // Default: desabilitado
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  janitorConfig.CronSchedule,
		"retention_days": janitorConfig.RetentionDays,
	}).Info("Configuração da limpeza de planos rascunho carregada")

	return &DraftPlanJanitorService{
		scheduler: gocron.NewScheduler(time.UTC),
		planRepo:  planRepo,
		config:    janitorConfig,
		now:       time.Now,
	}
}

func (s *DraftPlanJanitorService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de limpeza de planos rascunho desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpeza de planos rascunho")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.PurgeStaleDrafts(ctx); err != nil {
			logrus.WithError(err).Error("Erro na limpeza de planos rascunho")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de planos rascunho: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpeza de planos rascunho")
		s.scheduler.Stop()
	}()

	return nil
}

// PurgeStaleDrafts apaga os rascunhos criados antes do prazo de retenção.
// Execuções sobrepostas são ignoradas.
func (s *DraftPlanJanitorService) PurgeStaleDrafts(ctx context.Context) (int64, error) {
	if !s.runMutex.TryLock() {
		logrus.Warn("Limpeza de planos rascunho já está em execução")
		return 0, nil
	}
	defer s.runMutex.Unlock()

	startedAt := s.now()
	s.setRunning(startedAt)

	cutoff := startedAt.AddDate(0, 0, -s.config.RetentionDays)
	logrus.WithField("cutoff", cutoff.Format(time.RFC3339)).Info("Iniciando limpeza de planos rascunho")

	deleted, err := s.planRepo.DeleteStaleDrafts(ctx, cutoff)
	s.setFinished(deleted, err)
	if err != nil {
		return 0, fmt.Errorf("erro ao apagar planos rascunho: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"deleted":     deleted,
		"duration_ms": s.now().Sub(startedAt).Milliseconds(),
	}).Info("Limpeza de planos rascunho concluída")

	return deleted, nil
}

func (s *DraftPlanJanitorService) setRunning(startedAt time.Time) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.running = true
	s.lastRunStartedAt = startedAt
}

func (s *DraftPlanJanitorService) setFinished(deleted int64, err error) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.running = false
	s.lastRunCompletedAt = s.now()
	s.lastDeletedCount = deleted
	s.lastRunErrorMessage = ""
	if err != nil {
		s.lastRunErrorMessage = err.Error()
	}
}

// TriggerManualSync dispara a limpeza fora do horário agendado
func (s *DraftPlanJanitorService) TriggerManualSync() {
	s.statusMutex.RLock()
	running := s.running
	s.statusMutex.RUnlock()

	if running {
		logrus.Info("Limpeza de planos rascunho já em andamento, ignorando solicitação manual")
		return
	}

	logrus.Info("Iniciando limpeza manual de planos rascunho")
	go func() {
		if _, err := s.PurgeStaleDrafts(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na limpeza manual de planos rascunho")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *DraftPlanJanitorService) GetStatus() map[string]any {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_days":         s.config.RetentionDays,
		"running":                s.running,
		"last_sync_started_at":   s.lastRunStartedAt,
		"last_sync_completed_at": s.lastRunCompletedAt,
		"last_deleted_count":     s.lastDeletedCount,
		"last_error":             s.lastRunErrorMessage,
	}
}
