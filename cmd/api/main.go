package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/allocation-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/allocation-planner-api/infrastructure/repository"
	"github.com/vfg2006/allocation-planner-api/internal/api"
	"github.com/vfg2006/allocation-planner-api/internal/config"
	"github.com/vfg2006/allocation-planner-api/internal/scheduler"
	"github.com/vfg2006/allocation-planner-api/internal/usecases/authenticating"
	"github.com/vfg2006/allocation-planner-api/internal/usecases/planning"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	eligibilityRepo := repository.NewEligibilityRepository(pgConn)
	matrixRepo := repository.NewClassificationMatrixRepository(pgConn)
	cityRepo := repository.NewCityRepository(pgConn)
	seasonalityRepo := repository.NewSeasonalityRepository(pgConn)
	topologyRepo := repository.NewTopologyRepository(pgConn)
	planRepo := repository.NewAllocationPlanRepository(pgConn, cfg.Planning.EventInsertBatchSize)

	authenticator := authenticating.NewService(cfg)

	planner := planning.NewService(
		eligibilityRepo,
		matrixRepo,
		cityRepo,
		seasonalityRepo,
		topologyRepo,
		planRepo,
		cfg,
	)

	draftPlanJanitor := scheduler.NewDraftPlanJanitorService(planRepo, cfg)
	if err := draftPlanJanitor.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de planos rascunho")
	} else {
		logrus.Info("Agendador de limpeza de planos rascunho iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pgConn,
		planner,
		authenticator,
		draftPlanJanitor,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
