package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/allocation-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/allocation-planner-api/infrastructure/migration"
	"github.com/vfg2006/allocation-planner-api/internal/config"
)

const (
	idLength   = 6
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

type seedCity struct {
	Name           string
	Classification string
	Nodes          int
}

// rede de exemplo para testes manuais da geração de planos
var demoCities = []seedCity{
	{"São Paulo", "A", 4},
	{"Rio de Janeiro", "A", 3},
	{"Curitiba", "B", 2},
	{"Porto Alegre", "B", 2},
	{"Recife", "B", 2},
	{"Londrina", "C", 1},
	{"Chapecó", "C", 1},
	{"Cascavel", "C", 1},
	{"Sinop", "C", 1},
	{"Vilhena", "C", 0},
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func generateID(prefix string) string {
	id, _ := gonanoid.Generate(characters, idLength)
	return prefix + id
}

func main() {
	seedAccount := flag.String("seed-account", "", "carrega uma rede de exemplo para a conta informada")
	carrierID := flag.String("carrier", "CARRIER01", "transportadora habilitada na carga de exemplo")
	productID := flag.String("product", "PROD01", "produto habilitado na carga de exemplo")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := migration.Apply(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar schema")
	}

	if *seedAccount == "" {
		return
	}

	startTime := time.Now()
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return seed(ctx, tx, *seedAccount, *carrierID, *productID)
	})
	if err != nil {
		logrus.WithError(err).Fatal("Erro na carga de exemplo; transação revertida")
	}

	logrus.Infof("Carga de exemplo concluída em %v", time.Since(startTime))
}

func seed(ctx context.Context, tx *sql.Tx, accountID string, carrierID string, productID string) error {
	exec := func(builder squirrel.Sqlizer) error {
		query, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	}

	if err := exec(psql.Insert("carrier_products").
		Columns("carrier_id", "product_id", "active").
		Values(carrierID, productID, true).
		Suffix("ON CONFLICT (carrier_id, product_id) DO UPDATE SET active = TRUE")); err != nil {
		return fmt.Errorf("carrier_products: %w", err)
	}

	nodeCount := 0
	for _, city := range demoCities {
		cityID := generateID("CTY")
		if err := exec(psql.Insert("cities").
			Columns("id", "account_id", "name", "classification", "active").
			Values(cityID, accountID, city.Name, city.Classification, true)); err != nil {
			return fmt.Errorf("city %s: %w", city.Name, err)
		}

		for i := 0; i < city.Nodes; i++ {
			panelistID := generateID("PNL")
			if err := exec(psql.Insert("panelists").
				Columns("id", "name", "status").
				Values(panelistID, fmt.Sprintf("Panelista %s %d", city.Name, i+1), "available")); err != nil {
				return fmt.Errorf("panelist: %w", err)
			}

			if err := exec(psql.Insert("nodes").
				Columns("code", "account_id", "city_id", "panelist_id", "active").
				Values(generateID("N"), accountID, cityID, panelistID, true)); err != nil {
				return fmt.Errorf("node: %w", err)
			}
			nodeCount++
		}
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"cities":     len(demoCities),
		"nodes":      nodeCount,
	}).Info("Rede de exemplo inserida")

	return nil
}
