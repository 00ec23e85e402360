package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-intelligence-api/infrastructure/ingest"
	"github.com/vfg2006/sales-intelligence-api/internal/api"
	"github.com/vfg2006/sales-intelligence-api/internal/config"
	"github.com/vfg2006/sales-intelligence-api/internal/scheduler"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-intelligence-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := ingest.NewFileLoader(cfg.Ingest.MaxUploadBytes())
	analyzer := analyzing.NewService(cfg.Analytics)

	digestService := scheduler.NewDigestService(loader, analyzer, cfg)
	if err := digestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de resumo")
	} else {
		logrus.Info("Agendador de resumo iniciado com sucesso")
	}

	server, err := api.New(cfg, analyzer, loader, digestService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
