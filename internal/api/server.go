package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-intelligence-api/infrastructure/ingest"
	"github.com/vfg2006/sales-intelligence-api/internal/api/handler"
	"github.com/vfg2006/sales-intelligence-api/internal/api/handler/router"
	"github.com/vfg2006/sales-intelligence-api/internal/config"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-intelligence-api/pkg/metrics"
	"github.com/vfg2006/sales-intelligence-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	analyzer analyzing.Analyzer,
	loader ingest.Loader,
	digestService handler.DigestRunner,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		DigestService: digestService,
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, analyzer, loader, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
			// Uploads de até INGEST_MAX_UPLOAD_MB
			ReadTimeout: 2 * time.Minute,
		},
	}

	return srv, nil
}

// NewHandler monta rotas e middlewares globais
func NewHandler(
	config *config.Config,
	analyzer analyzing.Analyzer,
	loader ingest.Loader,
	cronServices handler.CronJobServices,
) http.Handler {
	m := metrics.NewMetrics()

	rt := router.New(
		router.WithRouteMiddleware(func(route router.Route) func(http.Handler) http.Handler {
			return middleware.Instrument(m, route.Path)
		}),
		router.WithRoutes(handler.Healthcheck(time.Now())...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Analysis(analyzer, loader)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.CORSOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
