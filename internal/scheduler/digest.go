// Package scheduler contém os serviços de agendamento da análise periódica
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-intelligence-api/infrastructure/ingest"
	"github.com/vfg2006/sales-intelligence-api/internal/config"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-intelligence-api/pkg/metrics"
)

var (
	ErrDigestSourceMissing = errors.New("digest source not configured")
	ErrDigestRunning       = errors.New("digest already running")
)

type DigestConfig struct {
	Source       string
	CronSchedule string
	SyncEnabled  bool
}

// DigestService reanalisa o arquivo de referência no horário configurado e guarda o último resumo
type DigestService struct {
	scheduler *gocron.Scheduler
	loader    ingest.Loader
	analyzer  analyzing.Analyzer
	metrics   *metrics.Metrics
	config    DigestConfig
	now       func() time.Time

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastDigest          *domain.ReportDigest
	lastError           string
}

func NewDigestService(
	loader ingest.Loader,
	analyzer analyzing.Analyzer,
	cfg *config.Config,
) *DigestService {
	digestConfig := DigestConfig{
		Source:       cfg.Digest.Source,
		CronSchedule: cfg.Digest.CronSchedule, // Default: 6h da manhã todos os dias
		SyncEnabled:  cfg.Digest.Enabled,      // Default: desabilitado
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": digestConfig.CronSchedule,
		"source":        digestConfig.Source,
		"sync_enabled":  digestConfig.SyncEnabled,
	}).Info("Configuração do agendador de resumo carregada")

	return &DigestService{
		scheduler: gocron.NewScheduler(time.Local),
		loader:    loader,
		analyzer:  analyzer,
		metrics:   metrics.NewMetrics(),
		config:    digestConfig,
		now:       time.Now,
	}
}

func (s *DigestService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de resumo desabilitada por configuração")
		return nil
	}
	if s.config.Source == "" {
		return ErrDigestSourceMissing
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de resumo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunDigest(ctx); err != nil {
			logrus.WithError(err).Error("Erro na execução do resumo agendado")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar resumo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de resumo")
		s.scheduler.Stop()
	}()

	return nil
}

// RunDigest carrega a fonte, roda o relatório completo e guarda o resumo
func (s *DigestService) RunDigest(ctx context.Context) (*domain.ReportDigest, error) {
	if s.config.Source == "" {
		return nil, ErrDigestSourceMissing
	}

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Resumo já está em execução")
		return nil, ErrDigestRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	digest, err := s.runDigest(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
		s.lastDigest = digest
	}
	s.syncMutex.Unlock()

	s.metrics.RecordDigest(err)

	return digest, err
}

func (s *DigestService) runDigest(ctx context.Context) (*domain.ReportDigest, error) {
	logrus.WithField("source", s.config.Source).Info("Iniciando resumo")

	table, err := s.loader.LoadSource(s.config.Source)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar a fonte do resumo")
		return nil, err
	}

	report, err := s.analyzer.Analyze(ctx, table, s.analyzer.DefaultSettings(), s.now())
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar o relatório do resumo")
		return nil, err
	}

	digest := analyzing.Digest(report)

	logrus.WithFields(logrus.Fields{
		"report_id":       digest.ReportID,
		"rows":            digest.Rows,
		"absent_sections": len(digest.AbsentSections),
	}).Info("Resumo concluído")

	return &digest, nil
}

// TriggerManualSync inicia manualmente um resumo; retorna false se já houver um em andamento
func (s *DigestService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Resumo já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando resumo manual")
	go func() {
		if _, err := s.RunDigest(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro no resumo manual")
		}
	}()
	return true
}

func (s *DigestService) LastDigest() *domain.ReportDigest {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.lastDigest
}

// GetStatus retorna o status atual do agendador
func (s *DigestService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"source":                 s.config.Source,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_error":             s.lastError,
		"last_digest":            s.lastDigest,
	}
}
