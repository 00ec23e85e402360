package analyzing

import (
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/scoring"
)

func (s *Service) DefaultSettings() domain.AnalysisSettings {
	return domain.AnalysisSettings{
		ForecastHorizon: s.cfg.ForecastHorizon,
		ForecastMode:    s.cfg.ForecastMode,
		ClusterCount:    s.cfg.ClusterCount,
		ChurnHighDays:   s.cfg.ChurnHighDays,
		ChurnMediumDays: s.cfg.ChurnMediumDays,
		Frequency:       domain.Frequency(s.cfg.Frequency),
		TopN:            s.cfg.TopN,
	}
}

// ValidateSettings confere o pacote contra os limites configurados
func (s *Service) ValidateSettings(settings domain.AnalysisSettings) error {
	if err := domain.CheckRange("forecast_horizon", settings.ForecastHorizon, s.cfg.ForecastHorizonMin, s.cfg.ForecastHorizonMax); err != nil {
		return err
	}
	if err := domain.CheckRange("cluster_count", settings.ClusterCount, s.cfg.ClusterCountMin, s.cfg.ClusterCountMax); err != nil {
		return err
	}
	if err := thresholdsFrom(settings).Validate(); err != nil {
		return err
	}
	if _, err := domain.ParseFrequency(string(settings.Frequency)); err != nil {
		return err
	}
	if _, err := forecasting.ParseMode(settings.ForecastMode); err != nil {
		return err
	}
	if settings.TopN < 1 {
		return domain.NewInvalidValueError("top_n", settings.TopN, "must be at least 1")
	}
	return nil
}

func thresholdsFrom(settings domain.AnalysisSettings) scoring.Thresholds {
	return scoring.Thresholds{HighDays: settings.ChurnHighDays, MediumDays: settings.ChurnMediumDays}
}
