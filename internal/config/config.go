package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/segmenting"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Analytics Analytics `mapstructure:",squash"`
	Ingest    Ingest    `mapstructure:",squash"`
	Digest    Digest    `mapstructure:",squash"`
}

type Server struct {
	Host        string   `mapstructure:"host"`
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_allowed_origins"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

// Analytics guarda os valores padrão e os limites aceitos pelo pipeline
type Analytics struct {
	ForecastHorizon    int    `mapstructure:"forecast_horizon"`
	ForecastHorizonMin int    `mapstructure:"forecast_horizon_min"`
	ForecastHorizonMax int    `mapstructure:"forecast_horizon_max"`
	ForecastMode       string `mapstructure:"forecast_mode"`
	ClusterCount       int    `mapstructure:"cluster_count"`
	ClusterCountMin    int    `mapstructure:"cluster_count_min"`
	ClusterCountMax    int    `mapstructure:"cluster_count_max"`
	ClusterSeed        int64  `mapstructure:"cluster_seed"`
	ClusterRestarts    int    `mapstructure:"cluster_restarts"`
	LabelPolicy        string `mapstructure:"segment_label_policy"`
	ChurnHighDays      int    `mapstructure:"churn_high_days"`
	ChurnMediumDays    int    `mapstructure:"churn_medium_days"`
	Frequency          string `mapstructure:"aggregation_frequency"`
	TopN               int    `mapstructure:"top_n"`
}

type Ingest struct {
	MaxUploadMB int `mapstructure:"ingest_max_upload_mb"`
}

// Digest configura a análise periódica de um arquivo de referência
type Digest struct {
	Source       string `mapstructure:"digest_source"`
	CronSchedule string `mapstructure:"digest_cron"`
	Enabled      bool   `mapstructure:"digest_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")

	// Limites do pacote de configuração do pipeline
	viper.SetDefault("FORECAST_HORIZON", 6)
	viper.SetDefault("FORECAST_HORIZON_MIN", 1)
	viper.SetDefault("FORECAST_HORIZON_MAX", 24)
	viper.SetDefault("FORECAST_MODE", "seasonal")
	viper.SetDefault("CLUSTER_COUNT", 3)
	viper.SetDefault("CLUSTER_COUNT_MIN", 2)
	viper.SetDefault("CLUSTER_COUNT_MAX", 6)
	viper.SetDefault("CLUSTER_SEED", 42)
	viper.SetDefault("CLUSTER_RESTARTS", 10)
	viper.SetDefault("SEGMENT_LABEL_POLICY", "value_rank")
	viper.SetDefault("CHURN_HIGH_DAYS", 60)
	viper.SetDefault("CHURN_MEDIUM_DAYS", 30)
	viper.SetDefault("AGGREGATION_FREQUENCY", "monthly")
	viper.SetDefault("TOP_N", 10)

	viper.SetDefault("INGEST_MAX_UPLOAD_MB", 50)

	viper.SetDefault("DIGEST_SOURCE", "")
	viper.SetDefault("DIGEST_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("DIGEST_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	for i, origin := range config.Server.CORSOrigins {
		config.Server.CORSOrigins[i] = strings.TrimSpace(origin)
	}

	if err := config.Analytics.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate confere se os valores padrão respeitam os próprios limites
func (a Analytics) Validate() error {
	if a.ForecastHorizonMin < 1 || a.ForecastHorizonMin > a.ForecastHorizonMax {
		return domain.NewInvalidValueError("forecast_horizon_min", a.ForecastHorizonMin, "must be at least 1 and not above forecast_horizon_max")
	}
	if a.ClusterCountMin < 2 || a.ClusterCountMin > a.ClusterCountMax {
		return domain.NewInvalidValueError("cluster_count_min", a.ClusterCountMin, "must be at least 2 and not above cluster_count_max")
	}
	if a.ClusterCountMax > segmenting.MaxClusters {
		return domain.NewInvalidValueError("cluster_count_max", a.ClusterCountMax, fmt.Sprintf("must not exceed %d", segmenting.MaxClusters))
	}
	if err := domain.CheckRange("forecast_horizon", a.ForecastHorizon, a.ForecastHorizonMin, a.ForecastHorizonMax); err != nil {
		return err
	}
	if err := domain.CheckRange("cluster_count", a.ClusterCount, a.ClusterCountMin, a.ClusterCountMax); err != nil {
		return err
	}
	if a.ChurnMediumDays < 0 || a.ChurnMediumDays >= a.ChurnHighDays {
		return domain.NewInvalidValueError("churn_medium_days", a.ChurnMediumDays, "must be non-negative and below churn_high_days")
	}
	if _, err := domain.ParseFrequency(a.Frequency); err != nil {
		return err
	}
	if a.TopN < 1 {
		return domain.NewInvalidValueError("top_n", a.TopN, "must be at least 1")
	}
	return nil
}

// MaxUploadBytes converte o limite de upload para bytes
func (i Ingest) MaxUploadBytes() int64 {
	return int64(i.MaxUploadMB) << 20
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
