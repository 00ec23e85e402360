package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/sales-intelligence-api/infrastructure/ingest"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-intelligence-api/pkg/apiErrors"
	"github.com/vfg2006/sales-intelligence-api/pkg/log"
	"github.com/vfg2006/sales-intelligence-api/pkg/utils"
)

// Campo multipart com o arquivo enviado
const uploadField = "file"

// Memória usada pelo ParseMultipartForm; o excedente vai para disco
const multipartMemory = 32 << 20

var errMissingFile = errors.New("missing upload field \"file\"")

// RunAnalysis gera o relatório completo para o arquivo enviado
func RunAnalysis(service analyzing.Analyzer, loader ingest.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		table, settings, asOf, ok := readRequest(w, r, service, loader)
		if !ok {
			return
		}

		report, err := service.Analyze(r.Context(), table, settings, asOf)
		if err != nil {
			logger.WithError(err).Error("analysis: erro ao gerar relatório")
			writeAnalysisError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"report_id": report.ID,
			"rows":      report.Preprocessing.OutputRows,
		}).Info("analysis: relatório gerado")

		writeJSON(w, report)
	})
}

// InferSchema devolve só os papéis inferidos das colunas
func InferSchema(service analyzing.Analyzer, loader ingest.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table, err := readUpload(r, loader)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		writeJSON(w, service.Schema(table))
	})
}

func GetKPIs(service analyzing.Analyzer, loader ingest.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table, err := readUpload(r, loader)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		kpis, err := service.KPIs(table)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		writeJSON(w, kpis)
	})
}

// AggregateTable agrupa pelos campos de ?group_by=a,b com ?measure, ?op e ?top_n
func AggregateTable(service analyzing.Analyzer, loader ingest.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		request := analyzing.AggregateRequest{
			GroupBy:   splitList(query.Get("group_by")),
			Measure:   strings.TrimSpace(query.Get("measure")),
			Operation: strings.TrimSpace(query.Get("op")),
		}
		if len(request.GroupBy) == 0 || request.Measure == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe group_by e measure", nil)
			return
		}
		if raw := query.Get("top_n"); raw != "" {
			topN, err := strconv.Atoi(raw)
			if err != nil {
				writeAnalysisError(w, domain.NewInvalidValueError("top_n", raw, "must be an integer"))
				return
			}
			request.TopN = topN
		}

		table, err := readUpload(r, loader)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		groups, err := service.Aggregate(table, request)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		writeJSON(w, groups)
	})
}

func GetForecast(service analyzing.Analyzer, loader ingest.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table, settings, _, ok := readRequest(w, r, service, loader)
		if !ok {
			return
		}

		forecast, err := service.Forecast(table, settings)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		writeJSON(w, forecast)
	})
}

func GetSegments(service analyzing.Analyzer, loader ingest.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table, settings, _, ok := readRequest(w, r, service, loader)
		if !ok {
			return
		}

		segmentation, err := service.Segments(table, settings)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		writeJSON(w, segmentation)
	})
}

func GetChurn(service analyzing.Analyzer, loader ingest.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table, settings, asOf, ok := readRequest(w, r, service, loader)
		if !ok {
			return
		}

		churn, err := service.Churn(table, settings, asOf)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		writeJSON(w, churn)
	})
}

// readRequest lê configurações, data de referência e arquivo; escreve o erro e retorna false em caso de falha
func readRequest(w http.ResponseWriter, r *http.Request, service analyzing.Analyzer, loader ingest.Loader) (*domain.Table, domain.AnalysisSettings, time.Time, bool) {
	settings, err := SettingsFromQuery(r.URL.Query(), service.DefaultSettings())
	if err != nil {
		writeAnalysisError(w, err)
		return nil, settings, time.Time{}, false
	}
	if err := service.ValidateSettings(settings); err != nil {
		writeAnalysisError(w, err)
		return nil, settings, time.Time{}, false
	}

	asOf := time.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, ok := utils.ParseDateFlexible(raw)
		if !ok {
			writeAnalysisError(w, domain.NewInvalidValueError("as_of", raw, "unrecognized date"))
			return nil, settings, time.Time{}, false
		}
		asOf = parsed
	}

	table, err := readUpload(r, loader)
	if err != nil {
		writeAnalysisError(w, err)
		return nil, settings, time.Time{}, false
	}

	return table, settings, asOf, true
}

func readUpload(r *http.Request, loader ingest.Loader) (*domain.Table, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, errMissingFile
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, errMissingFile
	}
	defer file.Close()

	return loader.Load(header.Filename, file)
}

// SettingsFromQuery sobrescreve os padrões com os parâmetros presentes na query
func SettingsFromQuery(query url.Values, defaults domain.AnalysisSettings) (domain.AnalysisSettings, error) {
	settings := defaults

	ints := []struct {
		key    string
		target *int
	}{
		{"forecast_horizon", &settings.ForecastHorizon},
		{"cluster_count", &settings.ClusterCount},
		{"churn_high_days", &settings.ChurnHighDays},
		{"churn_medium_days", &settings.ChurnMediumDays},
		{"top_n", &settings.TopN},
	}
	for _, field := range ints {
		raw := strings.TrimSpace(query.Get(field.key))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return settings, domain.NewInvalidValueError(field.key, raw, "must be an integer")
		}
		*field.target = value
	}

	if mode := strings.TrimSpace(query.Get("forecast_mode")); mode != "" {
		settings.ForecastMode = mode
	}
	if raw := strings.TrimSpace(query.Get("frequency")); raw != "" {
		frequency, err := domain.ParseFrequency(raw)
		if err != nil {
			return settings, err
		}
		settings.Frequency = frequency
	}

	return settings, nil
}

// writeAnalysisError converte erros de leitura e de domínio nos códigos da API
func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errMissingFile):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		apiErrors.WriteError(w, apiErrors.ErrUnsupportedFile, err.Error(), nil)
	case errors.Is(err, ingest.ErrFileTooLarge):
		apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, err.Error(), nil)
	case errors.Is(err, ingest.ErrEmptyFile):
		apiErrors.WriteError(w, apiErrors.ErrEmptyDataset, err.Error(), nil)
	case errors.Is(err, ingest.ErrMalformedFile):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, domain.ErrInsufficientData):
		apiErrors.WriteFromError(w, err, apiErrors.ErrInsufficientData)
	case errors.Is(err, domain.ErrMissingColumn):
		apiErrors.WriteFromError(w, err, apiErrors.ErrMissingColumn)
	case errors.Is(err, domain.ErrInvalidValue):
		apiErrors.WriteFromError(w, err, apiErrors.ErrInvalidParameter)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar a análise", nil)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.L.WithError(err).Error("analysis: erro ao codificar resposta")
	}
}

func splitList(raw string) []string {
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
