package handler

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/sales-intelligence-api/infrastructure/ingest"
	"github.com/vfg2006/sales-intelligence-api/internal/api/handler/router"
	"github.com/vfg2006/sales-intelligence-api/internal/usecases/analyzing"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck(startedAt time.Time) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(startedAt),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Analysis(service analyzing.Analyzer, loader ingest.Loader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analysis",
			Method:  http.MethodPost,
			Handler: RunAnalysis(service, loader),
		},
		{
			Path:    "/v1/analysis/schema",
			Method:  http.MethodPost,
			Handler: InferSchema(service, loader),
		},
		{
			Path:    "/v1/analysis/kpis",
			Method:  http.MethodPost,
			Handler: GetKPIs(service, loader),
		},
		{
			Path:    "/v1/analysis/aggregate",
			Method:  http.MethodPost,
			Handler: AggregateTable(service, loader),
		},
		{
			Path:    "/v1/analysis/forecast",
			Method:  http.MethodPost,
			Handler: GetForecast(service, loader),
		},
		{
			Path:    "/v1/analysis/segments",
			Method:  http.MethodPost,
			Handler: GetSegments(service, loader),
		},
		{
			Path:    "/v1/analysis/churn",
			Method:  http.MethodPost,
			Handler: GetChurn(service, loader),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
