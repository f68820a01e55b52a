package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/wilsonhazen/bidroom/internal/metrics"
	"github.com/wilsonhazen/bidroom/internal/middleware"
	"github.com/wilsonhazen/bidroom/internal/service"
)

type Options struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	APIKeys     []string
	RateLimiter *middleware.RateLimiter
}

func NewRouter(svc *service.Service, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := http.NewServeMux()
	api.HandleFunc("PUT /v1/contractors/{id}", svc.HandlePutContractor)
	api.HandleFunc("GET /v1/contractors/{id}/trust", svc.HandleGetTrust)
	api.HandleFunc("POST /v1/trust/score", svc.HandleScoreTrust)
	api.HandleFunc("POST /v1/trust/batch", svc.HandleBatchTrust)
	api.HandleFunc("PUT /v1/workspaces/{owner}/snapshot", svc.HandlePutSnapshot)
	api.HandleFunc("GET /v1/workspaces/{owner}/dashboard", svc.HandleGetDashboard)
	api.HandleFunc("GET /v1/workspaces/{owner}/alerts", svc.HandleGetAlerts)
	api.HandleFunc("GET /v1/workspaces/{owner}/actions", svc.HandleGetActions)
	api.HandleFunc("GET /v1/workspaces/{owner}/report.xlsx", svc.HandleGetReport)
	api.HandleFunc("POST /v1/jobs/match", svc.HandleMatchJob)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", svc.HandleHealth)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}
	mux.Handle("/v1/", middleware.Chain(api,
		middleware.APIKeys(opts.APIKeys),
		middleware.RateLimit(opts.RateLimiter),
	))

	global := []func(http.Handler) http.Handler{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logging(logger),
	}
	if opts.Metrics != nil {
		global = append(global, opts.Metrics.Middleware("bidroom"))
	}
	return middleware.Chain(mux, global...)
}
