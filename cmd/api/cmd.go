package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/GregMSThompson/timeline-chart/internal/bootstrap"
	"github.com/GregMSThompson/timeline-chart/internal/config"
	"github.com/GregMSThompson/timeline-chart/internal/handlers"
	"github.com/GregMSThompson/timeline-chart/internal/response"
	"github.com/GregMSThompson/timeline-chart/internal/router"
	"github.com/GregMSThompson/timeline-chart/internal/services"
	"github.com/GregMSThompson/timeline-chart/internal/store"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup, including the span
// flush in bs.Close, happens on every path.
func run() error {
	// config
	cfg, err := config.New()
	if err != nil {
		slog.Default().Error("config failed", "error", err)
		return err
	}

	// bootstrap
	bs, err := bootstrap.Run(cfg)
	defer func() {
		if cerr := bs.Close(); cerr != nil {
			bs.Log.Error("shutdown failed", "error", cerr)
		}
	}()
	if err != nil {
		bs.Log.Error("bootstrap failed", "error", err)
		return err
	}

	// stores
	tlstore := store.NewTimelineStore(bs.Firestore)

	// services
	rserv := services.NewRenderService()
	tlserv := services.NewTimelineService(tlstore, rserv)

	// response handler
	rh := response.New(bs.Log)

	// dependencies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.RenderSvc = rserv
	deps.TimelineSvc = tlserv

	// router
	r := router.NewRouter(deps)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	bs.Log.Info("server starting", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		bs.Log.Error("server start failed", "error", err)
		return err
	}
	return nil
}
