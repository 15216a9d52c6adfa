package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metdatasystem/cwa/internal/generator"
	"github.com/metdatasystem/cwa/internal/live"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const purgeInterval = 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve product status, metrics and the live status feed",
	Long: `Serve the office's product status as JSON on /status, streamed over a websocket on /ws,
	and Prometheus metrics on /metrics. Products older than RETAIN_DAYS are purged daily.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		clock := clockwork.NewRealClock()
		hub := live.NewHub(a.service.Status, clock, a.cfg.StatusInterval)
		go hub.Run(ctx)
		go purge(ctx, a.service, clock, a.cfg.RetainDays)

		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/status", statusHandler(a.service))
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		server := &http.Server{
			Addr:              a.cfg.HTTPAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shut down server")
			}
		}()

		log.Info().Str("addr", a.cfg.HTTPAddr).Msg("serving")
		err = server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	},
}

func statusHandler(service *generator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed.", http.StatusMethodNotAllowed)
			return
		}

		statuses, err := service.Status(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to get product status")
			http.Error(w, "Failed to get product status.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(statuses); err != nil {
			log.Debug().Err(err).Msg("failed to write status response")
		}
	}
}

func purge(ctx context.Context, service *generator.Service, clock clockwork.Clock, retainDays int) {
	ticker := clock.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		if _, err := service.Purge(ctx, retainDays); err != nil {
			log.Error().Err(err).Msg("failed to purge products")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}
	}
}
