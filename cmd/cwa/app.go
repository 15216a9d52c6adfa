package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/metdatasystem/cwa/internal/config"
	"github.com/metdatasystem/cwa/internal/distribution"
	"github.com/metdatasystem/cwa/internal/generator"
	"github.com/metdatasystem/cwa/internal/textdb"
	"github.com/metdatasystem/cwa/pkg/cwa"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// app is everything a command needs, wired from the environment.
type app struct {
	cfg       *config.Config
	store     textdb.Store
	publisher distribution.Publisher
	service   *generator.Service
	closers   []func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	var states *cwa.StateLocator
	if cfg.StatePolygons != "" {
		file, err := os.Open(cfg.StatePolygons)
		if err != nil {
			return nil, fmt.Errorf("failed to open state polygons: %w", err)
		}
		states, err = cwa.LoadStates(file)
		file.Close()
		if err != nil {
			return nil, err
		}
	}

	if cfg.DatabaseURL != "" {
		pool, err := textdb.NewDatabasePool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialise database: %w", err)
		}
		a.closers = append(a.closers, pool.Close)

		store := textdb.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			a.close()
			return nil, err
		}
		a.store = store
	} else {
		log.Warn().Msg("DATABASE_URL not set, products are kept in memory only")
		a.store = textdb.NewMemoryStore(nil)
	}

	a.publisher = distribution.Nop{}
	if cfg.Operational {
		a.publisher, err = distribution.New(ctx, cfg)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to initialise distribution: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := a.publisher.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close publisher")
			}
		})
	}

	composer := cwa.NewComposer(cfg.Office(), clockwork.NewRealClock(), states)
	health := generator.NewHealth(prometheus.DefaultRegisterer)
	a.service = generator.New(composer, a.store, a.publisher, health)

	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
