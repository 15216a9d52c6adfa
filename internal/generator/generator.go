package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metdatasystem/cwa/internal/distribution"
	"github.com/metdatasystem/cwa/internal/textdb"
	"github.com/metdatasystem/cwa/pkg/cwa"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrEmptyProduct is returned when asked to send a product with no text.
	ErrEmptyProduct = textdb.ErrEmptyProduct
	ErrNoProduct    = errors.New("no product stored")
)

// Service composes, stores and distributes products for one office.
type Service struct {
	office    cwa.Office
	composer  *cwa.Composer
	store     textdb.Store
	publisher distribution.Publisher
	clock     clockwork.Clock
	health    *Health
	log       zerolog.Logger
}

func New(composer *cwa.Composer, store textdb.Store, publisher distribution.Publisher, health *Health) *Service {
	if publisher == nil {
		publisher = distribution.Nop{}
	}
	return &Service{
		office:    composer.Office,
		composer:  composer,
		store:     store,
		publisher: publisher,
		clock:     composer.Clock,
		health:    health,
		log:       log.With().Str("cwsu", composer.Office.CWSU).Logger(),
	}
}

func (s *Service) Office() cwa.Office {
	return s.office
}

// Latest fetches the latest stored product for the identifier, nil when none.
func (s *Service) Latest(ctx context.Context, pil string) (*textdb.Product, error) {
	product, err := s.store.Latest(ctx, s.office.RetrievalID(pil))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest %s: %w", pil, err)
	}
	return product, nil
}

// Prior is Latest in the form the composer numbers against.
func (s *Service) Prior(ctx context.Context, pil string) (*cwa.Prior, error) {
	product, err := s.Latest(ctx, pil)
	if err != nil {
		return nil, err
	}
	return product.Prior(), nil
}

// Create composes the selection against the latest stored product. Nothing is
// stored until Send.
func (s *Service) Create(ctx context.Context, sel cwa.Selection) (*cwa.Result, error) {
	prior, err := s.Prior(ctx, sel.ProductID)
	if err != nil {
		return nil, err
	}

	result, err := s.composer.Compose(sel, prior)
	if err != nil {
		if cwa.IsValidation(err) {
			s.health.Rejected.WithLabelValues(string(sel.Hazard)).Inc()
		}
		return nil, err
	}

	s.health.Composed.WithLabelValues(string(sel.Hazard)).Inc()
	return result, nil
}

// Reissue rebuilds the latest stored product with new times.
func (s *Service) Reissue(ctx context.Context, pil string, start, end time.Time, cor bool) (*cwa.Result, error) {
	prior, err := s.Prior(ctx, pil)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoProduct, s.office.RetrievalID(pil))
	}
	return s.composer.Reissue(pil, prior, start, end, cor), nil
}

// Send stores the product and, for an operational office, distributes it.
// The product stays stored when distribution fails.
func (s *Service) Send(ctx context.Context, pil string, hazard cwa.Hazard, result *cwa.Result) (*textdb.Product, error) {
	if result == nil || strings.TrimSpace(result.Text) == "" {
		return nil, ErrEmptyProduct
	}

	logger := s.log.With().Str("product", s.office.TransmitID(pil)).Int("series", result.SeriesID).Logger()

	product, err := textdb.NewProduct(s.office, pil, hazard, result)
	if err != nil {
		return nil, err
	}

	product, err = s.store.Insert(ctx, product)
	if err != nil {
		s.health.Failures.WithLabelValues("store").Inc()
		logger.Error().Err(err).Msg("failed to store product")
		return nil, fmt.Errorf("failed to store product: %w", err)
	}
	s.health.Stored.Inc()
	logger.Info().Int("id", product.ID).Msg("product stored")

	if s.office.Operational {
		err = s.publisher.Publish(ctx, distribution.Envelope(product))
		if err != nil {
			s.health.Failures.WithLabelValues("distribution").Inc()
			logger.Error().Err(err).Msg("failed to distribute product")
			return product, fmt.Errorf("product stored but not distributed: %w", err)
		}
		s.health.Distributed.Inc()
		logger.Info().Msg("product distributed")
	}

	s.health.LastSent.Set(float64(s.clock.Now().Unix()))
	return product, nil
}

// Status reports on the latest product under each of the office's identifiers.
func (s *Service) Status(ctx context.Context) ([]cwa.Status, error) {
	now := s.clock.Now()
	var statuses []cwa.Status
	for _, pil := range s.office.PILs() {
		prior, err := s.Prior(ctx, pil)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, cwa.ProductStatus(s.office.RetrievalID(pil), s.office.CWSU, prior, now))
	}
	return statuses, nil
}

// Purge drops stored products older than the retention period.
func (s *Service) Purge(ctx context.Context, retainDays int) (int64, error) {
	cutoff := s.clock.Now().AddDate(0, 0, -retainDays)
	removed, err := s.store.Purge(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge products before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("purged old products")
	}
	return removed, nil
}
