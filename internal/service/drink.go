package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/drinks/internal/errs"
	"github.com/deppfellow/drinks/internal/lib/job"
	"github.com/deppfellow/drinks/internal/metrics"
	"github.com/deppfellow/drinks/internal/model"
	"github.com/deppfellow/drinks/internal/repository"
	"github.com/deppfellow/drinks/internal/sqlerr"
	"github.com/rs/zerolog"
)

// Notifier queues drink change notifications.
type Notifier interface {
	EnqueueDrinkEvent(ctx context.Context, p job.DrinkEventPayload) error
}

// DrinkService implements the drink actions on top of a DrinkRepository.
type DrinkService struct {
	repo            repository.DrinkRepository
	logger          *zerolog.Logger
	metrics         *metrics.Metrics
	notifier        Notifier
	caseInsensitive bool
	now             func() time.Time
}

// NewDrinkService builds a DrinkService. metrics and notifier may be nil.
func NewDrinkService(repo repository.DrinkRepository, logger *zerolog.Logger, m *metrics.Metrics, notifier Notifier) *DrinkService {
	return &DrinkService{
		repo:     repo,
		logger:   logger,
		metrics:  m,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithCaseInsensitiveLetters makes List ignore case when matching names.
func (s *DrinkService) WithCaseInsensitiveLetters(enabled bool) *DrinkService {
	s.caseInsensitive = enabled
	return s
}

// List returns all drinks, or those whose name starts with letter when it
// is not empty.
func (s *DrinkService) List(ctx context.Context, letter string) ([]model.Drink, error) {
	start := time.Now()

	drinks, err := s.repo.FindAll(ctx, model.DrinkFilter{Prefix: letter, CaseInsensitive: s.caseInsensitive})
	if err != nil {
		s.observe("index", err, start)
		return nil, sqlerr.HandleError(err)
	}

	s.observe("index", nil, start)
	return drinks, nil
}

// Get loads a drink. A missing id is a 404 *errs.HTTPError.
func (s *DrinkService) Get(ctx context.Context, id int64) (*model.Drink, error) {
	start := time.Now()

	drink, err := s.find(ctx, id)
	s.observe("show", err, start)
	return drink, err
}

// Build returns a blank, unsaved drink for the new form.
func (s *DrinkService) Build() *model.Drink {
	s.observe("new", nil, time.Now())
	return &model.Drink{}
}

// Create validates attrs and stores a new drink.
//
// The candidate is always returned so a rejected form can be shown again.
// Invalid input yields a *model.ValidationError and nothing is stored.
func (s *DrinkService) Create(ctx context.Context, attrs model.DrinkAttributes) (*model.Drink, error) {
	start := time.Now()
	candidate := model.Drink{}.WithAttributes(attrs)

	if err := candidate.Validate(); err != nil {
		s.observe("create", err, start)
		return &candidate, err
	}

	if err := s.repo.Create(ctx, &candidate); err != nil {
		s.observe("create", err, start)
		return &candidate, s.storeError(err)
	}

	s.observe("create", nil, start)
	s.logger.Info().Int64("drink_id", candidate.ID).Msg("drink created")
	s.afterChange(ctx, job.EventCreated, candidate)
	return &candidate, nil
}

// Update applies attrs to drink and stores the result.
//
// drink itself is never modified. On a *model.ValidationError the returned
// drink carries the attempted values and the store is unchanged.
func (s *DrinkService) Update(ctx context.Context, drink *model.Drink, attrs model.DrinkAttributes) (*model.Drink, error) {
	start := time.Now()
	candidate := drink.WithAttributes(attrs)

	if err := candidate.Validate(); err != nil {
		s.observe("update", err, start)
		return &candidate, err
	}

	if err := s.repo.Update(ctx, &candidate); err != nil {
		s.observe("update", err, start)
		return &candidate, s.storeError(err)
	}

	s.observe("update", nil, start)
	s.logger.Info().Int64("drink_id", candidate.ID).Msg("drink updated")
	s.afterChange(ctx, job.EventUpdated, candidate)
	return &candidate, nil
}

// Delete removes drink from the store.
func (s *DrinkService) Delete(ctx context.Context, drink *model.Drink) error {
	start := time.Now()

	if err := s.repo.Delete(ctx, drink.ID); err != nil {
		s.observe("destroy", err, start)
		return s.storeError(err)
	}

	s.observe("destroy", nil, start)
	s.logger.Info().Int64("drink_id", drink.ID).Msg("drink destroyed")
	s.afterChange(ctx, job.EventDestroyed, *drink)
	return nil
}

// Find loads a drink for a follow-up action (edit, update, destroy)
// without recording a show.
func (s *DrinkService) Find(ctx context.Context, id int64) (*model.Drink, error) {
	return s.find(ctx, id)
}

func (s *DrinkService) find(ctx context.Context, id int64) (*model.Drink, error) {
	drink, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err)
	}
	return drink, nil
}

// storeError converts repository errors into client errors.
func (s *DrinkService) storeError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		code := errs.CodeDrinkNotFound
		return errs.NewNotFoundError("Drink not found", true, &code)
	}

	s.logger.Error().Err(err).Msg("drink store failure")
	return sqlerr.HandleError(err)
}

func (s *DrinkService) observe(action string, err error, start time.Time) {
	result := metrics.ResultSuccess
	var vErr *model.ValidationError
	var httpErr *errs.HTTPError
	switch {
	case err == nil:
	case errors.As(err, &vErr):
		result = metrics.ResultInvalid
	case errors.Is(err, repository.ErrNotFound),
		errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound:
		result = metrics.ResultNotFound
	default:
		result = metrics.ResultError
	}
	s.metrics.ObserveAction(action, result, time.Since(start))
}

// afterChange refreshes the stored gauge and queues a notification. Neither
// can fail the action that triggered it.
func (s *DrinkService) afterChange(ctx context.Context, event string, drink model.Drink) {
	if n, err := s.repo.Count(ctx); err == nil {
		s.metrics.SetDrinksStored(n)
	}

	if s.notifier == nil {
		return
	}

	err := s.notifier.EnqueueDrinkEvent(ctx, job.DrinkEventPayload{
		Event:       event,
		DrinkID:     drink.ID,
		Name:        drink.Name,
		Description: drink.Description,
		OccurredAt:  s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn().
			Err(fmt.Errorf("notify %s: %w", event, err)).
			Int64("drink_id", drink.ID).
			Msg("failed to queue drink notification")
	}
}
