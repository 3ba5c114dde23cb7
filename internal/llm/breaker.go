// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package llm

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/reelreads/reelreads/internal/logging"
	"github.com/reelreads/reelreads/internal/metrics"
	"github.com/reelreads/reelreads/internal/models"
)

// Ensure CircuitBreakerClient implements ClientInterface
var _ ClientInterface = (*CircuitBreakerClient)(nil)

// CircuitBreakerClient wraps the model client with a circuit breaker.
// Completions are the slowest call in the pipeline; when the provider is
// down, failing fast here switches the whole service into degraded
// responses instead of queuing up 60-second timeouts.
type CircuitBreakerClient struct {
	client ClientInterface
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps client with circuit breaker protection.
// The breaker trips at a 60% failure rate over at least 5 requests; the
// lower request floor than the catalog breaker reflects the much lower
// call volume.
func NewCircuitBreakerClient(client ClientInterface) *CircuitBreakerClient {
	cbName := "llm-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening llm circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("from", from.String()).Str("to", to.String()).
				Msg("llm circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps a model call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("llm request rejected by circuit breaker")
			return nil, models.NewServiceError("llm", err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	return result, nil
}

// GenerateRecommendations runs a unified recommendation completion with
// circuit breaker protection.
func (cbc *CircuitBreakerClient) GenerateRecommendations(ctx context.Context, movies []string, prefs *models.Preferences) (*CandidateSet, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.GenerateRecommendations(ctx, movies, prefs)
	})
	if err != nil {
		return nil, err
	}
	set, ok := result.(*CandidateSet)
	if !ok {
		return nil, errors.New("circuit breaker: unexpected result type for GenerateRecommendations")
	}
	return set, nil
}

// AnalyzeTasteProfile runs a profile completion with circuit breaker
// protection.
func (cbc *CircuitBreakerClient) AnalyzeTasteProfile(ctx context.Context, movies []string, prefs *models.Preferences) (*models.TasteProfile, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.AnalyzeTasteProfile(ctx, movies, prefs)
	})
	if err != nil {
		return nil, err
	}
	profile, ok := result.(*models.TasteProfile)
	if !ok {
		return nil, errors.New("circuit breaker: unexpected result type for AnalyzeTasteProfile")
	}
	return profile, nil
}

// State returns the current circuit breaker state.
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
