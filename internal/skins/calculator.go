// Package skins computes the skins game for a disc golf round.
//
// A round is evaluated in play order starting at its starting hole. The sole
// lowest score on a hole wins one skin plus any skins carried from tied holes
// before it, and collects stake x skins from every other player who scored the
// hole. Ties push their skin into the carry-over pool. A pool still open after
// the last hole goes to the leading player as skins only, without payment.
//
// The money ledger always sums to zero across the round's players.
package skins

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/skinsgame/internal/metrics"
	"github.com/mmynk/skinsgame/internal/models"
)

// RoundSource is the read-only data the calculator needs.
// GetRound and FindRoundParticipant return nil, nil when nothing matches.
type RoundSource interface {
	GetRound(ctx context.Context, roundID string) (*models.Round, error)
	ListRoundPlayers(ctx context.Context, roundID string) ([]models.Player, error)
	ListRoundScores(ctx context.Context, roundID string) ([]models.Score, error)
	ListRoundPars(ctx context.Context, roundID string) ([]models.Par, error)
	FindRoundParticipant(ctx context.Context, roundID string, userID int64) (*models.Player, error)
}

// Calculator computes skins results from a RoundSource.
type Calculator struct {
	source RoundSource
}

// NewCalculator creates a Calculator reading from source.
func NewCalculator(source RoundSource) *Calculator {
	return &Calculator{source: source}
}

// Calculate computes the skins view of a round for a participating user.
func (c *Calculator) Calculate(ctx context.Context, roundID string, userID int64) (*Result, error) {
	started := time.Now()

	result, err := c.calculate(ctx, roundID, userID)
	metrics.ObserveCalculation(outcomeOf(err), started)
	if err != nil {
		return nil, err
	}

	for _, h := range result.Holes {
		if h.Tied {
			metrics.HolesResolved.WithLabelValues("tied").Inc()
		} else {
			metrics.HolesResolved.WithLabelValues("won").Inc()
		}
	}
	return result, nil
}

func (c *Calculator) calculate(ctx context.Context, roundID string, userID int64) (*Result, error) {
	if err := ValidateRequest(roundID, userID); err != nil {
		return nil, err
	}

	round, err := ResolveAccess(ctx, c.source, roundID, userID)
	if err != nil {
		return nil, err
	}
	if !round.SkinsEnabled {
		return nil, ErrSkinsDisabled
	}

	var (
		players []models.Player
		scores  []models.Score
		pars    []models.Par
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if players, err = c.source.ListRoundPlayers(gctx, roundID); err != nil {
			return fmt.Errorf("failed to list round players: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if scores, err = c.source.ListRoundScores(gctx, roundID); err != nil {
			return fmt.Errorf("failed to list round scores: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pars, err = c.source.ListRoundPars(gctx, roundID); err != nil {
			return fmt.Errorf("failed to list round pars: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Pars are loaded with the snapshot but do not decide holes.
	slog.Debug("Round snapshot loaded",
		"round_id", roundID,
		"players", len(players),
		"scores", len(scores),
		"pars", len(pars),
	)

	result, err := Evaluate(round, players, scores)
	if err != nil {
		return nil, err
	}

	if len(result.Settlement) > 0 {
		slog.Debug("Unclaimed skins settled after last hole",
			"round_id", roundID,
			"awards", len(result.Settlement),
		)
	}
	return result, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrValidation):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrForbidden):
		return metrics.OutcomeForbidden
	default:
		return metrics.OutcomeError
	}
}
