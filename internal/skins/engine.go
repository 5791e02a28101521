package skins

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/skinsgame/internal/models"
)

// HoleResult is the outcome of one resolved hole.
type HoleResult struct {
	Number   int
	Position int

	// Winner is the winning player ID, empty when the hole is tied.
	Winner string
	Tied   bool

	// Score is the winning stroke count, or the tied low score.
	Score int

	// SkinsWon is 1 plus the carried pool for a won hole, 0 for a tie.
	SkinsWon int

	// SkinsValue is stake x SkinsWon for a won hole, the stake for a tie.
	SkinsValue decimal.Decimal

	// CarriedOver is the pool carried into this hole, excluding its own skin.
	CarriedOver int
}

// SettlementAward records skins handed out from the pool left after the last hole.
type SettlementAward struct {
	PlayerID string
	Skins    int
}

// Result is the computed skins view of a round.
type Result struct {
	RoundID      string
	SkinsEnabled bool
	SkinsValue   string // base stake as stored

	PlayOrder []int
	Holes     []HoleResult // resolved holes, in play order
	Players   []models.Player
	Summary   map[string]PlayerSummary

	Settlement     []SettlementAward
	TotalCarryOver int
}

// Hole returns the result for a hole number.
func (r *Result) Hole(number int) (HoleResult, bool) {
	for _, h := range r.Holes {
		if h.Number == number {
			return h, true
		}
	}
	return HoleResult{}, false
}

// state is the accumulator threaded through the hole fold.
type state struct {
	stake    decimal.Decimal
	pool     int
	ledger   ledger
	holes    []HoleResult
	competed map[string]bool
}

// Evaluate runs the skins game for a round snapshot. It performs no I/O.
func Evaluate(round *models.Round, players []models.Player, scores []models.Score) (*Result, error) {
	stake, err := ParseStake(round.SkinsValue)
	if err != nil {
		return nil, err
	}

	order := PlayOrder(round.StartingHole, round.HoleCount)
	holes := AggregateHoles(order, players, scores)

	s := state{
		stake:    stake,
		ledger:   newLedger(players),
		holes:    make([]HoleResult, 0, len(holes)),
		competed: make(map[string]bool, len(players)),
	}
	for _, hole := range holes {
		s = resolveHole(s, hole)
	}
	s, awards := settle(s)

	return &Result{
		RoundID:        round.ID,
		SkinsEnabled:   round.SkinsEnabled,
		SkinsValue:     round.SkinsValue,
		PlayOrder:      order,
		Holes:          s.holes,
		Players:        players,
		Summary:        s.ledger.summary(stake),
		Settlement:     awards,
		TotalCarryOver: s.pool,
	}, nil
}

// ParseStake parses the base stake of a round.
func ParseStake(value string) (decimal.Decimal, error) {
	stake, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid skins value %q: %w", value, err)
	}
	if stake.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid skins value %q: must not be negative", value)
	}
	return stake, nil
}

// resolveHole decides a single hole and returns the next state.
func resolveHole(s state, hole Hole) state {
	if len(hole.Competitors) == 0 {
		return s
	}
	for _, c := range hole.Competitors {
		s.competed[c.PlayerID] = true
	}

	carried := s.pool
	low := hole.Competitors[0].Strokes
	for _, c := range hole.Competitors[1:] {
		if c.Strokes < low {
			low = c.Strokes
		}
	}

	var lowest []string
	for _, c := range hole.Competitors {
		if c.Strokes == low {
			lowest = append(lowest, c.PlayerID)
		}
	}

	if len(lowest) > 1 {
		s.holes = append(s.holes, HoleResult{
			Number:      hole.Number,
			Position:    hole.Position,
			Tied:        true,
			Score:       low,
			SkinsValue:  s.stake,
			CarriedOver: carried,
		})
		s.pool++
		return s
	}

	winner := lowest[0]
	won := 1 + s.pool
	value := s.stake.Mul(decimal.NewFromInt(int64(won)))

	s.holes = append(s.holes, HoleResult{
		Number:      hole.Number,
		Position:    hole.Position,
		Winner:      winner,
		Score:       low,
		SkinsWon:    won,
		SkinsValue:  value,
		CarriedOver: carried,
	})
	s.pool = 0

	losers := make([]string, 0, len(hole.Competitors)-1)
	for _, c := range hole.Competitors {
		if c.PlayerID != winner {
			losers = append(losers, c.PlayerID)
		}
	}
	s.ledger.award(winner, won)
	s.ledger.transfer(winner, losers, value)
	return s
}

// settle hands an unclaimed pool to the leading player after the last hole.
// Only skins are awarded; no money changes hands. Co-leaders split the pool
// evenly and any remainder goes one skin at a time in roster order.
// Players who never competed on a resolved hole are not candidates, even when
// every competitor is tied with them on zero skins.
func settle(s state) (state, []SettlementAward) {
	if s.pool == 0 {
		return s, nil
	}

	leaders := s.ledger.leaders(s.competed)
	if len(leaders) == 0 {
		return s, nil
	}

	share, remainder := s.pool/len(leaders), s.pool%len(leaders)
	var awards []SettlementAward
	for i, id := range leaders {
		skins := share
		if i < remainder {
			skins++
		}
		if skins == 0 {
			continue
		}
		s.ledger.award(id, skins)
		awards = append(awards, SettlementAward{PlayerID: id, Skins: skins})
	}
	s.pool = 0
	return s, awards
}
