package skins

import (
	"context"

	"github.com/mmynk/skinsgame/internal/models"
)

// MemorySource serves a single round snapshot held in memory.
type MemorySource struct {
	Round   *models.Round
	Players []models.Player
	Scores  []models.Score
	Pars    []models.Par
}

var _ RoundSource = (*MemorySource)(nil)

func (m *MemorySource) has(roundID string) bool {
	return m.Round != nil && m.Round.ID == roundID
}

// GetRound returns a copy of the round, or nil if roundID does not match.
func (m *MemorySource) GetRound(_ context.Context, roundID string) (*models.Round, error) {
	if !m.has(roundID) {
		return nil, nil
	}
	round := *m.Round
	return &round, nil
}

func (m *MemorySource) ListRoundPlayers(_ context.Context, roundID string) ([]models.Player, error) {
	if !m.has(roundID) {
		return nil, nil
	}
	return append([]models.Player(nil), m.Players...), nil
}

func (m *MemorySource) ListRoundScores(_ context.Context, roundID string) ([]models.Score, error) {
	if !m.has(roundID) {
		return nil, nil
	}
	return append([]models.Score(nil), m.Scores...), nil
}

func (m *MemorySource) ListRoundPars(_ context.Context, roundID string) ([]models.Par, error) {
	if !m.has(roundID) {
		return nil, nil
	}
	return append([]models.Par(nil), m.Pars...), nil
}

// FindRoundParticipant returns the player linked to userID, if any.
func (m *MemorySource) FindRoundParticipant(_ context.Context, roundID string, userID int64) (*models.Player, error) {
	if !m.has(roundID) {
		return nil, nil
	}
	for _, p := range m.Players {
		if p.UserID != 0 && p.UserID == userID {
			player := p
			return &player, nil
		}
	}
	return nil, nil
}
