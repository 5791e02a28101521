package skins

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/skinsgame/internal/models"
)

// ValidateRequest checks the round and user identifiers before any lookup.
func ValidateRequest(roundID string, userID int64) error {
	if roundID == "" {
		return ErrRoundIDRequired
	}
	if !IsRoundID(roundID) {
		return ErrRoundIDInvalid
	}
	if userID <= 0 {
		return ErrUserIDInvalid
	}
	return nil
}

// IsRoundID reports whether s is a canonical RFC 4122 UUID of version 1 to 5.
func IsRoundID(s string) bool {
	// uuid.Parse also accepts urn-prefixed, braced and unhyphenated forms.
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	v := id.Version()
	return v >= 1 && v <= 5 && id.Variant() == uuid.RFC4122
}

// ResolveAccess loads the round and confirms userID participates in it, either
// as the creator or as a listed player.
func ResolveAccess(ctx context.Context, src RoundSource, roundID string, userID int64) (*models.Round, error) {
	round, err := src.GetRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	if round == nil {
		return nil, ErrRoundNotFound
	}

	if round.CreatedByID == userID {
		return round, nil
	}

	player, err := src.FindRoundParticipant(ctx, roundID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check round participant: %w", err)
	}
	if player == nil {
		return nil, ErrNotParticipant
	}

	return round, nil
}
