package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/skinsgame/internal/models"
	"github.com/mmynk/skinsgame/internal/skins"
	"github.com/mmynk/skinsgame/internal/storage"
)

// importSnapshot writes a snapshot round, its players, scores and pars into
// store. Player IDs are reassigned by the store; the round keeps its ID.
func importSnapshot(ctx context.Context, store storage.Store, src *skins.MemorySource) (*models.Round, error) {
	creator, err := store.GetUserByID(ctx, src.Round.CreatedByID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up round creator: %w", err)
	}
	if creator == nil {
		return nil, fmt.Errorf("round creator %d is not a registered user", src.Round.CreatedByID)
	}

	if src.Round.ID != "" {
		existing, err := store.GetRound(ctx, src.Round.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check round: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("round %s already exists", src.Round.ID)
		}
	}

	name := src.Round.Name
	if name == "" {
		name = "Imported course"
	}
	course := &models.Course{Name: name, HoleCount: src.Round.HoleCount}
	if err := store.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	round := &models.Round{
		ID:           src.Round.ID,
		CourseID:     course.ID,
		Name:         src.Round.Name,
		CreatedByID:  creator.ID,
		SkinsEnabled: src.Round.SkinsEnabled,
		SkinsValue:   src.Round.SkinsValue,
		StartingHole: src.Round.StartingHole,
	}
	creatorPlayer, err := store.CreateRound(ctx, round)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(src.Players))
	for _, p := range src.Players {
		if p.UserID == creator.ID && !hasValue(ids, creatorPlayer.ID) {
			ids[p.ID] = creatorPlayer.ID
			continue
		}

		player := &models.Player{RoundID: round.ID, UserID: p.UserID}
		if p.UserID == 0 {
			player.GuestName = p.GuestName
			if player.GuestName == "" {
				player.GuestName = p.Username
			}
		}
		if err := store.AddPlayer(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to add player %s: %w", p.ID, err)
		}
		ids[p.ID] = player.ID
	}

	for _, s := range src.Scores {
		playerID, ok := ids[s.PlayerID]
		if !ok {
			slog.Warn("Skipping score for unknown player", "player_id", s.PlayerID, "hole", s.HoleNumber)
			continue
		}
		s.PlayerID = playerID
		if err := store.RecordScore(ctx, round.ID, s); err != nil {
			return nil, fmt.Errorf("failed to record score on hole %d: %w", s.HoleNumber, err)
		}
	}
	for _, p := range src.Pars {
		if err := store.SetPar(ctx, round.ID, p); err != nil {
			return nil, fmt.Errorf("failed to set par on hole %d: %w", p.HoleNumber, err)
		}
	}

	slog.Debug("Snapshot imported",
		"round_id", round.ID,
		"players", len(ids),
		"scores", len(src.Scores),
	)
	return round, nil
}

func hasValue(m map[string]string, v string) bool {
	for _, x := range m {
		if x == v {
			return true
		}
	}
	return false
}
