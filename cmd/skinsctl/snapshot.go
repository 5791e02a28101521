package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mmynk/skinsgame/internal/models"
	"github.com/mmynk/skinsgame/internal/skins"
)

// snapshot is the on-disk form of a round evaluated offline.
type snapshot struct {
	Round struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		CreatedBy    int64  `json:"createdBy"`
		SkinsEnabled bool   `json:"skinsEnabled"`
		SkinsValue   string `json:"skinsValue"`
		StartingHole int    `json:"startingHole"`
		HoleCount    int    `json:"holeCount"`
	} `json:"round"`
	Players []struct {
		ID        string `json:"id"`
		UserID    int64  `json:"userId"`
		Username  string `json:"username"`
		GuestName string `json:"guestName"`
	} `json:"players"`
	Scores []struct {
		PlayerID string `json:"playerId"`
		Hole     int    `json:"hole"`
		Strokes  int    `json:"strokes"`
	} `json:"scores"`
	Pars []struct {
		Hole int `json:"hole"`
		Par  int `json:"par"`
	} `json:"pars"`
}

// readSnapshot decodes a snapshot into a source the calculator can read.
func readSnapshot(r io.Reader) (*skins.MemorySource, error) {
	var snap snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	src := &skins.MemorySource{
		Round: &models.Round{
			ID:           snap.Round.ID,
			Name:         snap.Round.Name,
			CreatedByID:  snap.Round.CreatedBy,
			SkinsEnabled: snap.Round.SkinsEnabled,
			SkinsValue:   snap.Round.SkinsValue,
			StartingHole: snap.Round.StartingHole,
			HoleCount:    snap.Round.HoleCount,
		},
	}
	if src.Round.StartingHole == 0 {
		src.Round.StartingHole = 1
	}

	for i, p := range snap.Players {
		src.Players = append(src.Players, models.Player{
			ID:        p.ID,
			RoundID:   snap.Round.ID,
			UserID:    p.UserID,
			IsGuest:   p.UserID == 0,
			Username:  p.Username,
			GuestName: p.GuestName,
			JoinedAt:  int64(i),
		})
	}
	for _, s := range snap.Scores {
		src.Scores = append(src.Scores, models.Score{PlayerID: s.PlayerID, HoleNumber: s.Hole, Strokes: s.Strokes})
	}
	for _, p := range snap.Pars {
		src.Pars = append(src.Pars, models.Par{HoleNumber: p.Hole, Par: p.Par})
	}
	return src, nil
}
