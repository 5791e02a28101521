package skins

import (
	"sort"

	"github.com/mmynk/skinsgame/internal/models"
)

// Competitor is a player with a single recorded stroke count on a hole.
type Competitor struct {
	PlayerID string
	Strokes  int
}

// Hole is one hole in play order together with its active competitors.
type Hole struct {
	Number      int
	Position    int // 1-based position in play order
	Competitors []Competitor
}

// PlayOrder returns the holes in the order they are played: starting at
// startingHole and wrapping from holeCount back to 1, for holeCount positions.
func PlayOrder(startingHole, holeCount int) []int {
	if holeCount <= 0 {
		return nil
	}
	start := ((startingHole-1)%holeCount + holeCount) % holeCount

	order := make([]int, holeCount)
	for i := range order {
		order[i] = (start+i)%holeCount + 1
	}
	return order
}

// AggregateHoles groups scores by hole and returns the holes of order that have
// at least one recorded score. Competitors are listed in roster order.
func AggregateHoles(order []int, players []models.Player, scores []models.Score) []Hole {
	roster := make(map[string]int, len(players))
	for i, p := range players {
		roster[p.ID] = i
	}

	byHole := make(map[int][]models.Score)
	for _, s := range scores {
		byHole[s.HoleNumber] = append(byHole[s.HoleNumber], s)
	}

	holes := make([]Hole, 0, len(order))
	for i, number := range order {
		recorded := byHole[number]
		if len(recorded) == 0 {
			continue
		}
		holes = append(holes, Hole{
			Number:      number,
			Position:    i + 1,
			Competitors: activeCompetitors(recorded, roster),
		})
	}
	return holes
}

// activeCompetitors keeps roster players with exactly one score on the hole.
func activeCompetitors(recorded []models.Score, roster map[string]int) []Competitor {
	counts := make(map[string]int, len(recorded))
	for _, s := range recorded {
		counts[s.PlayerID]++
	}

	active := make([]Competitor, 0, len(counts))
	for _, s := range recorded {
		if _, known := roster[s.PlayerID]; !known || counts[s.PlayerID] != 1 {
			continue
		}
		active = append(active, Competitor{PlayerID: s.PlayerID, Strokes: s.Strokes})
	}

	sort.Slice(active, func(i, j int) bool {
		return roster[active[i].PlayerID] < roster[active[j].PlayerID]
	})
	return active
}
