package models

// Score is one recorded stroke count for a player on a hole.
type Score struct {
	PlayerID   string
	HoleNumber int
	Strokes    int
}

// Par is the par configured for a hole in a round.
// Skins are decided on raw strokes, so par is informational only.
type Par struct {
	HoleNumber int
	Par        int
}
