package models

// Course represents a disc golf course layout.
type Course struct {
	// ID is the unique identifier for the course (UUID format).
	ID string

	// Name is the display name of the course.
	Name string

	// HoleCount is the number of holes on the course (e.g. 9 or 18).
	HoleCount int
}

// Round represents one round played on a course.
// A round is read as an immutable snapshot while skins are calculated.
type Round struct {
	// ID is the unique identifier for the round (UUID format).
	ID string

	// CourseID is the course this round is played on.
	CourseID string

	// Name is an optional human-readable label for the round.
	Name string

	// CreatedByID is the user ID of the round creator.
	// The creator can always view the round's skins.
	CreatedByID int64

	// SkinsEnabled reports whether a skins game is played in this round.
	SkinsEnabled bool

	// SkinsValue is the base stake per skin as a decimal string (e.g. "5.00").
	// It is echoed back unformatted in skins results.
	SkinsValue string

	// StartingHole is the 1-based hole the group teed off on.
	StartingHole int

	// HoleCount is copied from the course when the round is read.
	HoleCount int

	// CreatedAt is the Unix timestamp when the round was created.
	CreatedAt int64
}
