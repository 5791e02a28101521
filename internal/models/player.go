package models

// Player represents a participant in a round.
type Player struct {
	// ID is the unique identifier for the round player (UUID format).
	// Skins results are keyed by this ID.
	ID string

	// RoundID is the round this player belongs to.
	RoundID string

	// UserID links the player to a registered user. Zero for guests.
	UserID int64

	// IsGuest reports whether the player has no user account.
	IsGuest bool

	// GuestName is the display name for guest players.
	GuestName string

	// Username is the linked user's username, if any.
	Username string

	// JoinedAt is the Unix timestamp when the player joined the round.
	// Players are listed in join order.
	JoinedAt int64
}

// DisplayName returns the name to show for the player.
func (p Player) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	if p.GuestName != "" {
		return p.GuestName
	}
	return p.ID
}
