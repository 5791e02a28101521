package skinsrpc

// CalculateSkinsRequest asks for the skins view of a round.
// The caller's identity comes from the bearer token.
type CalculateSkinsRequest struct {
	RoundID string `json:"roundId"`
}

// CalculateSkinsResponse is the computed skins view of a round.
type CalculateSkinsResponse struct {
	RoundID        string                   `json:"roundId"`
	SkinsEnabled   bool                     `json:"skinsEnabled"`
	SkinsValue     string                   `json:"skinsValue"`
	Holes          map[int]HoleResult       `json:"holes"`
	PlayerSummary  map[string]PlayerSummary `json:"playerSummary"`
	TotalCarryOver int                      `json:"totalCarryOver"`

	// Players and PlayOrder are display aids for clients rendering a board.
	Players   []Player `json:"players,omitempty"`
	PlayOrder []int    `json:"playOrder,omitempty"`
}

// HoleResult is one resolved hole. Winner is null for a tied hole.
type HoleResult struct {
	Winner      *string `json:"winner"`
	Tied        bool    `json:"tied,omitempty"`
	TiedScore   *int    `json:"tiedScore,omitempty"`
	WinnerScore *int    `json:"winnerScore,omitempty"`
	SkinsValue  string  `json:"skinsValue"`
	CarriedOver int     `json:"carriedOver"`
}

// PlayerSummary is a player's final skins and money position.
type PlayerSummary struct {
	SkinsWon   int     `json:"skinsWon"`
	TotalValue string  `json:"totalValue"`
	MoneyIn    float64 `json:"moneyIn"`
	MoneyOut   float64 `json:"moneyOut"`
	Total      float64 `json:"total"`
}

// Player identifies a round participant for display.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsGuest bool   `json:"isGuest,omitempty"`
}

// User is the public view of an account.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt,omitempty"` // RFC 3339
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}
