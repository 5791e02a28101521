package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/skinsgame/internal/models"
	"github.com/mmynk/skinsgame/internal/storage"
)

// CreateCourse persists a new course.
func (s *Store) CreateCourse(ctx context.Context, course *models.Course) error {
	if course.HoleCount <= 0 {
		return fmt.Errorf("%w: hole count must be positive", storage.ErrInvalid)
	}
	if course.ID == "" {
		course.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		s.q("INSERT INTO courses (id, name, hole_count) VALUES (?, ?, ?)"),
		course.ID, course.Name, course.HoleCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}
	return nil
}

// CreateRound persists a new round and adds its creator as the first player.
func (s *Store) CreateRound(ctx context.Context, round *models.Round) (*models.Player, error) {
	if round.CreatedByID <= 0 {
		return nil, fmt.Errorf("%w: round creator is required", storage.ErrInvalid)
	}
	if round.ID == "" {
		round.ID = uuid.New().String()
	}
	if round.CreatedAt == 0 {
		round.CreatedAt = time.Now().Unix()
	}
	if round.StartingHole == 0 {
		round.StartingHole = 1
	}
	if round.SkinsValue == "" {
		round.SkinsValue = "0.00"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var holeCount int
	err = tx.QueryRowContext(ctx, s.q("SELECT hole_count FROM courses WHERE id = ?"), round.CourseID).Scan(&holeCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: course %s", storage.ErrNotFound, round.CourseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if round.StartingHole < 1 || round.StartingHole > holeCount {
		return nil, fmt.Errorf("%w: starting hole must be between 1 and %d", storage.ErrInvalid, holeCount)
	}
	round.HoleCount = holeCount

	_, err = tx.ExecContext(ctx,
		s.q(`INSERT INTO rounds (id, course_id, name, created_by_id, skins_enabled, skins_value, starting_hole, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		round.ID, round.CourseID, round.Name, round.CreatedByID,
		round.SkinsEnabled, round.SkinsValue, round.StartingHole, round.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert round: %w", err)
	}

	creator := &models.Player{RoundID: round.ID, UserID: round.CreatedByID}
	if err := s.insertPlayer(ctx, tx, creator); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return creator, nil
}

// AddPlayer adds a registered user or a guest to a round.
func (s *Store) AddPlayer(ctx context.Context, player *models.Player) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.insertPlayer(ctx, tx, player); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) insertPlayer(ctx context.Context, tx *sql.Tx, player *models.Player) error {
	if player.UserID == 0 {
		player.IsGuest = true
		if strings.TrimSpace(player.GuestName) == "" {
			return fmt.Errorf("%w: guest players need a name", storage.ErrInvalid)
		}
	}
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	if player.JoinedAt == 0 {
		player.JoinedAt = time.Now().Unix()
	}

	var position int
	err := tx.QueryRowContext(ctx,
		s.q("SELECT COALESCE(MAX(position), 0) + 1 FROM round_players WHERE round_id = ?"),
		player.RoundID,
	).Scan(&position)
	if err != nil {
		return fmt.Errorf("failed to get next player position: %w", err)
	}

	var userID, guestName any
	if player.UserID != 0 {
		userID = player.UserID
	}
	if player.GuestName != "" {
		guestName = player.GuestName
	}

	_, err = tx.ExecContext(ctx,
		s.q(`INSERT INTO round_players (id, round_id, user_id, is_guest, guest_name, position, joined_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		player.ID, player.RoundID, userID, player.IsGuest, guestName, position, player.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

// RecordScore inserts or replaces a player's strokes on a hole.
func (s *Store) RecordScore(ctx context.Context, roundID string, score models.Score) error {
	if score.Strokes < 1 {
		return fmt.Errorf("%w: strokes must be at least 1", storage.ErrInvalid)
	}
	if err := s.checkHole(ctx, roundID, score.HoleNumber); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		s.q(`INSERT INTO scores (round_id, player_id, hole_number, strokes) VALUES (?, ?, ?, ?)
		 ON CONFLICT (round_id, player_id, hole_number) DO UPDATE SET strokes = excluded.strokes`),
		roundID, score.PlayerID, score.HoleNumber, score.Strokes,
	)
	if err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

// SetPar inserts or replaces the par of a hole.
func (s *Store) SetPar(ctx context.Context, roundID string, par models.Par) error {
	if par.Par < 1 || par.Par > 10 {
		return fmt.Errorf("%w: par must be between 1 and 10", storage.ErrInvalid)
	}
	if err := s.checkHole(ctx, roundID, par.HoleNumber); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		s.q(`INSERT INTO round_hole_pars (round_id, hole_number, par) VALUES (?, ?, ?)
		 ON CONFLICT (round_id, hole_number) DO UPDATE SET par = excluded.par`),
		roundID, par.HoleNumber, par.Par,
	)
	if err != nil {
		return fmt.Errorf("failed to set par: %w", err)
	}
	return nil
}

// checkHole verifies the round exists and hole is on its course.
func (s *Store) checkHole(ctx context.Context, roundID string, hole int) error {
	round, err := s.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	if round == nil {
		return fmt.Errorf("%w: round %s", storage.ErrNotFound, roundID)
	}
	if hole < 1 || hole > round.HoleCount {
		return fmt.Errorf("%w: hole number must be between 1 and %d", storage.ErrInvalid, round.HoleCount)
	}
	return nil
}

// GetRound retrieves a round with its course hole count.
// Returns nil, nil if the round does not exist.
func (s *Store) GetRound(ctx context.Context, roundID string) (*models.Round, error) {
	round := &models.Round{}
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT r.id, r.course_id, r.name, r.created_by_id, r.skins_enabled, r.skins_value,
		        r.starting_hole, r.created_at, c.hole_count
		 FROM rounds r
		 JOIN courses c ON r.course_id = c.id
		 WHERE r.id = ?`),
		roundID,
	).Scan(&round.ID, &round.CourseID, &round.Name, &round.CreatedByID, &round.SkinsEnabled,
		&round.SkinsValue, &round.StartingHole, &round.CreatedAt, &round.HoleCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return round, nil
}

const playerColumns = `rp.id, rp.round_id, rp.user_id, rp.is_guest, rp.guest_name, u.username, rp.joined_at`

func scanPlayer(row interface{ Scan(...any) error }) (models.Player, error) {
	var (
		p         models.Player
		userID    sql.NullInt64
		guestName sql.NullString
		username  sql.NullString
	)
	if err := row.Scan(&p.ID, &p.RoundID, &userID, &p.IsGuest, &guestName, &username, &p.JoinedAt); err != nil {
		return p, err
	}
	p.UserID = userID.Int64
	p.GuestName = guestName.String
	p.Username = username.String
	return p, nil
}

// ListRoundPlayers returns the round's players in join order.
func (s *Store) ListRoundPlayers(ctx context.Context, roundID string) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT `+playerColumns+`
		 FROM round_players rp
		 LEFT JOIN users u ON rp.user_id = u.id
		 WHERE rp.round_id = ?
		 ORDER BY rp.position ASC`),
		roundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}

// FindRoundParticipant returns the player linked to userID in the round.
// Returns nil, nil if the user does not play in the round.
func (s *Store) FindRoundParticipant(ctx context.Context, roundID string, userID int64) (*models.Player, error) {
	p, err := scanPlayer(s.db.QueryRowContext(ctx,
		s.q(`SELECT `+playerColumns+`
		 FROM round_players rp
		 LEFT JOIN users u ON rp.user_id = u.id
		 WHERE rp.round_id = ? AND rp.user_id = ?`),
		roundID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}
	return &p, nil
}

// ListRoundScores returns every recorded score of the round.
func (s *Store) ListRoundScores(ctx context.Context, roundID string) ([]models.Score, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT player_id, hole_number, strokes
		 FROM scores
		 WHERE round_id = ?
		 ORDER BY hole_number ASC, player_id ASC`),
		roundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	var scores []models.Score
	for rows.Next() {
		var sc models.Score
		if err := rows.Scan(&sc.PlayerID, &sc.HoleNumber, &sc.Strokes); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scores: %w", err)
	}
	return scores, nil
}

// ListRoundPars returns the pars configured for the round.
func (s *Store) ListRoundPars(ctx context.Context, roundID string) ([]models.Par, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT hole_number, par
		 FROM round_hole_pars
		 WHERE round_id = ?
		 ORDER BY hole_number ASC`),
		roundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pars: %w", err)
	}
	defer rows.Close()

	var pars []models.Par
	for rows.Next() {
		var p models.Par
		if err := rows.Scan(&p.HoleNumber, &p.Par); err != nil {
			return nil, fmt.Errorf("failed to scan par: %w", err)
		}
		pars = append(pars, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pars: %w", err)
	}
	return pars, nil
}
