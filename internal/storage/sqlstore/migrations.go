package sqlstore

import "database/sql"

// sqliteSchema contains the SQL statements to set up the SQLite schema.
// These run on startup to ensure tables exist.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    username TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS courses (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    hole_count INTEGER NOT NULL CHECK (hole_count > 0)
);

CREATE TABLE IF NOT EXISTS rounds (
    id TEXT PRIMARY KEY,
    course_id TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    created_by_id INTEGER NOT NULL,
    skins_enabled BOOLEAN NOT NULL DEFAULT 0,
    skins_value TEXT NOT NULL DEFAULT '0.00',
    starting_hole INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (course_id) REFERENCES courses(id)
);

CREATE TABLE IF NOT EXISTS round_players (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL,
    user_id INTEGER,
    is_guest BOOLEAN NOT NULL DEFAULT 0,
    guest_name TEXT,
    position INTEGER NOT NULL,
    joined_at INTEGER NOT NULL,
    UNIQUE (round_id, user_id),
    FOREIGN KEY (round_id) REFERENCES rounds(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS scores (
    round_id TEXT NOT NULL,
    player_id TEXT NOT NULL,
    hole_number INTEGER NOT NULL,
    strokes INTEGER NOT NULL CHECK (strokes > 0),
    PRIMARY KEY (round_id, player_id, hole_number),
    FOREIGN KEY (round_id) REFERENCES rounds(id) ON DELETE CASCADE,
    FOREIGN KEY (player_id) REFERENCES round_players(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS round_hole_pars (
    round_id TEXT NOT NULL,
    hole_number INTEGER NOT NULL,
    par INTEGER NOT NULL CHECK (par BETWEEN 1 AND 10),
    PRIMARY KEY (round_id, hole_number),
    FOREIGN KEY (round_id) REFERENCES rounds(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_round_players_round_id ON round_players(round_id);
CREATE INDEX IF NOT EXISTS idx_scores_round_id ON scores(round_id);
`

// postgresSchema mirrors sqliteSchema with PostgreSQL types.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    username TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS courses (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    hole_count INTEGER NOT NULL CHECK (hole_count > 0)
);

CREATE TABLE IF NOT EXISTS rounds (
    id TEXT PRIMARY KEY,
    course_id TEXT NOT NULL REFERENCES courses(id),
    name TEXT NOT NULL DEFAULT '',
    created_by_id BIGINT NOT NULL,
    skins_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    skins_value NUMERIC(10,2) NOT NULL DEFAULT 0,
    starting_hole INTEGER NOT NULL DEFAULT 1,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS round_players (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
    user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
    is_guest BOOLEAN NOT NULL DEFAULT FALSE,
    guest_name TEXT,
    position INTEGER NOT NULL,
    joined_at BIGINT NOT NULL,
    UNIQUE (round_id, user_id)
);

CREATE TABLE IF NOT EXISTS scores (
    round_id TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
    player_id TEXT NOT NULL REFERENCES round_players(id) ON DELETE CASCADE,
    hole_number INTEGER NOT NULL,
    strokes INTEGER NOT NULL CHECK (strokes > 0),
    PRIMARY KEY (round_id, player_id, hole_number)
);

CREATE TABLE IF NOT EXISTS round_hole_pars (
    round_id TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
    hole_number INTEGER NOT NULL,
    par INTEGER NOT NULL CHECK (par BETWEEN 1 AND 10),
    PRIMARY KEY (round_id, hole_number)
);

CREATE INDEX IF NOT EXISTS idx_round_players_round_id ON round_players(round_id);
CREATE INDEX IF NOT EXISTS idx_scores_round_id ON scores(round_id);
`

// runMigrations executes the schema setup for the dialect.
func runMigrations(db *sql.DB, d dialect) error {
	schema := sqliteSchema
	if d == dialectPostgres {
		schema = postgresSchema
	}
	_, err := db.Exec(schema)
	return err
}
