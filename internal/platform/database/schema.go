package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []struct {
	name string
	ddl  string
}{
	{"users", `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	first_name VARCHAR(255) NOT NULL,
	last_name VARCHAR(255) NOT NULL DEFAULT '',
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
	{"captains", `
CREATE TABLE IF NOT EXISTS captains (
	id UUID PRIMARY KEY,
	first_name VARCHAR(255) NOT NULL,
	last_name VARCHAR(255) NOT NULL DEFAULT '',
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	equipment TEXT[] NOT NULL DEFAULT '{}',
	skills TEXT[] NOT NULL DEFAULT '{}',
	instagram TEXT NOT NULL DEFAULT '',
	vsco TEXT NOT NULL DEFAULT '',
	portfolio TEXT NOT NULL DEFAULT '',
	city VARCHAR(255) NOT NULL,
	state VARCHAR(255) NOT NULL DEFAULT '',
	country VARCHAR(255) NOT NULL,
	lat DOUBLE PRECISION,
	lng DOUBLE PRECISION,
	status VARCHAR(16) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
	session_expires_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
	{"captains_status_idx", `
CREATE INDEX IF NOT EXISTS captains_status_idx ON captains (status);`},
	{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	captain_id UUID NOT NULL REFERENCES captains (id),
	user_id UUID NOT NULL REFERENCES users (id),
	shoot_type VARCHAR(64) NOT NULL,
	location TEXT NOT NULL,
	booked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	status VARCHAR(16) NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Accepted', 'Declined')),
	rating SMALLINT CHECK (rating BETWEEN 1 AND 5),
	review TEXT
);`},
	{"bookings_captain_idx", `
CREATE INDEX IF NOT EXISTS bookings_captain_idx ON bookings (captain_id, booked_at DESC);`},
	{"bookings_user_idx", `
CREATE INDEX IF NOT EXISTS bookings_user_idx ON bookings (user_id, booked_at DESC);`},
}

func InitializeSchema(ctx context.Context, db *sqlx.DB) error {
	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("failed to create %s: %w", s.name, err)
		}
	}
	return nil
}
