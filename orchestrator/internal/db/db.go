package db

const (
	initTableQuery = `CREATE TABLE IF NOT EXISTS streams (
		name text PRIMARY KEY,
		first_seen timestamptz NOT NULL,
		last_seen timestamptz NOT NULL,
		cycles integer NOT NULL DEFAULT 1
	);`
)

const (
	recordSightingQuery = `INSERT INTO streams (name, first_seen, last_seen)
		VALUES ($1, $2, $2)
		ON CONFLICT (name) DO UPDATE
		SET last_seen = EXCLUDED.last_seen, cycles = streams.cycles + 1`
	getStreamQuery = `SELECT name, first_seen, last_seen, cycles
		FROM streams WHERE name = $1`
	listStreamsQuery = `SELECT name, first_seen, last_seen, cycles
		FROM streams ORDER BY last_seen DESC LIMIT $1`
)
