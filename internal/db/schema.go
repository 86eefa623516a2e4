package db

import "fmt"

// SchemaSQL is the complete schema for fresh census installs.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(), so repository code referencing a column
// that does not exist here fails immediately with "no such column" at test
// time, not in production.
//
// Every statement is idempotent (IF NOT EXISTS), so the schema is applied
// unconditionally on every startup.
const SchemaSQL = `
-- Organizations (employer registry)
CREATE TABLE IF NOT EXISTS organizations (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Eye colors (reference data harvested from population files)
CREATE TABLE IF NOT EXISTS eye_colors (
	id INTEGER PRIMARY KEY,
	color TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Genders (reference data harvested from population files)
CREATE TABLE IF NOT EXISTS genders (
	id INTEGER PRIMARY KEY,
	gender TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Tags (free-form labels harvested from population files)
CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Foods (favourite foods, classified at storage time)
CREATE TABLE IF NOT EXISTS foods (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	classification TEXT NOT NULL CHECK(classification IN ('fruit', 'vegetable', 'unclassified')) DEFAULT 'unclassified',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Individuals (versioned population records; one active row per guid)
CREATE TABLE IF NOT EXISTS individuals (
	id INTEGER PRIMARY KEY,
	guid TEXT NOT NULL,
	source_ref TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL,
	organization_id INTEGER NOT NULL,
	eye_color_id INTEGER NOT NULL,
	gender_id INTEGER NOT NULL,
	has_died INTEGER NOT NULL DEFAULT 0,
	balance_cents INTEGER NOT NULL DEFAULT 0,
	picture TEXT NOT NULL DEFAULT '',
	age INTEGER NOT NULL DEFAULT 0,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	about TEXT NOT NULL DEFAULT '',
	registered TEXT NOT NULL DEFAULT '',
	greeting TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (organization_id) REFERENCES organizations(id),
	FOREIGN KEY (eye_color_id) REFERENCES eye_colors(id),
	FOREIGN KEY (gender_id) REFERENCES genders(id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_individuals_active_guid ON individuals(guid) WHERE active = 1;
CREATE INDEX IF NOT EXISTS idx_individuals_guid ON individuals(guid);
CREATE INDEX IF NOT EXISTS idx_individuals_organization ON individuals(organization_id);

-- Individual tag assignments
CREATE TABLE IF NOT EXISTS individual_tags (
	individual_id INTEGER NOT NULL,
	tag_id INTEGER NOT NULL,
	FOREIGN KEY (individual_id) REFERENCES individuals(id) ON DELETE CASCADE,
	FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE,
	UNIQUE(individual_id, tag_id)
);

-- Individual favourite foods
CREATE TABLE IF NOT EXISTS individual_foods (
	individual_id INTEGER NOT NULL,
	food_id INTEGER NOT NULL,
	FOREIGN KEY (individual_id) REFERENCES individuals(id) ON DELETE CASCADE,
	FOREIGN KEY (food_id) REFERENCES foods(id) ON DELETE CASCADE,
	UNIQUE(individual_id, food_id)
);

-- Individual friendships (asymmetric, stored as directed edges)
CREATE TABLE IF NOT EXISTS individual_friends (
	individual_id INTEGER NOT NULL,
	friend_id INTEGER NOT NULL,
	FOREIGN KEY (individual_id) REFERENCES individuals(id) ON DELETE CASCADE,
	FOREIGN KEY (friend_id) REFERENCES individuals(id) ON DELETE CASCADE,
	UNIQUE(individual_id, friend_id)
);

-- Ingested snapshots (append-only ledger of completed ingestion runs)
CREATE TABLE IF NOT EXISTS ingested_snapshots (
	id INTEGER PRIMARY KEY,
	organizations_hash TEXT NOT NULL,
	population_hash TEXT NOT NULL,
	ingested_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_snapshots_hashes ON ingested_snapshots(organizations_hash, population_hash);
`

// InitSchema applies the authoritative schema to the database.
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

// GetSchemaSQL returns the authoritative schema SQL.
// Tests must use this instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
