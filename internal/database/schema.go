package database

// schema holds the DDL for the staff skills tables. Statements are
// idempotent so EnsureSchema can run on every startup.
//
// person_skill carries ON DELETE CASCADE on both foreign keys, but the
// repositories still remove associations explicitly inside the owning
// transaction so the behavior does not depend on the store honoring
// cascades.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS person (
		id           BIGSERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		staff_number TEXT NOT NULL UNIQUE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS skill (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS person_skill (
		person_id BIGINT NOT NULL REFERENCES person (id) ON DELETE CASCADE,
		skill_id  BIGINT NOT NULL REFERENCES skill (id) ON DELETE CASCADE,
		level     TEXT NOT NULL,
		PRIMARY KEY (person_id, skill_id)
	)`,
}

// EnsureSchema creates the tables if they do not exist yet
func EnsureSchema(db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
