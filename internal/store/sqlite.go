package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/danmuck/noddictl/internal/wholebrain"
)

const schema = `CREATE TABLE IF NOT EXISTS wholebrain_noddi (
	participant_id TEXT NOT NULL,
	parcellation   TEXT NOT NULL,
	whole_od       REAL NOT NULL,
	whole_icvf     REAL NOT NULL,
	whole_isovf    REAL NOT NULL,
	PRIMARY KEY (participant_id, parcellation)
)`

// SQLite persists whole-brain rows into a single-table cohort database so
// downstream analyses can query results without re-parsing CSVs.
type SQLite struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the cohort database at path and
// ensures the schema exists. Use ":memory:" for an in-memory database.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store open (%s): %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store schema (%s): %w", path, err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Put upserts one whole-brain row keyed by (participant, parcellation).
func (s *SQLite) Put(m wholebrain.Metrics) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO wholebrain_noddi
			(participant_id, parcellation, whole_od, whole_icvf, whole_isovf)
			VALUES (?, ?, ?, ?, ?)`,
		m.ParticipantID, m.Parcellation, m.OD, m.ICVF, m.IsoVF,
	)
	if err != nil {
		return fmt.Errorf("store put (%s/%s): %w", m.ParticipantID, m.Parcellation, err)
	}
	return nil
}

// Metrics returns all stored rows for one parcellation, ordered by
// participant identifier.
func (s *SQLite) Metrics(parcellation string) ([]wholebrain.Metrics, error) {
	rows, err := s.db.Query(
		`SELECT participant_id, whole_od, whole_icvf, whole_isovf
			FROM wholebrain_noddi WHERE parcellation = ?
			ORDER BY participant_id`,
		parcellation,
	)
	if err != nil {
		return nil, fmt.Errorf("store query (%s): %w", parcellation, err)
	}
	defer rows.Close()

	out := make([]wholebrain.Metrics, 0)
	for rows.Next() {
		m := wholebrain.Metrics{Parcellation: parcellation}
		if err := rows.Scan(&m.ParticipantID, &m.OD, &m.ICVF, &m.IsoVF); err != nil {
			return nil, fmt.Errorf("store scan (%s): %w", parcellation, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store query (%s): %w", parcellation, err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
