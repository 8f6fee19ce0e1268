// Package rxpdb persists consumed rxp streams into SQLite for offline
// analysis.
package rxpdb

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/rxpstream/internal/rxp"
)

// schema.sql contains the SQL statements for creating the export schema:
// sessions, points and inclinations.
//
//go:embed schema.sql
var schemaSQL string

// DB is an export store backed by a SQLite database file.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and applies
// the schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{db}, nil
}

// BeginSession records a new consumption session for the given source and
// returns its id.
func (db *DB) BeginSession(uri string, syncToPPS bool) (string, error) {
	id := uuid.New().String()
	_, err := db.Exec(
		`INSERT INTO rxp_sessions (session_id, uri, sync_to_pps, created_unix_nanos) VALUES (?, ?, ?, ?)`,
		id, uri, syncToPPS, time.Now().UnixNano())
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}
	return id, nil
}

// InsertPoints writes a batch of points for the session in one transaction.
func (db *DB) InsertPoints(sessionID string, points []rxp.Point) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO rxp_points
		(session_id, x, y, z, amplitude, reflectance, deviation, echo_type,
		 waveform_available, pseudo_echo, sw_calculated_target, pps_fresh,
		 time_in_pps_frame, facet, time_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range points {
		_, err := stmt.Exec(sessionID, p.X, p.Y, p.Z, p.Amplitude, p.Reflectance,
			p.Deviation, uint8(p.EchoType), p.WaveformAvailable, p.PseudoEcho,
			p.SWCalculatedTarget, p.PPSFresh, p.TimeInPPSFrame, p.Facet, p.Time)
		if err != nil {
			return fmt.Errorf("failed to insert point: %w", err)
		}
	}

	return tx.Commit()
}

// InsertInclinations writes a batch of inclination samples for the session
// in one transaction.
func (db *DB) InsertInclinations(sessionID string, inclinations []rxp.Inclination) error {
	if len(inclinations) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO rxp_inclinations
		(session_id, time_seconds, roll, pitch) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, inc := range inclinations {
		if _, err := stmt.Exec(sessionID, inc.Time, inc.Roll, inc.Pitch); err != nil {
			return fmt.Errorf("failed to insert inclination: %w", err)
		}
	}

	return tx.Commit()
}

// CountPoints returns the number of points recorded for a session.
func (db *DB) CountPoints(sessionID string) (int64, error) {
	var n int64
	err := db.QueryRow(`SELECT COUNT(*) FROM rxp_points WHERE session_id = ?`, sessionID).Scan(&n)
	return n, err
}

// CountInclinations returns the number of inclination samples recorded for a
// session.
func (db *DB) CountInclinations(sessionID string) (int64, error) {
	var n int64
	err := db.QueryRow(`SELECT COUNT(*) FROM rxp_inclinations WHERE session_id = ?`, sessionID).Scan(&n)
	return n, err
}
