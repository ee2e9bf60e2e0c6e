package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"apptrack/internal/tracker"
)

const recordColumns = "id, company, role, type, status, location, salary, link, notes, created_at, updated_at"

// ListApplications returns every record ordered by updated_at descending.
func (s *Store) ListApplications() ([]tracker.Record, error) {
	rows, err := s.db.Query(`
		SELECT ` + recordColumns + `
		FROM applications ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []tracker.Record
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetApplication returns a single record by id.
func (s *Store) GetApplication(id string) (tracker.Record, error) {
	row := s.db.QueryRow(`
		SELECT `+recordColumns+`
		FROM applications WHERE id = ?`, id)
	r, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return tracker.Record{}, ErrNotFound
	}
	if err != nil {
		return tracker.Record{}, err
	}
	return r, nil
}

// CreateApplication persists rec, assigning the identifier and both
// timestamps. The stored record is returned.
func (s *Store) CreateApplication(rec tracker.Record) (tracker.Record, error) {
	rec.ID = uuid.New().String()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO applications (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Company, rec.Role, string(rec.Type), string(rec.Status),
		rec.Location, rec.Salary, rec.Link, rec.Notes,
		now.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		return tracker.Record{}, err
	}
	return rec, nil
}

// UpdateApplication merges the patch's set fields into the stored record and
// refreshes updated_at, leaving created_at untouched. ErrNotFound is returned
// when no record has the given id.
func (s *Store) UpdateApplication(id string, patch tracker.Patch) (tracker.Record, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return tracker.Record{}, fmt.Errorf("beginning update transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		SELECT `+recordColumns+`
		FROM applications WHERE id = ?`, id)
	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return tracker.Record{}, ErrNotFound
	}
	if err != nil {
		return tracker.Record{}, err
	}

	patch.Apply(&rec)

	now := time.Now().UTC()
	// The clock may not tick between back-to-back updates of the same record;
	// updated_at must still strictly increase.
	if !now.After(rec.UpdatedAt) {
		now = rec.UpdatedAt.Add(time.Nanosecond)
	}
	rec.UpdatedAt = now

	if _, err := tx.Exec(`
		UPDATE applications
		SET company = ?, role = ?, type = ?, status = ?, location = ?, salary = ?, link = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		rec.Company, rec.Role, string(rec.Type), string(rec.Status),
		rec.Location, rec.Salary, rec.Link, rec.Notes,
		now.Format(timeLayout), id,
	); err != nil {
		return tracker.Record{}, err
	}

	if err := tx.Commit(); err != nil {
		return tracker.Record{}, fmt.Errorf("committing update: %w", err)
	}
	return rec, nil
}

// DeleteApplication removes the record permanently.
func (s *Store) DeleteApplication(id string) error {
	res, err := s.db.Exec(`DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (tracker.Record, error) {
	var r tracker.Record
	var typ, status, createdAt, updatedAt string
	if err := scan(
		&r.ID, &r.Company, &r.Role, &typ, &status,
		&r.Location, &r.Salary, &r.Link, &r.Notes,
		&createdAt, &updatedAt,
	); err != nil {
		return tracker.Record{}, err
	}
	r.Type = tracker.Type(typ)
	r.Status = tracker.Status(status)

	var err error
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return tracker.Record{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if r.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return tracker.Record{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return r, nil
}
