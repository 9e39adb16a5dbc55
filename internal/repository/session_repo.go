package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"smartpark/internal/models"
	"smartpark/internal/service"
)

// SessionRepository handles persistence of parking sessions. A session is
// open while exit_time is NULL; exit fields are written exactly once.
type SessionRepository struct {
	db dbtx
}

// NewSessionRepository returns repository instance.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) withTx(tx *sql.Tx) *SessionRepository {
	return &SessionRepository{db: tx}
}

// Open creates a new open session row and returns its id.
func (r *SessionRepository) Open(ctx context.Context, session *models.Session) (int64, error) {
	const query = `
		INSERT INTO parking_sessions (plate_number, slot_number, entry_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		normalizePlate(session.PlateNumber),
		session.SlotNumber,
		session.EntryTime,
	).Scan(&session.ID)
	if err != nil {
		return 0, err
	}
	return session.ID, nil
}

// Close sets the exit fields of an open session. The exit_time IS NULL
// guard makes a double close match zero rows, so one of two concurrent
// exits always fails.
func (r *SessionRepository) Close(ctx context.Context, sessionID int64, exitTime time.Time, durationHours int) error {
	const query = `
		UPDATE parking_sessions
		SET exit_time = $2, duration_hours = $3
		WHERE id = $1 AND exit_time IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, sessionID, exitTime, durationHours)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM parking_sessions WHERE id = $1)`, sessionID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return service.ErrSessionNotFound
		}
		return service.ErrSessionClosed
	}
	return nil
}

// GetOpen fetches a session by id, reporting whether it is absent or
// already closed.
func (r *SessionRepository) GetOpen(ctx context.Context, sessionID int64) (*models.Session, error) {
	const query = `
		SELECT id, plate_number, slot_number, entry_time, exit_time, duration_hours
		FROM parking_sessions
		WHERE id = $1
	`
	var s models.Session
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&s.ID,
		&s.PlateNumber,
		&s.SlotNumber,
		&s.EntryTime,
		&s.ExitTime,
		&s.DurationHours,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrSessionNotFound
		}
		return nil, err
	}
	if !s.Open() {
		return nil, service.ErrSessionClosed
	}
	return &s, nil
}

// ListActive returns open sessions joined with car details, most recent
// entry first.
func (r *SessionRepository) ListActive(ctx context.Context) ([]models.ActiveSession, error) {
	const query = `
		SELECT ps.id, ps.plate_number, ps.slot_number, ps.entry_time, c.driver_name, c.phone_number
		FROM parking_sessions ps
		JOIN cars c ON ps.plate_number = c.plate_number
		WHERE ps.exit_time IS NULL
		ORDER BY ps.entry_time DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.ActiveSession
	for rows.Next() {
		var s models.ActiveSession
		if err := rows.Scan(
			&s.ID,
			&s.PlateNumber,
			&s.SlotNumber,
			&s.EntryTime,
			&s.DriverName,
			&s.PhoneNumber,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ExistsForSlot reports whether any session, open or closed, references
// the slot. Used to guard slot deletion.
func (r *SessionRepository) ExistsForSlot(ctx context.Context, slotNumber int) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM parking_sessions WHERE slot_number = $1)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, slotNumber).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
