package repository

import (
	"context"
	"database/sql"
	"errors"

	"smartpark/internal/models"
	"smartpark/internal/service"
)

// SlotRepository handles persistence of parking slots. Slot status is only
// ever written by the session lifecycle transactions and the admin
// create/delete operations below.
type SlotRepository struct {
	db dbtx
}

// NewSlotRepository returns repository instance.
func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) withTx(tx *sql.Tx) *SlotRepository {
	return &SlotRepository{db: tx}
}

// Create inserts a new slot. Duplicate slot numbers are rejected.
func (r *SlotRepository) Create(ctx context.Context, slotNumber int, status models.SlotStatus) error {
	const query = `
		INSERT INTO parking_slots (slot_number, status)
		VALUES ($1, $2)
		ON CONFLICT (slot_number) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, slotNumber, status)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return service.ErrSlotExists
	}
	return nil
}

// List returns all slots ordered by slot number.
func (r *SlotRepository) List(ctx context.Context) ([]models.Slot, error) {
	const query = `
		SELECT slot_number, status
		FROM parking_slots
		ORDER BY slot_number
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.Slot
	for rows.Next() {
		var s models.Slot
		if err := rows.Scan(&s.SlotNumber, &s.Status); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

// Status returns the current status of a slot.
func (r *SlotRepository) Status(ctx context.Context, slotNumber int) (models.SlotStatus, error) {
	const query = `
		SELECT status
		FROM parking_slots
		WHERE slot_number = $1
	`
	var status models.SlotStatus
	if err := r.db.QueryRowContext(ctx, query, slotNumber).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", service.ErrSlotNotFound
		}
		return "", err
	}
	return status, nil
}

// MarkOccupied flips an available slot to occupied. The conditional update
// is the check-and-set that keeps concurrent entries from double-booking:
// a second writer blocks on the row lock, then matches zero rows.
func (r *SlotRepository) MarkOccupied(ctx context.Context, slotNumber int) error {
	const query = `
		UPDATE parking_slots
		SET status = $2
		WHERE slot_number = $1 AND status = $3
	`
	result, err := r.db.ExecContext(ctx, query, slotNumber, models.SlotOccupied, models.SlotAvailable)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.Status(ctx, slotNumber); err != nil {
			return err
		}
		return service.ErrSlotOccupied
	}
	return nil
}

// MarkAvailable releases a slot.
func (r *SlotRepository) MarkAvailable(ctx context.Context, slotNumber int) error {
	const query = `
		UPDATE parking_slots
		SET status = $2
		WHERE slot_number = $1
	`
	result, err := r.db.ExecContext(ctx, query, slotNumber, models.SlotAvailable)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return service.ErrSlotNotFound
	}
	return nil
}

// Delete removes a slot unless it is occupied.
func (r *SlotRepository) Delete(ctx context.Context, slotNumber int) error {
	const query = `
		DELETE FROM parking_slots
		WHERE slot_number = $1 AND status = $2
	`
	result, err := r.db.ExecContext(ctx, query, slotNumber, models.SlotAvailable)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.Status(ctx, slotNumber); err != nil {
			return err
		}
		return service.ErrSlotOccupied
	}
	return nil
}
