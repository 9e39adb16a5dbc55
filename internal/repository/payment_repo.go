package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"smartpark/internal/models"
	"smartpark/internal/service"
)

// PaymentRepository persists parking fee payments.
type PaymentRepository struct {
	db dbtx
}

// NewPaymentRepository returns repository instance.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) withTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

// Create inserts a payment row.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	const query = `
		INSERT INTO payments (session_id, amount, payment_time, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		payment.SessionID,
		payment.Amount,
		payment.PaymentTime,
		payment.UserID,
	).Scan(&payment.ID)
}

const paymentRecordSelect = `
	SELECT
		p.id,
		p.amount,
		p.payment_time,
		ps.plate_number,
		ps.slot_number,
		ps.entry_time,
		ps.exit_time,
		ps.duration_hours,
		c.driver_name,
		c.phone_number,
		u.username
	FROM payments p
	JOIN parking_sessions ps ON p.session_id = ps.id
	JOIN cars c ON ps.plate_number = c.plate_number
	JOIN users u ON p.user_id = u.id
`

// List returns payment records joined with session, car and recording
// user, optionally bounded by payment date (inclusive, day precision).
func (r *PaymentRepository) List(ctx context.Context, startDate, endDate *time.Time) ([]models.PaymentRecord, error) {
	query := paymentRecordSelect
	var args []any
	switch {
	case startDate != nil && endDate != nil:
		query += ` WHERE p.payment_time::date BETWEEN $1::date AND $2::date`
		args = append(args, *startDate, *endDate)
	case startDate != nil:
		query += ` WHERE p.payment_time::date >= $1::date`
		args = append(args, *startDate)
	case endDate != nil:
		query += ` WHERE p.payment_time::date <= $1::date`
		args = append(args, *endDate)
	}
	query += ` ORDER BY p.payment_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.PaymentRecord
	for rows.Next() {
		record, err := scanPaymentRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID returns a single payment record.
func (r *PaymentRepository) GetByID(ctx context.Context, paymentID int64) (*models.PaymentRecord, error) {
	query := paymentRecordSelect + ` WHERE p.id = $1`
	row := r.db.QueryRowContext(ctx, query, paymentID)

	var record models.PaymentRecord
	err := row.Scan(
		&record.PaymentID,
		&record.Amount,
		&record.PaymentTime,
		&record.PlateNumber,
		&record.SlotNumber,
		&record.EntryTime,
		&record.ExitTime,
		&record.DurationHours,
		&record.DriverName,
		&record.PhoneNumber,
		&record.ReceivedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrPaymentNotFound
		}
		return nil, err
	}
	return &record, nil
}

func scanPaymentRecord(rows *sql.Rows) (models.PaymentRecord, error) {
	var record models.PaymentRecord
	err := rows.Scan(
		&record.PaymentID,
		&record.Amount,
		&record.PaymentTime,
		&record.PlateNumber,
		&record.SlotNumber,
		&record.EntryTime,
		&record.ExitTime,
		&record.DurationHours,
		&record.DriverName,
		&record.PhoneNumber,
		&record.ReceivedBy,
	)
	return record, err
}
