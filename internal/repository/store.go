package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"smartpark/internal/models"
	"smartpark/internal/service"
)

// Store exposes the persistence surface the session lifecycle engine needs:
// the read paths plus a transactional unit of work spanning slots, sessions
// and payments.
type Store struct {
	db       *sql.DB
	slots    *SlotRepository
	cars     *CarRepository
	sessions *SessionRepository
	payments *PaymentRepository
}

// NewStore returns an engine store backed by the given pool.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		slots:    NewSlotRepository(db),
		cars:     NewCarRepository(db),
		sessions: NewSessionRepository(db),
		payments: NewPaymentRepository(db),
	}
}

// UpsertCar registers or refreshes a car record.
func (s *Store) UpsertCar(ctx context.Context, car models.Car) error {
	return s.cars.Upsert(ctx, car)
}

// SlotStatus returns the current status of a slot.
func (s *Store) SlotStatus(ctx context.Context, slotNumber int) (models.SlotStatus, error) {
	return s.slots.Status(ctx, slotNumber)
}

// GetOpenSession fetches an open session by id.
func (s *Store) GetOpenSession(ctx context.Context, sessionID int64) (*models.Session, error) {
	return s.sessions.GetOpen(ctx, sessionID)
}

// ListActiveSessions returns open sessions joined with car details.
func (s *Store) ListActiveSessions(ctx context.Context) ([]models.ActiveSession, error) {
	return s.sessions.ListActive(ctx)
}

// WithinTx runs fn inside a single database transaction. The writes fn
// performs commit together or not at all; any error rolls everything back.
func (s *Store) WithinTx(ctx context.Context, fn func(service.EngineTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}

	unit := &storeTx{
		slots:    s.slots.withTx(tx),
		sessions: s.sessions.withTx(tx),
		payments: s.payments.withTx(tx),
	}

	if err := fn(unit); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit tx: %w", err)
	}
	return nil
}

// storeTx is the transaction-scoped view handed to the engine.
type storeTx struct {
	slots    *SlotRepository
	sessions *SessionRepository
	payments *PaymentRepository
}

func (t *storeTx) OpenSession(ctx context.Context, session *models.Session) (int64, error) {
	return t.sessions.Open(ctx, session)
}

func (t *storeTx) CloseSession(ctx context.Context, sessionID int64, exitTime time.Time, durationHours int) error {
	return t.sessions.Close(ctx, sessionID, exitTime, durationHours)
}

func (t *storeTx) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return t.payments.Create(ctx, payment)
}

func (t *storeTx) MarkSlotOccupied(ctx context.Context, slotNumber int) error {
	return t.slots.MarkOccupied(ctx, slotNumber)
}

func (t *storeTx) MarkSlotAvailable(ctx context.Context, slotNumber int) error {
	return t.slots.MarkAvailable(ctx, slotNumber)
}
