package service

import (
	"context"
	"time"

	"smartpark/internal/models"
)

// EngineTx is the transaction-scoped unit of work the lifecycle engine
// drives. Every method runs inside the same store transaction; the writes
// commit together or not at all.
type EngineTx interface {
	OpenSession(ctx context.Context, session *models.Session) (int64, error)
	CloseSession(ctx context.Context, sessionID int64, exitTime time.Time, durationHours int) error
	CreatePayment(ctx context.Context, payment *models.Payment) error
	MarkSlotOccupied(ctx context.Context, slotNumber int) error
	MarkSlotAvailable(ctx context.Context, slotNumber int) error
}

// EngineStore is the persistence contract of the session lifecycle engine.
type EngineStore interface {
	UpsertCar(ctx context.Context, car models.Car) error
	SlotStatus(ctx context.Context, slotNumber int) (models.SlotStatus, error)
	GetOpenSession(ctx context.Context, sessionID int64) (*models.Session, error)
	ListActiveSessions(ctx context.Context) ([]models.ActiveSession, error)
	WithinTx(ctx context.Context, fn func(EngineTx) error) error
}

// SlotInventory is the storage contract for slot master data.
type SlotInventory interface {
	Create(ctx context.Context, slotNumber int, status models.SlotStatus) error
	Delete(ctx context.Context, slotNumber int) error
	List(ctx context.Context) ([]models.Slot, error)
	Status(ctx context.Context, slotNumber int) (models.SlotStatus, error)
}

// SessionHistory answers whether a slot is referenced by any session.
type SessionHistory interface {
	ExistsForSlot(ctx context.Context, slotNumber int) (bool, error)
}

// CarDirectory is the storage contract for registered cars.
type CarDirectory interface {
	Upsert(ctx context.Context, car models.Car) error
	List(ctx context.Context) ([]models.Car, error)
}

// PaymentLedger is the read contract for payment records.
type PaymentLedger interface {
	List(ctx context.Context, startDate, endDate *time.Time) ([]models.PaymentRecord, error)
	GetByID(ctx context.Context, paymentID int64) (*models.PaymentRecord, error)
}

// UserDirectory is the storage contract for operator accounts.
type UserDirectory interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
