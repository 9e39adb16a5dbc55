package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"smartpark/internal/models"
	redisstore "smartpark/internal/redis"
)

// SlotNotifier receives slot status transitions after they commit.
type SlotNotifier interface {
	SlotChanged(slotNumber int, status models.SlotStatus)
}

// ParkingService is the session lifecycle engine. It exclusively owns the
// Available -> Occupied -> Available transition of a slot and the exit
// fields of a session; both legs run as single store transactions.
type ParkingService struct {
	store      EngineStore
	occupancy  *redisstore.OccupancyStore
	notifier   SlotNotifier
	hourlyRate float64
	logger     *zap.Logger
}

// NewParkingService builds the engine. Occupancy cache and notifier are
// optional.
func NewParkingService(
	store EngineStore,
	occupancy *redisstore.OccupancyStore,
	notifier SlotNotifier,
	hourlyRate float64,
	logger *zap.Logger,
) *ParkingService {
	if hourlyRate <= 0 {
		hourlyRate = DefaultHourlyRate
	}
	return &ParkingService{
		store:      store,
		occupancy:  occupancy,
		notifier:   notifier,
		hourlyRate: hourlyRate,
		logger:     logger,
	}
}

// EntryInput describes an arriving car.
type EntryInput struct {
	PlateNumber string
	SlotNumber  int
	DriverName  string
	PhoneNumber string
	Timestamp   time.Time
}

// ExitInput describes a departing car.
type ExitInput struct {
	SessionID int64
	Timestamp time.Time
	UserID    int64
}

// ExitResult reports the outcome of a processed exit.
type ExitResult struct {
	PaymentID     int64   `json:"paymentId"`
	Amount        float64 `json:"amount"`
	DurationHours int     `json:"durationHours"`
	SlotNumber    int     `json:"slotNumber"`
}

// Entry records a car entering a slot and returns the new session id.
// The car record is upserted first; the session open and the slot
// occupation then commit as one unit. A slot grabbed by a concurrent
// entry between the precondition check and the transaction fails the
// whole unit with ErrSlotOccupied.
func (s *ParkingService) Entry(ctx context.Context, input EntryInput) (int64, error) {
	input.PlateNumber = strings.ToUpper(strings.TrimSpace(input.PlateNumber))
	if input.PlateNumber == "" {
		return 0, fmt.Errorf("%w: plate number required", ErrInvalidInput)
	}
	if input.SlotNumber <= 0 {
		return 0, fmt.Errorf("%w: slot number must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(input.DriverName) == "" || strings.TrimSpace(input.PhoneNumber) == "" {
		return 0, fmt.Errorf("%w: driver name and phone required", ErrInvalidInput)
	}
	if input.Timestamp.IsZero() {
		input.Timestamp = time.Now().UTC()
	}

	car := models.Car{
		PlateNumber: input.PlateNumber,
		DriverName:  input.DriverName,
		PhoneNumber: input.PhoneNumber,
	}
	if err := s.store.UpsertCar(ctx, car); err != nil {
		return 0, fmt.Errorf("parking: upsert car: %w", err)
	}

	status, err := s.store.SlotStatus(ctx, input.SlotNumber)
	if err != nil {
		return 0, err
	}
	if status != models.SlotAvailable {
		return 0, ErrSlotOccupied
	}

	session := &models.Session{
		PlateNumber: input.PlateNumber,
		SlotNumber:  input.SlotNumber,
		EntryTime:   input.Timestamp.UTC(),
	}
	err = s.store.WithinTx(ctx, func(tx EngineTx) error {
		if _, err := tx.OpenSession(ctx, session); err != nil {
			return err
		}
		return tx.MarkSlotOccupied(ctx, input.SlotNumber)
	})
	if err != nil {
		return 0, err
	}

	if s.occupancy != nil {
		cacheErr := s.occupancy.Save(ctx, redisstore.OccupiedSlot{
			SessionID:   session.ID,
			SlotNumber:  input.SlotNumber,
			PlateNumber: input.PlateNumber,
			EntryTime:   session.EntryTime,
		})
		if cacheErr != nil && cacheErr != redis.Nil {
			s.logger.Warn("failed to cache occupied slot", zap.Error(cacheErr))
		}
	}
	if s.notifier != nil {
		s.notifier.SlotChanged(input.SlotNumber, models.SlotOccupied)
	}

	s.logger.Info("car entry recorded",
		zap.Int64("session_id", session.ID),
		zap.String("plate_number", input.PlateNumber),
		zap.Int("slot_number", input.SlotNumber),
	)
	return session.ID, nil
}

// Exit closes a session: the fee is computed from the stored entry time,
// then the session close, the payment row and the slot release commit as
// one unit. Retrying after a failure is safe; a second exit on the same
// session fails with ErrSessionClosed and records nothing.
func (s *ParkingService) Exit(ctx context.Context, input ExitInput) (*ExitResult, error) {
	if input.SessionID <= 0 {
		return nil, fmt.Errorf("%w: session id required", ErrInvalidInput)
	}
	if input.UserID == 0 {
		return nil, ErrPrincipalRequired
	}
	if input.Timestamp.IsZero() {
		input.Timestamp = time.Now().UTC()
	}

	session, err := s.store.GetOpenSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	amount, durationHours := ComputeFee(session.EntryTime, input.Timestamp, s.hourlyRate)
	payment := &models.Payment{
		SessionID:   session.ID,
		Amount:      amount,
		PaymentTime: input.Timestamp.UTC(),
		UserID:      input.UserID,
	}

	err = s.store.WithinTx(ctx, func(tx EngineTx) error {
		if err := tx.CloseSession(ctx, session.ID, input.Timestamp.UTC(), durationHours); err != nil {
			return err
		}
		if err := tx.CreatePayment(ctx, payment); err != nil {
			return err
		}
		return tx.MarkSlotAvailable(ctx, session.SlotNumber)
	})
	if err != nil {
		return nil, err
	}

	if s.occupancy != nil {
		if cacheErr := s.occupancy.Delete(ctx, session.SlotNumber); cacheErr != nil && cacheErr != redis.Nil {
			s.logger.Warn("failed to drop occupied slot cache", zap.Error(cacheErr))
		}
	}
	if s.notifier != nil {
		s.notifier.SlotChanged(session.SlotNumber, models.SlotAvailable)
	}

	s.logger.Info("car exit processed",
		zap.Int64("session_id", session.ID),
		zap.Int64("payment_id", payment.ID),
		zap.Float64("amount", amount),
		zap.Int("duration_hours", durationHours),
	)
	return &ExitResult{
		PaymentID:     payment.ID,
		Amount:        amount,
		DurationHours: durationHours,
		SlotNumber:    session.SlotNumber,
	}, nil
}

// ActiveSessions returns open sessions with driver details, most recent
// entry first.
func (s *ParkingService) ActiveSessions(ctx context.Context) ([]models.ActiveSession, error) {
	return s.store.ListActiveSessions(ctx)
}
