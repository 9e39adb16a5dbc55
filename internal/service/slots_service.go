package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"smartpark/internal/models"
)

// SlotsService manages slot master data. It never touches slot status
// beyond the initial available state; status transitions belong to the
// lifecycle engine.
type SlotsService struct {
	slots    SlotInventory
	sessions SessionHistory
	logger   *zap.Logger
}

// NewSlotsService builds service.
func NewSlotsService(slots SlotInventory, sessions SessionHistory, logger *zap.Logger) *SlotsService {
	return &SlotsService{
		slots:    slots,
		sessions: sessions,
		logger:   logger,
	}
}

// CreateSlot registers a new slot, initially available.
func (s *SlotsService) CreateSlot(ctx context.Context, slotNumber int) error {
	if slotNumber <= 0 {
		return fmt.Errorf("%w: slot number must be positive", ErrInvalidInput)
	}
	if err := s.slots.Create(ctx, slotNumber, models.SlotAvailable); err != nil {
		return err
	}
	s.logger.Info("parking slot created", zap.Int("slot_number", slotNumber))
	return nil
}

// DeleteSlot removes a slot. Occupied slots and slots referenced by any
// session, current or historical, are refused.
func (s *SlotsService) DeleteSlot(ctx context.Context, slotNumber int) error {
	if slotNumber <= 0 {
		return fmt.Errorf("%w: slot number must be positive", ErrInvalidInput)
	}

	referenced, err := s.sessions.ExistsForSlot(ctx, slotNumber)
	if err != nil {
		return err
	}
	if referenced {
		return ErrSlotReferenced
	}

	if err := s.slots.Delete(ctx, slotNumber); err != nil {
		return err
	}
	s.logger.Info("parking slot deleted", zap.Int("slot_number", slotNumber))
	return nil
}

// ListSlots returns all slots ordered by number.
func (s *SlotsService) ListSlots(ctx context.Context) ([]models.Slot, error) {
	return s.slots.List(ctx)
}
