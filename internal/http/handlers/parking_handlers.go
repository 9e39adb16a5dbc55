package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"smartpark/internal/http/middleware"
	"smartpark/internal/service"
)

// ParkingHandlers serves the session lifecycle routes.
type ParkingHandlers struct {
	parking *service.ParkingService
	logger  *zap.Logger
}

// NewParkingHandlers returns handler struct.
func NewParkingHandlers(parking *service.ParkingService, logger *zap.Logger) *ParkingHandlers {
	return &ParkingHandlers{parking: parking, logger: logger}
}

type entryRequest struct {
	PlateNumber string `json:"plateNumber"`
	SlotNumber  int    `json:"slotNumber"`
	DriverName  string `json:"driverName"`
	PhoneNumber string `json:"phoneNumber"`
}

// Entry handles POST /api/parking-records/entry.
func (h *ParkingHandlers) Entry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PlateNumber == "" || req.SlotNumber == 0 {
		writeError(w, http.StatusBadRequest, "plate number and slot number are required")
		return
	}

	sessionID, err := h.parking.Entry(r.Context(), service.EntryInput{
		PlateNumber: req.PlateNumber,
		SlotNumber:  req.SlotNumber,
		DriverName:  req.DriverName,
		PhoneNumber: req.PhoneNumber,
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":         "car entry recorded successfully",
		"parkingRecordId": sessionID,
	})
}

type exitRequest struct {
	ParkingRecordID int64 `json:"parkingRecordId"`
}

// Exit handles POST /api/parking-records/exit. The payment is attributed
// to the authenticated operator.
func (h *ParkingHandlers) Exit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req exitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ParkingRecordID == 0 {
		writeError(w, http.StatusBadRequest, "parking record id is required")
		return
	}

	result, err := h.parking.Exit(r.Context(), service.ExitInput{
		SessionID: req.ParkingRecordID,
		Timestamp: time.Now().UTC(),
		UserID:    claims.UserID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "car exit processed successfully",
		"paymentId":     result.PaymentID,
		"amount":        result.Amount,
		"durationHours": result.DurationHours,
	})
}

// ActiveSessions handles GET /api/parking-records/active.
func (h *ParkingHandlers) ActiveSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.parking.ActiveSessions(r.Context())
	if err != nil {
		h.logger.Error("failed to list active sessions", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}
