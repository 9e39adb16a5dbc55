package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"smartpark/internal/service"
)

// SlotHandlers serves slot master data routes.
type SlotHandlers struct {
	slots *service.SlotsService
}

// NewSlotHandlers returns handler struct.
func NewSlotHandlers(slots *service.SlotsService) *SlotHandlers {
	return &SlotHandlers{slots: slots}
}

// List handles GET /api/parking-slots.
func (h *SlotHandlers) List(w http.ResponseWriter, r *http.Request) {
	slots, err := h.slots.ListSlots(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

type createSlotRequest struct {
	SlotNumber int `json:"slotNumber"`
}

// Create handles POST /api/parking-slots.
func (h *SlotHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.SlotNumber == 0 {
		writeError(w, http.StatusBadRequest, "slot number is required")
		return
	}

	if err := h.slots.CreateSlot(r.Context(), req.SlotNumber); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "parking slot added successfully"})
}

// Delete handles DELETE /api/parking-slots/{slotNumber}.
func (h *SlotHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	slotNumber, err := strconv.Atoi(r.PathValue("slotNumber"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot number")
		return
	}

	if err := h.slots.DeleteSlot(r.Context(), slotNumber); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "parking slot deleted successfully"})
}
