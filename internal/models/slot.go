package models

// SlotStatus enumerates the two valid parking slot states.
type SlotStatus string

// Slot status values.
const (
	SlotAvailable SlotStatus = "available"
	SlotOccupied  SlotStatus = "occupied"
)

// Slot represents a physical parking space.
type Slot struct {
	SlotNumber int        `db:"slot_number" json:"slotNumber"`
	Status     SlotStatus `db:"status" json:"slotStatus"`
}
