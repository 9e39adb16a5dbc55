package models

import "time"

// Session represents one parked-vehicle occupancy interval. A session is
// open while ExitTime is nil.
type Session struct {
	ID            int64      `db:"id" json:"id"`
	PlateNumber   string     `db:"plate_number" json:"plateNumber"`
	SlotNumber    int        `db:"slot_number" json:"slotNumber"`
	EntryTime     time.Time  `db:"entry_time" json:"entryTime"`
	ExitTime      *time.Time `db:"exit_time" json:"exitTime,omitempty"`
	DurationHours *int       `db:"duration_hours" json:"durationHours,omitempty"`
}

// Open reports whether the session has no recorded exit.
func (s *Session) Open() bool {
	return s.ExitTime == nil
}

// ActiveSession is a session joined with its car for operational display.
type ActiveSession struct {
	ID          int64     `json:"id"`
	PlateNumber string    `json:"plateNumber"`
	SlotNumber  int       `json:"slotNumber"`
	EntryTime   time.Time `json:"entryTime"`
	DriverName  string    `json:"driverName"`
	PhoneNumber string    `json:"phoneNumber"`
}
