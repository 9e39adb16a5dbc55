package models

import "time"

// Payment records the fee collected when a session closes.
type Payment struct {
	ID          int64     `db:"id" json:"id"`
	SessionID   int64     `db:"session_id" json:"sessionId"`
	Amount      float64   `db:"amount" json:"amount"`
	PaymentTime time.Time `db:"payment_time" json:"paymentTime"`
	UserID      int64     `db:"user_id" json:"userId"`
}

// PaymentRecord is a payment joined with its session, car and recording
// user, as rendered by payment listings and reports.
type PaymentRecord struct {
	PaymentID     int64      `json:"paymentId"`
	Amount        float64    `json:"amountPaid"`
	PaymentTime   time.Time  `json:"paymentDate"`
	PlateNumber   string     `json:"plateNumber"`
	SlotNumber    int        `json:"slotNumber"`
	EntryTime     time.Time  `json:"entryTime"`
	ExitTime      *time.Time `json:"exitTime"`
	DurationHours *int       `json:"duration"`
	DriverName    string     `json:"driverName"`
	PhoneNumber   string     `json:"phoneNumber"`
	ReceivedBy    string     `json:"receivedBy"`
}
