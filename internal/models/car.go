package models

// Car represents a registered vehicle and its driver contact.
type Car struct {
	PlateNumber string `db:"plate_number" json:"plateNumber"`
	DriverName  string `db:"driver_name" json:"driverName"`
	PhoneNumber string `db:"phone_number" json:"phoneNumber"`
}
