package repository

import (
	"context"
	"database/sql"
	"strings"

	"smartpark/internal/models"
)

// CarRepository handles persistence of registered cars.
type CarRepository struct {
	db dbtx
}

// NewCarRepository returns repository instance.
func NewCarRepository(db *sql.DB) *CarRepository {
	return &CarRepository{db: db}
}

// Upsert inserts a car or refreshes driver details for a known plate.
func (r *CarRepository) Upsert(ctx context.Context, car models.Car) error {
	const query = `
		INSERT INTO cars (plate_number, driver_name, phone_number)
		VALUES ($1, $2, $3)
		ON CONFLICT (plate_number) DO UPDATE SET
			driver_name = EXCLUDED.driver_name,
			phone_number = EXCLUDED.phone_number
	`
	_, err := r.db.ExecContext(ctx, query,
		normalizePlate(car.PlateNumber),
		strings.TrimSpace(car.DriverName),
		strings.TrimSpace(car.PhoneNumber),
	)
	return err
}

// List returns all registered cars ordered by plate.
func (r *CarRepository) List(ctx context.Context) ([]models.Car, error) {
	const query = `
		SELECT plate_number, driver_name, phone_number
		FROM cars
		ORDER BY plate_number
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []models.Car
	for rows.Next() {
		var c models.Car
		if err := rows.Scan(&c.PlateNumber, &c.DriverName, &c.PhoneNumber); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cars, nil
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
