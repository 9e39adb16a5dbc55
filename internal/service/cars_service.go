package service

import (
	"context"
	"fmt"
	"strings"

	"smartpark/internal/models"
)

// CarsService manages the car directory.
type CarsService struct {
	cars CarDirectory
}

// NewCarsService builds service.
func NewCarsService(cars CarDirectory) *CarsService {
	return &CarsService{cars: cars}
}

// RegisterCar inserts or updates a car by plate number.
func (s *CarsService) RegisterCar(ctx context.Context, car models.Car) error {
	if strings.TrimSpace(car.PlateNumber) == "" {
		return fmt.Errorf("%w: plate number required", ErrInvalidInput)
	}
	if strings.TrimSpace(car.DriverName) == "" || strings.TrimSpace(car.PhoneNumber) == "" {
		return fmt.Errorf("%w: driver name and phone required", ErrInvalidInput)
	}
	return s.cars.Upsert(ctx, car)
}

// ListCars returns all registered cars.
func (s *CarsService) ListCars(ctx context.Context) ([]models.Car, error) {
	return s.cars.List(ctx)
}
