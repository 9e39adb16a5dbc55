package handlers

import (
	"encoding/json"
	"net/http"

	"smartpark/internal/models"
	"smartpark/internal/service"
)

// CarHandlers serves car directory routes.
type CarHandlers struct {
	cars *service.CarsService
}

// NewCarHandlers returns handler struct.
func NewCarHandlers(cars *service.CarsService) *CarHandlers {
	return &CarHandlers{cars: cars}
}

type registerCarRequest struct {
	PlateNumber string `json:"plateNumber"`
	DriverName  string `json:"driverName"`
	PhoneNumber string `json:"phoneNumber"`
}

// Register handles POST /api/cars, inserting or updating by plate.
func (h *CarHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PlateNumber == "" || req.DriverName == "" || req.PhoneNumber == "" {
		writeError(w, http.StatusBadRequest, "all fields are required")
		return
	}

	car := models.Car{
		PlateNumber: req.PlateNumber,
		DriverName:  req.DriverName,
		PhoneNumber: req.PhoneNumber,
	}
	if err := h.cars.RegisterCar(r.Context(), car); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "car saved successfully"})
}

// List handles GET /api/cars.
func (h *CarHandlers) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.cars.ListCars(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}
