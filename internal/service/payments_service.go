package service

import (
	"context"
	"time"

	"smartpark/internal/models"
)

// PaymentsService serves payment listings and revenue reports. Read-only;
// payments are only ever written inside the engine's exit transaction.
type PaymentsService struct {
	payments PaymentLedger
}

// NewPaymentsService builds service.
func NewPaymentsService(payments PaymentLedger) *PaymentsService {
	return &PaymentsService{payments: payments}
}

// Payments returns payment records, optionally bounded by payment date.
func (s *PaymentsService) Payments(ctx context.Context, startDate, endDate *time.Time) ([]models.PaymentRecord, error) {
	return s.payments.List(ctx, startDate, endDate)
}

// Payment returns a single payment record by id.
func (s *PaymentsService) Payment(ctx context.Context, paymentID int64) (*models.PaymentRecord, error) {
	return s.payments.GetByID(ctx, paymentID)
}

// DailyReport summarizes payments recorded on the given day.
type DailyReport struct {
	Date        string                 `json:"date"`
	TotalAmount float64                `json:"totalAmount"`
	Records     []models.PaymentRecord `json:"records"`
}

// Daily builds the revenue report for one day. The bounds compare at day
// precision, so any time-of-day on the input is stripped first.
func (s *PaymentsService) Daily(ctx context.Context, day time.Time) (*DailyReport, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	records, err := s.payments.List(ctx, &day, &day)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, record := range records {
		total += record.Amount
	}

	return &DailyReport{
		Date:        day.Format("2006-01-02"),
		TotalAmount: total,
		Records:     records,
	}, nil
}
