package handlers

import (
	"net/http"
	"strconv"
	"time"

	"smartpark/internal/service"
)

const dateLayout = "2006-01-02"

// PaymentHandlers serves payment listings and revenue reports.
type PaymentHandlers struct {
	payments *service.PaymentsService
}

// NewPaymentHandlers returns handler struct.
func NewPaymentHandlers(payments *service.PaymentsService) *PaymentHandlers {
	return &PaymentHandlers{payments: payments}
}

// List handles GET /api/payments with optional startDate/endDate bounds.
func (h *PaymentHandlers) List(w http.ResponseWriter, r *http.Request) {
	startDate, ok := parseDateParam(w, r, "startDate")
	if !ok {
		return
	}
	endDate, ok := parseDateParam(w, r, "endDate")
	if !ok {
		return
	}

	records, err := h.payments.Payments(r.Context(), startDate, endDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Get handles GET /api/payments/{paymentId}.
func (h *PaymentHandlers) Get(w http.ResponseWriter, r *http.Request) {
	paymentID, err := strconv.ParseInt(r.PathValue("paymentId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	record, err := h.payments.Payment(r.Context(), paymentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Daily handles GET /api/reports/daily, defaulting to today.
func (h *PaymentHandlers) Daily(w http.ResponseWriter, r *http.Request) {
	day := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	report, err := h.payments.Daily(r.Context(), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func parseDateParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
		return nil, false
	}
	return &parsed, true
}
