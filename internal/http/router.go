package httpserver

import "net/http"

// Routes aggregates handlers for the HTTP server.
type Routes struct {
	Register http.HandlerFunc
	Login    http.HandlerFunc
	Me       http.HandlerFunc

	SlotsList  http.HandlerFunc
	SlotCreate http.HandlerFunc
	SlotDelete http.HandlerFunc

	CarRegister http.HandlerFunc
	CarsList    http.HandlerFunc

	Entry          http.HandlerFunc
	Exit           http.HandlerFunc
	ActiveSessions http.HandlerFunc

	PaymentsList http.HandlerFunc
	PaymentGet   http.HandlerFunc
	DailyReport  http.HandlerFunc

	SlotFeed http.HandlerFunc
	Health   http.HandlerFunc
}

// NewRouter wires all HTTP routes. Handlers passed through authn require a
// valid bearer token; the rest are public, matching the original surface
// where slot listing and login are reachable before sign-in.
func NewRouter(routes Routes, authn func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	public := func(pattern string, handler http.HandlerFunc) {
		if handler != nil {
			mux.Handle(pattern, handler)
		}
	}
	protected := func(pattern string, handler http.HandlerFunc) {
		if handler != nil {
			mux.Handle(pattern, authn(handler))
		}
	}

	public("POST /api/register", routes.Register)
	public("POST /api/login", routes.Login)
	protected("GET /api/user", routes.Me)

	public("GET /api/parking-slots", routes.SlotsList)
	protected("POST /api/parking-slots", routes.SlotCreate)
	protected("DELETE /api/parking-slots/{slotNumber}", routes.SlotDelete)

	protected("POST /api/cars", routes.CarRegister)
	protected("GET /api/cars", routes.CarsList)

	protected("POST /api/parking-records/entry", routes.Entry)
	protected("POST /api/parking-records/exit", routes.Exit)
	protected("GET /api/parking-records/active", routes.ActiveSessions)

	protected("GET /api/payments", routes.PaymentsList)
	protected("GET /api/payments/{paymentId}", routes.PaymentGet)
	protected("GET /api/reports/daily", routes.DailyReport)

	public("GET /ws/slots", routes.SlotFeed)
	public("GET /health", routes.Health)

	return mux
}
