package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"smartpark/internal/models"
)

// memStore is an in-memory EngineStore. WithinTx clones the state, applies
// the unit of work to the clone and swaps it in only on success, so a
// failed unit leaves nothing behind, like a rolled-back transaction.
type memStore struct {
	mu          sync.Mutex
	state       memState
	nextSession int64
	nextPayment int64
	paymentErr  error
}

type memState struct {
	cars     map[string]models.Car
	slots    map[int]models.SlotStatus
	sessions map[int64]models.Session
	payments map[int64]models.Payment
}

func newMemStore(slots ...int) *memStore {
	s := &memStore{
		state: memState{
			cars:     make(map[string]models.Car),
			slots:    make(map[int]models.SlotStatus),
			sessions: make(map[int64]models.Session),
			payments: make(map[int64]models.Payment),
		},
	}
	for _, n := range slots {
		s.state.slots[n] = models.SlotAvailable
	}
	return s
}

func (s *memState) clone() memState {
	out := memState{
		cars:     make(map[string]models.Car, len(s.cars)),
		slots:    make(map[int]models.SlotStatus, len(s.slots)),
		sessions: make(map[int64]models.Session, len(s.sessions)),
		payments: make(map[int64]models.Payment, len(s.payments)),
	}
	for k, v := range s.cars {
		out.cars[k] = v
	}
	for k, v := range s.slots {
		out.slots[k] = v
	}
	for k, v := range s.sessions {
		out.sessions[k] = v
	}
	for k, v := range s.payments {
		out.payments[k] = v
	}
	return out
}

func (s *memStore) UpsertCar(ctx context.Context, car models.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.cars[car.PlateNumber] = car
	return nil
}

func (s *memStore) SlotStatus(ctx context.Context, slotNumber int) (models.SlotStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.state.slots[slotNumber]
	if !ok {
		return "", ErrSlotNotFound
	}
	return status, nil
}

func (s *memStore) GetOpenSession(ctx context.Context, sessionID int64) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.state.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.ExitTime != nil {
		return nil, ErrSessionClosed
	}
	copied := session
	return &copied, nil
}

func (s *memStore) ListActiveSessions(ctx context.Context) ([]models.ActiveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ActiveSession
	for _, session := range s.state.sessions {
		if session.ExitTime != nil {
			continue
		}
		car := s.state.cars[session.PlateNumber]
		out = append(out, models.ActiveSession{
			ID:          session.ID,
			PlateNumber: session.PlateNumber,
			SlotNumber:  session.SlotNumber,
			EntryTime:   session.EntryTime,
			DriverName:  car.DriverName,
			PhoneNumber: car.PhoneNumber,
		})
	}
	return out, nil
}

func (s *memStore) WithinTx(ctx context.Context, fn func(EngineTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	tx := &memTx{store: s, state: &staged}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = staged
	return nil
}

type memTx struct {
	store *memStore
	state *memState
}

func (t *memTx) OpenSession(ctx context.Context, session *models.Session) (int64, error) {
	t.store.nextSession++
	session.ID = t.store.nextSession
	t.state.sessions[session.ID] = *session
	return session.ID, nil
}

func (t *memTx) CloseSession(ctx context.Context, sessionID int64, exitTime time.Time, durationHours int) error {
	session, ok := t.state.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if session.ExitTime != nil {
		return ErrSessionClosed
	}
	session.ExitTime = &exitTime
	session.DurationHours = &durationHours
	t.state.sessions[sessionID] = session
	return nil
}

func (t *memTx) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if t.store.paymentErr != nil {
		return t.store.paymentErr
	}
	t.store.nextPayment++
	payment.ID = t.store.nextPayment
	t.state.payments[payment.ID] = *payment
	return nil
}

func (t *memTx) MarkSlotOccupied(ctx context.Context, slotNumber int) error {
	status, ok := t.state.slots[slotNumber]
	if !ok {
		return ErrSlotNotFound
	}
	if status != models.SlotAvailable {
		return ErrSlotOccupied
	}
	t.state.slots[slotNumber] = models.SlotOccupied
	return nil
}

func (t *memTx) MarkSlotAvailable(ctx context.Context, slotNumber int) error {
	if _, ok := t.state.slots[slotNumber]; !ok {
		return ErrSlotNotFound
	}
	t.state.slots[slotNumber] = models.SlotAvailable
	return nil
}

func (s *memStore) slotStatus(t *testing.T, slotNumber int) models.SlotStatus {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.slots[slotNumber]
}

func (s *memStore) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.sessions)
}

func (s *memStore) paymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.payments)
}

func newTestEngine(store *memStore) *ParkingService {
	return NewParkingService(store, nil, nil, DefaultHourlyRate, zap.NewNop())
}

var t0 = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

func enter(t *testing.T, engine *ParkingService, plate string, slot int) int64 {
	t.Helper()
	sessionID, err := engine.Entry(context.Background(), EntryInput{
		PlateNumber: plate,
		SlotNumber:  slot,
		DriverName:  "Jean Bosco",
		PhoneNumber: "0788000001",
		Timestamp:   t0,
	})
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	return sessionID
}

func TestEntryOpensSessionAndOccupiesSlot(t *testing.T) {
	store := newMemStore(5)
	engine := newTestEngine(store)

	sessionID := enter(t, engine, "RAB123A", 5)
	if sessionID == 0 {
		t.Fatal("expected non-zero session id")
	}
	if got := store.slotStatus(t, 5); got != models.SlotOccupied {
		t.Fatalf("slot status = %q, want occupied", got)
	}

	active, err := engine.ActiveSessions(context.Background())
	if err != nil {
		t.Fatalf("ActiveSessions: %v", err)
	}
	if len(active) != 1 || active[0].PlateNumber != "RAB123A" || active[0].SlotNumber != 5 {
		t.Fatalf("unexpected active sessions: %+v", active)
	}
}

func TestEntryIntoOccupiedSlotFails(t *testing.T) {
	store := newMemStore(5)
	engine := newTestEngine(store)

	enter(t, engine, "RAB123A", 5)

	_, err := engine.Entry(context.Background(), EntryInput{
		PlateNumber: "RAC456B",
		SlotNumber:  5,
		DriverName:  "Alice",
		PhoneNumber: "0788000002",
		Timestamp:   t0.Add(time.Minute),
	})
	if !errors.Is(err, ErrSlotOccupied) {
		t.Fatalf("err = %v, want ErrSlotOccupied", err)
	}
	if store.sessionCount() != 1 {
		t.Fatalf("session count = %d, want 1", store.sessionCount())
	}
	if got := store.slotStatus(t, 5); got != models.SlotOccupied {
		t.Fatalf("slot status = %q, want occupied", got)
	}
}

func TestEntryUnknownSlotFails(t *testing.T) {
	store := newMemStore(5)
	engine := newTestEngine(store)

	_, err := engine.Entry(context.Background(), EntryInput{
		PlateNumber: "RAB123A",
		SlotNumber:  42,
		DriverName:  "Jean Bosco",
		PhoneNumber: "0788000001",
		Timestamp:   t0,
	})
	if !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("err = %v, want ErrSlotNotFound", err)
	}
	if store.sessionCount() != 0 {
		t.Fatalf("session count = %d, want 0", store.sessionCount())
	}
}

func TestEntryValidation(t *testing.T) {
	engine := newTestEngine(newMemStore(5))

	cases := []EntryInput{
		{SlotNumber: 5, DriverName: "a", PhoneNumber: "1"},
		{PlateNumber: "RAB123A", SlotNumber: 0, DriverName: "a", PhoneNumber: "1"},
		{PlateNumber: "RAB123A", SlotNumber: -3, DriverName: "a", PhoneNumber: "1"},
		{PlateNumber: "RAB123A", SlotNumber: 5},
	}
	for _, input := range cases {
		if _, err := engine.Entry(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Entry(%+v) err = %v, want ErrInvalidInput", input, err)
		}
	}
}

func TestExitComputesFeeAndReleasesSlot(t *testing.T) {
	store := newMemStore(5)
	engine := newTestEngine(store)

	sessionID := enter(t, engine, "RAB123A", 5)

	result, err := engine.Exit(context.Background(), ExitInput{
		SessionID: sessionID,
		Timestamp: t0.Add(90 * time.Minute),
		UserID:    7,
	})
	if err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if result.Amount != 1000 || result.DurationHours != 2 {
		t.Fatalf("result = %+v, want amount 1000 over 2 hours", result)
	}
	if result.PaymentID == 0 {
		t.Fatal("expected non-zero payment id")
	}
	if got := store.slotStatus(t, 5); got != models.SlotAvailable {
		t.Fatalf("slot status = %q, want available", got)
	}
	if store.paymentCount() != 1 {
		t.Fatalf("payment count = %d, want 1", store.paymentCount())
	}
}

func TestExitTwiceSecondFails(t *testing.T) {
	store := newMemStore(5)
	engine := newTestEngine(store)

	sessionID := enter(t, engine, "RAB123A", 5)

	if _, err := engine.Exit(context.Background(), ExitInput{
		SessionID: sessionID,
		Timestamp: t0.Add(30 * time.Minute),
		UserID:    7,
	}); err != nil {
		t.Fatalf("first Exit: %v", err)
	}

	_, err := engine.Exit(context.Background(), ExitInput{
		SessionID: sessionID,
		Timestamp: t0.Add(45 * time.Minute),
		UserID:    7,
	})
	if !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("second Exit err = %v, want ErrSessionClosed", err)
	}

	if store.paymentCount() != 1 {
		t.Fatalf("payment count = %d, want 1", store.paymentCount())
	}
	if got := store.slotStatus(t, 5); got != models.SlotAvailable {
		t.Fatalf("slot status = %q, want available", got)
	}
}

func TestExitUnknownSessionFails(t *testing.T) {
	engine := newTestEngine(newMemStore(5))

	_, err := engine.Exit(context.Background(), ExitInput{SessionID: 99, Timestamp: t0, UserID: 7})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestExitRequiresPrincipal(t *testing.T) {
	store := newMemStore(5)
	engine := newTestEngine(store)

	sessionID := enter(t, engine, "RAB123A", 5)

	_, err := engine.Exit(context.Background(), ExitInput{SessionID: sessionID, Timestamp: t0.Add(time.Hour)})
	if !errors.Is(err, ErrPrincipalRequired) {
		t.Fatalf("err = %v, want ErrPrincipalRequired", err)
	}
	if store.paymentCount() != 0 {
		t.Fatalf("payment count = %d, want 0", store.paymentCount())
	}
}

func TestExitFailureLeavesSessionOpen(t *testing.T) {
	store := newMemStore(5)
	engine := newTestEngine(store)

	sessionID := enter(t, engine, "RAB123A", 5)

	store.paymentErr = errors.New("payments table unavailable")
	if _, err := engine.Exit(context.Background(), ExitInput{
		SessionID: sessionID,
		Timestamp: t0.Add(time.Hour),
		UserID:    7,
	}); err == nil {
		t.Fatal("expected exit to fail")
	}

	// The unit rolled back: session still open, slot still occupied,
	// so the exit is safe to retry.
	if got := store.slotStatus(t, 5); got != models.SlotOccupied {
		t.Fatalf("slot status = %q, want occupied", got)
	}
	if store.paymentCount() != 0 {
		t.Fatalf("payment count = %d, want 0", store.paymentCount())
	}

	store.paymentErr = nil
	result, err := engine.Exit(context.Background(), ExitInput{
		SessionID: sessionID,
		Timestamp: t0.Add(time.Hour),
		UserID:    7,
	})
	if err != nil {
		t.Fatalf("retry Exit: %v", err)
	}
	if result.Amount != 500 || result.DurationHours != 1 {
		t.Fatalf("result = %+v, want amount 500 over 1 hour", result)
	}
}

func TestConcurrentEntriesSingleSlot(t *testing.T) {
	const workers = 16

	store := newMemStore(5)
	engine := newTestEngine(store)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Entry(context.Background(), EntryInput{
				PlateNumber: "RAB123A",
				SlotNumber:  5,
				DriverName:  "Jean Bosco",
				PhoneNumber: "0788000001",
				Timestamp:   t0,
			})
		}(i)
	}
	wg.Wait()

	var succeeded, occupied int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotOccupied):
			occupied++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || occupied != workers-1 {
		t.Fatalf("succeeded = %d, occupied = %d, want 1 and %d", succeeded, occupied, workers-1)
	}
	if store.sessionCount() != 1 {
		t.Fatalf("session count = %d, want 1", store.sessionCount())
	}
}

func TestConcurrentExitsSingleSession(t *testing.T) {
	const workers = 8

	store := newMemStore(5)
	engine := newTestEngine(store)

	sessionID := enter(t, engine, "RAB123A", 5)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Exit(context.Background(), ExitInput{
				SessionID: sessionID,
				Timestamp: t0.Add(time.Hour),
				UserID:    7,
			})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSessionClosed), errors.Is(err, ErrSessionNotFound):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("succeeded = %d, want exactly 1", succeeded)
	}
	if store.paymentCount() != 1 {
		t.Fatalf("payment count = %d, want 1", store.paymentCount())
	}
	if got := store.slotStatus(t, 5); got != models.SlotAvailable {
		t.Fatalf("slot status = %q, want available", got)
	}
}
