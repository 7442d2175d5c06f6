package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	reservationRepo "pawcare/database/repository/reservation"
	"pawcare/models"
	"pawcare/services/payment"

	"github.com/stretchr/testify/mock"
)

type memBookings struct {
	mu   sync.Mutex
	docs map[string]models.Booking
	// staleOnce makes the next guarded update fail as if another writer won.
	staleOnce bool
}

func newMemBookings() *memBookings {
	return &memBookings{docs: map[string]models.Booking{}}
}

func (r *memBookings) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[b.ID]; ok {
		return fmt.Errorf("duplicate booking %s", b.ID)
	}
	r.docs[b.ID] = clone(*b)
	return nil
}

func (r *memBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.docs[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	c := clone(b)
	return &c, nil
}

func (r *memBookings) ListOnDate(_ context.Context, category models.Category, date, clinicID string, excluded []models.BookingStatus) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.docs {
		if b.Category != category || b.EffectiveDate != date {
			continue
		}
		if clinicID != "" && b.ClinicID != clinicID {
			continue
		}
		skip := false
		for _, s := range excluded {
			if b.Status == s {
				skip = true
			}
		}
		if !skip {
			out = append(out, clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memBookings) ListByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.docs {
		if b.CustomerID == customerID {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (r *memBookings) guarded(b *models.Booking, prev models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.staleOnce {
		r.staleOnce = false
		return models.ErrStaleBooking
	}
	stored, ok := r.docs[b.ID]
	if !ok || stored.Status != prev {
		return models.ErrStaleBooking
	}
	r.docs[b.ID] = clone(*b)
	return nil
}

func (r *memBookings) UpdateSchedule(_ context.Context, b *models.Booking, prev models.BookingStatus) error {
	return r.guarded(b, prev)
}

func (r *memBookings) UpdateStatus(_ context.Context, b *models.Booking, prev models.BookingStatus) error {
	return r.guarded(b, prev)
}

func (r *memBookings) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return models.ErrBookingNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *memBookings) EnsureIndexes(context.Context) error { return nil }

func (r *memBookings) put(b models.Booking) {
	b.SyncEffective()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[b.ID] = clone(b)
}

func clone(b models.Booking) models.Booking {
	b.History = append([]models.StatusChange(nil), b.History...)
	return b
}

type memClinics map[string]models.Clinic

func (m memClinics) GetByID(_ context.Context, id string) (*models.Clinic, error) {
	c, ok := m[id]
	if !ok {
		return nil, models.ErrClinicNotFound
	}
	return &c, nil
}

func (m memClinics) List(context.Context) ([]models.Clinic, error) { return nil, nil }

func (m memClinics) Upsert(_ context.Context, c *models.Clinic) error {
	m[c.ID] = *c
	return nil
}

// memSeats mirrors the seat-per-document reservation store, lapsed holds included.
type memSeats struct {
	mu    sync.Mutex
	seats map[string]memSeat // "<slot>#<n>"
	now   func() time.Time
}

type memSeat struct {
	bookingID string
	expiresAt time.Time
}

func newMemSeats() *memSeats {
	return &memSeats{seats: map[string]memSeat{}, now: func() time.Time { return fixedNow }}
}

func (m *memSeats) Reserve(_ context.Context, key reservationRepo.Key, bookingID string, limit int, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot := key.String()
	for n := 1; n <= limit; n++ {
		id := fmt.Sprintf("%s#%d", slot, n)
		if m.seats[id].bookingID == bookingID {
			m.seats[id] = memSeat{bookingID: bookingID, expiresAt: expiresAt}
			return nil
		}
	}
	now := m.now()
	for n := 1; n <= limit; n++ {
		id := fmt.Sprintf("%s#%d", slot, n)
		cur, taken := m.seats[id]
		if !taken || (!cur.expiresAt.IsZero() && !cur.expiresAt.After(now)) {
			m.seats[id] = memSeat{bookingID: bookingID, expiresAt: expiresAt}
			return nil
		}
	}
	return models.ErrSlotFull
}

func (m *memSeats) Release(_ context.Context, bookingID string, keep reservationRepo.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := keep.String() + "#"
	for id, cur := range m.seats {
		if cur.bookingID != bookingID {
			continue
		}
		if keep != (reservationRepo.Key{}) && strings.HasPrefix(id, prefix) {
			continue
		}
		delete(m.seats, id)
	}
	return nil
}

func (m *memSeats) EnsureIndexes(context.Context) error { return nil }

// expiry returns when the booking's seat lapses; zero means it never does.
func (m *memSeats) expiry(bookingID string) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.seats {
		if cur.bookingID == bookingID {
			return cur.expiresAt
		}
	}
	return time.Time{}
}

func (m *memSeats) held(bookingID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for id, cur := range m.seats {
		if cur.bookingID == bookingID {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

type staticSettings map[models.Category]models.CategorySettings

func (s staticSettings) Get(_ context.Context, c models.Category) (*models.CategorySettings, error) {
	v, ok := s[c]
	if !ok {
		return nil, models.NewSlotError(models.CodeNotFound, "no booking settings configured")
	}
	return &v, nil
}

func (s staticSettings) Update(_ context.Context, v *models.CategorySettings, _ string) error {
	s[v.Category] = *v
	return nil
}

func (s staticSettings) List(context.Context) ([]models.CategorySettings, error) { return nil, nil }

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyReschedule(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockNotifier) NotifyStatus(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockNotifier) SendReminder(ctx context.Context, b *models.Booking, p models.ReminderPayload) error {
	return m.Called(ctx, b, p).Error(0)
}

type recordedReminder struct {
	bookingID string
	at        time.Time
}

type fakeReminders struct {
	mu    sync.Mutex
	calls []recordedReminder
}

func (f *fakeReminders) Schedule(_ context.Context, b *models.Booking, start time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedReminder{bookingID: b.ID, at: start})
	return nil
}

type fakeGateway struct {
	createErr error
	status    string
	orders    int
}

func (g *fakeGateway) CreateOrder(_ context.Context, b *models.Booking, amount int64, currency string) (*models.PaymentOrder, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.orders++
	return &models.PaymentOrder{OrderID: "pi_" + b.ID, Amount: amount, Currency: currency, ClientSecret: "secret"}, nil
}

func (g *fakeGateway) VerifyOrder(_ context.Context, orderID string) (*payment.Verification, error) {
	return &payment.Verification{OrderID: orderID, Status: g.status}, nil
}
