package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rakhadjo/nusatrip/internal/middleware"
	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/repository"
)

type mockFlightBookingStore struct {
	mock.Mock
}

func (m *mockFlightBookingStore) CreateWithPayment(ctx context.Context, b *model.FlightBooking, p *model.FlightPayment) error {
	args := m.Called(ctx, b, p)
	return args.Error(0)
}

func (m *mockFlightBookingStore) ListAll(ctx context.Context) ([]repository.FlightBookingDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.FlightBookingDetail), args.Error(1)
}

func (m *mockFlightBookingStore) ListByUser(ctx context.Context, userID uint64) ([]repository.FlightBookingDetail, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]repository.FlightBookingDetail), args.Error(1)
}

func (m *mockFlightBookingStore) GetByIDAndUser(ctx context.Context, id, userID uint64) (repository.FlightBookingDetail, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(repository.FlightBookingDetail), args.Error(1)
}

func (m *mockFlightBookingStore) Update(ctx context.Context, id uint64, p repository.FlightBookingPatch) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

func (m *mockFlightBookingStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockScheduleStore struct {
	mock.Mock
}

func (m *mockScheduleStore) Search(ctx context.Context, q repository.ScheduleSearch) ([]model.FlightSchedule, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.FlightSchedule), args.Error(1)
}

func (m *mockScheduleStore) GetByID(ctx context.Context, id uint64) (model.FlightSchedule, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.FlightSchedule), args.Error(1)
}

func (m *mockScheduleStore) Create(ctx context.Context, s *model.FlightSchedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockScheduleStore) Update(ctx context.Context, id uint64, s model.FlightSchedule) (model.FlightSchedule, error) {
	args := m.Called(ctx, id, s)
	return args.Get(0).(model.FlightSchedule), args.Error(1)
}

func (m *mockScheduleStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var flightForm = map[string]string{
	"jadwalId": "5",
	"name":     "Budi Santoso",
	"gender":   "male",
	"country":  "Indonesia",
	"birthday": "1995-04-12",
	"bank":     "BCA",
}

func bookFlightContext(t *testing.T, fileName string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	rec, c := multipartContext(t, "/pesawat/book/flight/create", flightForm,
		"receipt", fileName, []byte("receipt bytes"))
	c.Set(middleware.CtxUserID, uint64(11))
	return rec, c
}

func TestBookFlightSnapshotsSchedulePrice(t *testing.T) {
	bookings := &mockFlightBookingStore{}
	schedules := &mockScheduleStore{}
	h := NewFlightBookingHandler(bookings, schedules, nil, t.TempDir())

	schedules.On("GetByID", mock.Anything, uint64(5)).
		Return(model.FlightSchedule{ID: 5, Price: 1_500_000}, nil)
	bookings.On("CreateWithPayment", mock.Anything,
		mock.MatchedBy(func(b *model.FlightBooking) bool {
			return b.UserID == 11 && b.JadwalID == 5 && b.TotalPrice == 1_500_000
		}),
		mock.MatchedBy(func(p *model.FlightPayment) bool {
			return p.Bank == "BCA" && p.Receipt != ""
		})).Return(nil)

	rec, c := bookFlightContext(t, "proof.png")
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking and payment successfully created")
	bookings.AssertExpectations(t)
}

func TestBookFlightUnknownSchedule(t *testing.T) {
	bookings := &mockFlightBookingStore{}
	schedules := &mockScheduleStore{}
	dir := t.TempDir()
	h := NewFlightBookingHandler(bookings, schedules, nil, dir)

	schedules.On("GetByID", mock.Anything, uint64(5)).
		Return(model.FlightSchedule{}, repository.ErrNotFound)

	rec, c := bookFlightContext(t, "proof.png")
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Flight schedule not found")
	bookings.AssertNotCalled(t, "CreateWithPayment", mock.Anything, mock.Anything, mock.Anything)

	// No receipt file may survive a failed booking.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBookFlightRejectsBadReceiptTypeBeforeLookup(t *testing.T) {
	bookings := &mockFlightBookingStore{}
	schedules := &mockScheduleStore{}
	h := NewFlightBookingHandler(bookings, schedules, nil, t.TempDir())

	rec, c := bookFlightContext(t, "proof.pdf")
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid image type")
	schedules.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestBookFlightCleansReceiptWhenTransactionFails(t *testing.T) {
	bookings := &mockFlightBookingStore{}
	schedules := &mockScheduleStore{}
	dir := t.TempDir()
	h := NewFlightBookingHandler(bookings, schedules, nil, dir)

	schedules.On("GetByID", mock.Anything, uint64(5)).
		Return(model.FlightSchedule{ID: 5, Price: 1_500_000}, nil)
	bookings.On("CreateWithPayment", mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	rec, c := bookFlightContext(t, "proof.png")
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	receipts, err := os.ReadDir(dir)
	require.NoError(t, err)
	if len(receipts) == 1 {
		// The category dir may exist but must be empty again.
		inner, err := os.ReadDir(dir + "/" + receipts[0].Name())
		require.NoError(t, err)
		assert.Empty(t, inner)
	}
}

func TestBookFlightNoDeduplication(t *testing.T) {
	bookings := &mockFlightBookingStore{}
	schedules := &mockScheduleStore{}
	h := NewFlightBookingHandler(bookings, schedules, nil, t.TempDir())

	schedules.On("GetByID", mock.Anything, uint64(5)).
		Return(model.FlightSchedule{ID: 5, Price: 1_500_000}, nil)
	bookings.On("CreateWithPayment", mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Twice()

	for i := 0; i < 2; i++ {
		rec, c := bookFlightContext(t, "proof.png")
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
	bookings.AssertExpectations(t)
}

func TestUpdateFlightBookingMissing(t *testing.T) {
	bookings := &mockFlightBookingStore{}
	schedules := &mockScheduleStore{}
	h := NewFlightBookingHandler(bookings, schedules, nil, t.TempDir())

	bookings.On("Update", mock.Anything, uint64(404), mock.MatchedBy(func(p repository.FlightBookingPatch) bool {
		return p.Name != nil && *p.Name == "Budi"
	})).Return(repository.ErrNotFound)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/pesawat/booking/update/404",
		strings.NewReader(`{"name":"Budi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("404")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking not found")
	bookings.AssertExpectations(t)
}

func TestGetFlightBookingOwnedByAnotherUser(t *testing.T) {
	bookings := &mockFlightBookingStore{}
	schedules := &mockScheduleStore{}
	h := NewFlightBookingHandler(bookings, schedules, nil, t.TempDir())

	bookings.On("GetByIDAndUser", mock.Anything, uint64(8), uint64(11)).
		Return(repository.FlightBookingDetail{}, repository.ErrNotFound)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/pesawat/booking/8", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("bookingId")
	c.SetParamValues("8")
	c.Set(middleware.CtxUserID, uint64(11))
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking not found")
}
