package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/repository"
)

type mockFlightPaymentStore struct {
	mock.Mock
}

func (m *mockFlightPaymentStore) List(ctx context.Context) ([]repository.FlightPaymentDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.FlightPaymentDetail), args.Error(1)
}

func (m *mockFlightPaymentStore) UpdateStatus(ctx context.Context, bookingID uint64, status string) (model.FlightPayment, error) {
	args := m.Called(ctx, bookingID, status)
	return args.Get(0).(model.FlightPayment), args.Error(1)
}

type mockHotelPaymentStore struct {
	mock.Mock
}

func (m *mockHotelPaymentStore) List(ctx context.Context) ([]repository.HotelPaymentDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.HotelPaymentDetail), args.Error(1)
}

func (m *mockHotelPaymentStore) UpdateStatus(ctx context.Context, bookingID uint64, status string) (model.HotelPayment, error) {
	args := m.Called(ctx, bookingID, status)
	return args.Get(0).(model.HotelPayment), args.Error(1)
}

func newPaymentMocks() (*mockFlightPaymentStore, *mockHotelPaymentStore, *PaymentHandler) {
	f := &mockFlightPaymentStore{}
	h := &mockHotelPaymentStore{}
	return f, h, NewPaymentHandler(f, h)
}

func TestUpdateFlightStatusNonIntegerBookingID(t *testing.T) {
	flights, _, h := newPaymentMocks()

	rec, c := jsonRequest(http.MethodPut, "/pesawat/payments/status",
		`{"bookingId":"abc","status":"approved"}`)
	require.NoError(t, h.UpdateFlightStatus(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be an integer")
	flights.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateFlightStatusOutsideClosedSet(t *testing.T) {
	flights, _, h := newPaymentMocks()

	rec, c := jsonRequest(http.MethodPut, "/pesawat/payments/status",
		`{"bookingId":7,"status":"refunded"}`)
	require.NoError(t, h.UpdateFlightStatus(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	flights.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateFlightStatusMissingPayment(t *testing.T) {
	flights, _, h := newPaymentMocks()
	flights.On("UpdateStatus", mock.Anything, uint64(7), model.PaymentApproved).
		Return(model.FlightPayment{}, repository.ErrPaymentNotFound)

	rec, c := jsonRequest(http.MethodPut, "/pesawat/payments/status",
		`{"bookingId":7,"status":"approved"}`)
	require.NoError(t, h.UpdateFlightStatus(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateFlightStatusAcceptsNumericString(t *testing.T) {
	flights, _, h := newPaymentMocks()
	flights.On("UpdateStatus", mock.Anything, uint64(7), model.PaymentApproved).
		Return(model.FlightPayment{ID: 1, BookingID: 7, Status: model.PaymentApproved}, nil)

	rec, c := jsonRequest(http.MethodPut, "/pesawat/payments/status",
		`{"bookingId":"7","status":"approved"}`)
	require.NoError(t, h.UpdateFlightStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "updatedPayment")
	flights.AssertExpectations(t)
}

func TestUpdateHotelStatusLastWriteWins(t *testing.T) {
	_, hotels, h := newPaymentMocks()

	hotels.On("UpdateStatus", mock.Anything, uint64(3), model.PaymentApproved).
		Return(model.HotelPayment{ID: 2, BookingID: 3, Status: model.PaymentApproved}, nil).Once()
	hotels.On("UpdateStatus", mock.Anything, uint64(3), model.PaymentRejected).
		Return(model.HotelPayment{ID: 2, BookingID: 3, Status: model.PaymentRejected}, nil).Once()

	rec, c := jsonRequest(http.MethodPut, "/hotel/payments/status",
		`{"bookingId":3,"status":"approved"}`)
	require.NoError(t, h.UpdateHotelStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The same payment can move straight from approved to rejected.
	rec, c = jsonRequest(http.MethodPut, "/hotel/payments/status",
		`{"bookingId":3,"status":"rejected"}`)
	require.NoError(t, h.UpdateHotelStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), model.PaymentRejected)

	hotels.AssertExpectations(t)
}

func TestListFlightPayments(t *testing.T) {
	flights, _, h := newPaymentMocks()
	flights.On("List", mock.Anything).Return([]repository.FlightPaymentDetail{
		{FlightPayment: model.FlightPayment{ID: 1, BookingID: 7, Status: model.PaymentPending}},
	}, nil)

	rec, c := jsonRequest(http.MethodGet, "/pesawat/payments/index", "")
	require.NoError(t, h.ListFlights(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), model.PaymentPending)
}
