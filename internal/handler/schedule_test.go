package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/repository"
)

func scheduleListContext(target string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestScheduleListUnfilteredEmptyIsOK(t *testing.T) {
	schedules := &mockScheduleStore{}
	h := NewScheduleHandler(schedules)

	schedules.On("Search", mock.Anything, repository.ScheduleSearch{}).
		Return([]model.FlightSchedule{}, nil)

	rec, c := scheduleListContext("/jadwal-penerbangan")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestScheduleListFilteredNoMatches(t *testing.T) {
	schedules := &mockScheduleStore{}
	h := NewScheduleHandler(schedules)

	schedules.On("Search", mock.Anything, mock.MatchedBy(func(q repository.ScheduleSearch) bool {
		return q.Origin == "Jakarta" && q.Destination == "Tokyo"
	})).Return([]model.FlightSchedule{}, nil)

	rec, c := scheduleListContext("/jadwal-penerbangan?origin=Jakarta&destination=Tokyo")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No flights found.")
}

func TestScheduleListBadDate(t *testing.T) {
	schedules := &mockScheduleStore{}
	h := NewScheduleHandler(schedules)

	rec, c := scheduleListContext("/jadwal-penerbangan?flightDate=12-31-2026")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid date format")
	schedules.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestScheduleListDateFilterWholeDay(t *testing.T) {
	schedules := &mockScheduleStore{}
	h := NewScheduleHandler(schedules)

	day := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	schedules.On("Search", mock.Anything, mock.MatchedBy(func(q repository.ScheduleSearch) bool {
		return q.FlightDate != nil && q.FlightDate.Equal(day)
	})).Return([]model.FlightSchedule{{ID: 1, Origin: "Jakarta", Destination: "Bali"}}, nil)

	rec, c := scheduleListContext("/jadwal-penerbangan?flightDate=2026-12-31")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jakarta")
}

func TestScheduleCreateRequiresAllFields(t *testing.T) {
	schedules := &mockScheduleStore{}
	h := NewScheduleHandler(schedules)

	rec, c := jsonRequest(http.MethodPost, "/jadwal-penerbangan/add",
		`{"pesawatId":"1","origin":"Jakarta"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "all fields are required")
	schedules.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestScheduleCreate(t *testing.T) {
	schedules := &mockScheduleStore{}
	h := NewScheduleHandler(schedules)

	schedules.On("Create", mock.Anything, mock.MatchedBy(func(s *model.FlightSchedule) bool {
		return s.PesawatID == 2 && s.Origin == "Jakarta" && s.Price == 1_250_000
	})).Return(nil)

	rec, c := jsonRequest(http.MethodPost, "/jadwal-penerbangan/add",
		`{"pesawatId":"2","flightDate":"2026-10-01","departureTime":"08:00","arrivalTime":"10:30","origin":"Jakarta","destination":"Bali","class":"economy","price":"1250000"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	schedules.AssertExpectations(t)
}
