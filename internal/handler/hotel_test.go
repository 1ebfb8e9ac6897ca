package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rakhadjo/nusatrip/internal/model"
	"github.com/rakhadjo/nusatrip/internal/repository"
)

type mockHotelStore struct {
	mock.Mock
}

func (m *mockHotelStore) List(ctx context.Context) ([]model.Hotel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Hotel), args.Error(1)
}

func (m *mockHotelStore) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Hotel), args.Error(1)
}

func (m *mockHotelStore) Create(ctx context.Context, h *model.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *mockHotelStore) Update(ctx context.Context, id uint64, h model.Hotel) (model.Hotel, error) {
	args := m.Called(ctx, id, h)
	return args.Get(0).(model.Hotel), args.Error(1)
}

func (m *mockHotelStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// multipartContext builds an echo context carrying a multipart form with
// the given fields and, when fileField is non-empty, one attached file.
func multipartContext(t *testing.T, target string, fields map[string]string, fileField, fileName string, fileBody []byte) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileBody)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestHotelCreateRejectsBadRatingBeforeStore(t *testing.T) {
	store := &mockHotelStore{}
	h := NewHotelHandler(store, t.TempDir())

	rec, c := multipartContext(t, "/hotel/add", map[string]string{
		"name":     "Grand Inna",
		"location": "Bali",
		"price":    "750000",
		"rating":   "5.5",
	}, "image", "inna.png", []byte("img"))
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rating must be between 0 and 5")
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHotelCreateRejectsBadPrice(t *testing.T) {
	store := &mockHotelStore{}
	h := NewHotelHandler(store, t.TempDir())

	rec, c := multipartContext(t, "/hotel/add", map[string]string{
		"name":     "Grand Inna",
		"location": "Bali",
		"price":    "cheap",
		"rating":   "4",
	}, "image", "inna.png", []byte("img"))
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid price value")
}

func TestHotelCreateStoresImageAndRow(t *testing.T) {
	store := &mockHotelStore{}
	h := NewHotelHandler(store, t.TempDir())

	store.On("Create", mock.Anything, mock.MatchedBy(func(hm *model.Hotel) bool {
		return hm.Name == "Grand Inna" && hm.Rating == 4.5 && hm.Image != ""
	})).Return(nil)

	rec, c := multipartContext(t, "/hotel/add", map[string]string{
		"name":     "Grand Inna",
		"location": "Bali",
		"price":    "750000",
		"rating":   "4.5",
	}, "image", "inna.png", []byte("img"))
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	store.AssertExpectations(t)
}

func TestHotelGet(t *testing.T) {
	store := &mockHotelStore{}
	h := NewHotelHandler(store, t.TempDir())

	store.On("GetByID", mock.Anything, uint64(3)).
		Return(model.Hotel{ID: 3, Name: "Grand Inna", Price: 750000, Rating: 4.5}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/hotel/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Grand Inna")
}

func TestHotelGetNotFound(t *testing.T) {
	store := &mockHotelStore{}
	h := NewHotelHandler(store, t.TempDir())

	store.On("GetByID", mock.Anything, uint64(99)).
		Return(model.Hotel{}, repository.ErrNotFound)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/hotel/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
