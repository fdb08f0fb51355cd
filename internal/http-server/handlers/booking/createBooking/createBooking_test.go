package createBooking

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tablebooker/internal/http-server/handlers/booking/createBooking/mocks"
	"tablebooker/internal/http-server/middleware/mwauth"
	"tablebooker/internal/lib/logger/handlers/slogdiscard"
	"tablebooker/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		authHeader     string
		requestBody    string
		mockSetup      func(m *mocks.BookingCreator)
		expectedStatus int
	}{
		{
			name:        "Success",
			authHeader:  "Bearer user123",
			requestBody: `{"head_count": 4}`,
			mockSetup: func(m *mocks.BookingCreator) {
				m.On("CreateBooking", mock.AnythingOfType("*models.Booking")).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing auth",
			authHeader:     "",
			requestBody:    `{"head_count": 4}`,
			mockSetup:      func(m *mocks.BookingCreator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid JSON",
			authHeader:     "Bearer user123",
			requestBody:    `invalid json`,
			mockSetup:      func(m *mocks.BookingCreator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing head count",
			authHeader:     "Bearer user123",
			requestBody:    `{}`,
			mockSetup:      func(m *mocks.BookingCreator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Zero head count",
			authHeader:     "Bearer user123",
			requestBody:    `{"head_count": 0}`,
			mockSetup:      func(m *mocks.BookingCreator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Storage error",
			authHeader:  "Bearer user123",
			requestBody: `{"head_count": 4}`,
			mockSetup: func(m *mocks.BookingCreator) {
				m.On("CreateBooking", mock.AnythingOfType("*models.Booking")).Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockStore := mocks.NewBookingCreator(t)
			tc.mockSetup(mockStore)

			router := chi.NewRouter()
			router.Group(func(r chi.Router) {
				r.Use(mwauth.New())
				r.Post("/bookings", New(logger, mockStore))
			})

			req, err := http.NewRequest("POST", "/bookings", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
		})
	}
}

func TestCreateBookingFillsDefaults(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	var created *models.Booking
	mockStore := mocks.NewBookingCreator(t)
	mockStore.On("CreateBooking", mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.Booking)
		}).
		Return(nil)

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(mwauth.New())
		r.Post("/bookings", New(logger, mockStore))
	})

	req, err := http.NewRequest("POST", "/bookings", bytes.NewBufferString(`{"head_count": 3}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer user123")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, created)

	assert.Equal(t, "user123", created.OwnerID)
	assert.Equal(t, models.ResourceTypeBeerpong, created.ResourceType)
	assert.Equal(t, 3, created.HeadCount)
	assert.Equal(t, int64(3*models.PricePerHeadYen), created.AmountYen)
	assert.Equal(t, models.PaymentStatusUnpaid, created.PaymentStatus)

	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err, "booking id must be a uuid")

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.BookingID)
	assert.Equal(t, created.AmountYen, resp.AmountYen)
}
