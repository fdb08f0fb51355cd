package confirmPayment

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tablebooker/internal/booking"
	"tablebooker/internal/http-server/handlers/payment/confirmPayment/mocks"
	"tablebooker/internal/http-server/middleware/mwauth"
	"tablebooker/internal/lib/logger/handlers/slogdiscard"
	"tablebooker/internal/payment/paypay"
	"tablebooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmPaymentHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		bookingID      string
		authHeader     string
		requestBody    string
		mockSetup      func(mock *mocks.PaymentConfirmer)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			bookingID:   "bk-1",
			authHeader:  "Bearer user123",
			requestBody: `{"payment_reference": "bk-1"}`,
			mockSetup: func(mock *mocks.PaymentConfirmer) {
				mock.On("Confirm", "user123", "bk-1", "bk-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "Missing auth",
			bookingID:      "bk-1",
			authHeader:     "",
			requestBody:    `{"payment_reference": "bk-1"}`,
			mockSetup:      func(mock *mocks.PaymentConfirmer) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"authentication required"}`,
		},
		{
			name:           "Invalid JSON",
			bookingID:      "bk-1",
			authHeader:     "Bearer user123",
			requestBody:    `invalid json`,
			mockSetup:      func(mock *mocks.PaymentConfirmer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Missing payment reference",
			bookingID:      "bk-1",
			authHeader:     "Bearer user123",
			requestBody:    `{}`,
			mockSetup:      func(mock *mocks.PaymentConfirmer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field PaymentReference is a required field"}`,
		},
		{
			name:        "Booking not found",
			bookingID:   "bk-1",
			authHeader:  "Bearer user123",
			requestBody: `{"payment_reference": "bk-1"}`,
			mockSetup: func(mock *mocks.PaymentConfirmer) {
				mock.On("Confirm", "user123", "bk-1", "bk-1").Return(storage.ErrBookingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"booking not found"}`,
		},
		{
			name:        "Payment not found",
			bookingID:   "bk-1",
			authHeader:  "Bearer user123",
			requestBody: `{"payment_reference": "bk-1"}`,
			mockSetup: func(mock *mocks.PaymentConfirmer) {
				mock.On("Confirm", "user123", "bk-1", "bk-1").Return(paypay.ErrPaymentNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"payment not found"}`,
		},
		{
			name:        "Forbidden",
			bookingID:   "bk-1",
			authHeader:  "Bearer intruder",
			requestBody: `{"payment_reference": "bk-1"}`,
			mockSetup: func(mock *mocks.PaymentConfirmer) {
				mock.On("Confirm", "intruder", "bk-1", "bk-1").Return(booking.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"booking belongs to another user"}`,
		},
		{
			name:        "Payment incomplete",
			bookingID:   "bk-1",
			authHeader:  "Bearer user123",
			requestBody: `{"payment_reference": "bk-1"}`,
			mockSetup: func(mock *mocks.PaymentConfirmer) {
				mock.On("Confirm", "user123", "bk-1", "bk-1").Return(booking.ErrPaymentIncomplete)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"payment is not completed yet"}`,
		},
		{
			name:        "Payment mismatch",
			bookingID:   "bk-1",
			authHeader:  "Bearer user123",
			requestBody: `{"payment_reference": "other-ref"}`,
			mockSetup: func(mock *mocks.PaymentConfirmer) {
				mock.On("Confirm", "user123", "bk-1", "other-ref").Return(booking.ErrPaymentMismatch)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"payment does not match this booking"}`,
		},
		{
			name:        "Concurrent update exhausted",
			bookingID:   "bk-1",
			authHeader:  "Bearer user123",
			requestBody: `{"payment_reference": "bk-1"}`,
			mockSetup: func(mock *mocks.PaymentConfirmer) {
				mock.On("Confirm", "user123", "bk-1", "bk-1").Return(booking.ErrConcurrentUpdateExhausted)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"confirmation is contended, try again"}`,
		},
		{
			name:        "Gateway unavailable",
			bookingID:   "bk-1",
			authHeader:  "Bearer user123",
			requestBody: `{"payment_reference": "bk-1"}`,
			mockSetup: func(mock *mocks.PaymentConfirmer) {
				mock.On("Confirm", "user123", "bk-1", "bk-1").Return(paypay.ErrGatewayUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"status":"Error","error":"payment gateway unavailable"}`,
		},
		{
			name:        "Internal server error",
			bookingID:   "bk-1",
			authHeader:  "Bearer user123",
			requestBody: `{"payment_reference": "bk-1"}`,
			mockSetup: func(mock *mocks.PaymentConfirmer) {
				mock.On("Confirm", "user123", "bk-1", "bk-1").Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to confirm payment"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockConfirmer := mocks.NewPaymentConfirmer(t)
			tc.mockSetup(mockConfirmer)

			handler := New(logger, mockConfirmer)

			router := chi.NewRouter()
			router.Route("/bookings", func(r chi.Router) {
				r.Use(mwauth.New())
				r.Post("/{id}/confirm", handler)
			})

			req, err := http.NewRequest("POST", "/bookings/"+tc.bookingID+"/confirm", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			}
		})
	}
}

func TestConfirmPaymentWrappedErrors(t *testing.T) {
	t.Parallel()

	// The orchestrator wraps sentinel errors with context; the handler must
	// still classify them.
	logger := slogdiscard.NewDiscardLogger()

	mockConfirmer := mocks.NewPaymentConfirmer(t)
	mockConfirmer.On("Confirm", "user123", "bk-1", "bk-1").
		Return(errors.Join(errors.New("verify payment"), paypay.ErrGatewayUnavailable))

	router := chi.NewRouter()
	router.Route("/bookings", func(r chi.Router) {
		r.Use(mwauth.New())
		r.Post("/{id}/confirm", New(logger, mockConfirmer))
	})

	req, err := http.NewRequest("POST", "/bookings/bk-1/confirm", bytes.NewBufferString(`{"payment_reference": "bk-1"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer user123")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
