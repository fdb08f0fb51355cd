package createQRPayment

import (
	"errors"
	"log/slog"
	"net/http"

	"tablebooker/internal/http-server/middleware/mwauth"
	"tablebooker/internal/lib/api/response"
	"tablebooker/internal/lib/logger/sl"
	"tablebooker/internal/models"
	"tablebooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type QRResponse struct {
	response.Response
	URL string `json:"url"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingBinder
type BookingBinder interface {
	GetBooking(id string) (*models.Booking, error)
	SetPaymentReference(id, reference string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=QRCreator
type QRCreator interface {
	CreateQRCode(merchantPaymentID string, amountYen int64) (string, error)
}

func New(log *slog.Logger, store BookingBinder, gateway QRCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.createQRPayment.New"

		log = log.With(slog.String("op", op))

		principalID, ok := mwauth.PrincipalID(r.Context())
		if !ok {
			log.Error("no principal in context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		bookingID := chi.URLParam(r, "id")
		if bookingID == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		log = log.With(slog.String("booking_id", bookingID))

		booking, err := store.GetBooking(bookingID)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}
			log.Error("failed to get booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create payment"))
			return
		}

		if booking.OwnerID != principalID {
			log.Error("booking belongs to another user")
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("booking belongs to another user"))
			return
		}

		if booking.PaymentStatus == models.PaymentStatusPaid {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("booking is already paid"))
			return
		}

		// The booking id doubles as PayPay's merchantPaymentId, which is how
		// the confirmation step proves the reference was issued for this
		// booking.
		url, err := gateway.CreateQRCode(booking.ID, booking.AmountYen)
		if err != nil {
			log.Error("failed to create qr code", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("failed to create payment"))
			return
		}

		err = store.SetPaymentReference(booking.ID, booking.ID)
		if err != nil {
			if errors.Is(err, storage.ErrAlreadyPaid) {
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking is already paid"))
				return
			}
			log.Error("failed to bind payment reference", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create payment"))
			return
		}

		log.Info("qr payment created", slog.Int64("amount_yen", booking.AmountYen))

		render.JSON(w, r, QRResponse{
			Response: response.OK(),
			URL:      url,
		})
	}
}
