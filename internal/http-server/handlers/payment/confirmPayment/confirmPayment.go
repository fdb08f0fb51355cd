package confirmPayment

import (
	"errors"
	"log/slog"
	"net/http"

	"tablebooker/internal/booking"
	"tablebooker/internal/http-server/middleware/mwauth"
	"tablebooker/internal/lib/api/response"
	"tablebooker/internal/lib/logger/sl"
	"tablebooker/internal/payment/paypay"
	"tablebooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type ConfirmRequest struct {
	PaymentReference string `json:"payment_reference" validate:"required"`
}

type ConfirmResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentConfirmer
type PaymentConfirmer interface {
	Confirm(principalID, bookingID, reference string) error
}

func New(log *slog.Logger, confirmer PaymentConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.confirmPayment.New"

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

		var req ConfirmRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		err = confirmer.Confirm(principalID, bookingID, req.PaymentReference)
		if err != nil {
			log.Error("failed to confirm payment", sl.Err(err))

			switch {
			case errors.Is(err, storage.ErrBookingNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
			case errors.Is(err, paypay.ErrPaymentNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("payment not found"))
			case errors.Is(err, booking.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("booking belongs to another user"))
			case errors.Is(err, booking.ErrPaymentIncomplete):
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, response.Error("payment is not completed yet"))
			case errors.Is(err, booking.ErrPaymentMismatch):
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, response.Error("payment does not match this booking"))
			case errors.Is(err, booking.ErrConcurrentUpdateExhausted):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("confirmation is contended, try again"))
			case errors.Is(err, paypay.ErrGatewayUnavailable):
				render.Status(r, http.StatusBadGateway)
				render.JSON(w, r, response.Error("payment gateway unavailable"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to confirm payment"))
			}
			return
		}

		log.Info("payment confirmed successfully")

		responseOK(w, r)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, ConfirmResponse{
		Response: response.OK(),
	})
}
