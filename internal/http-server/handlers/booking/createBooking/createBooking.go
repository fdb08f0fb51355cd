package createBooking

import (
	"errors"
	"log/slog"
	"net/http"

	"tablebooker/internal/http-server/middleware/mwauth"
	"tablebooker/internal/lib/api/response"
	"tablebooker/internal/lib/logger/sl"
	"tablebooker/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type BookingRequest struct {
	HeadCount    int    `json:"head_count" validate:"required,min=1"`
	ResourceType string `json:"resource_type"`
}

type BookingResponse struct {
	response.Response
	BookingID string `json:"booking_id"`
	AmountYen int64  `json:"amount_yen"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(b *models.Booking) error
}

func New(log *slog.Logger, store BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log = log.With(slog.String("op", op))

		principalID, ok := mwauth.PrincipalID(r.Context())
		if !ok {
			log.Error("no principal in context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		var req BookingRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		resourceType := req.ResourceType
		if resourceType == "" {
			resourceType = models.ResourceTypeBeerpong
		}

		booking := &models.Booking{
			ID:            uuid.New().String(),
			OwnerID:       principalID,
			ResourceType:  resourceType,
			HeadCount:     req.HeadCount,
			AmountYen:     models.AmountYenFor(req.HeadCount),
			PaymentStatus: models.PaymentStatusUnpaid,
		}

		err = store.CreateBooking(booking)
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		log.Info("booking created",
			slog.String("booking_id", booking.ID),
			slog.Int("head_count", booking.HeadCount),
		)

		render.JSON(w, r, BookingResponse{
			Response:  response.OK(),
			BookingID: booking.ID,
			AmountYen: booking.AmountYen,
		})
	}
}
