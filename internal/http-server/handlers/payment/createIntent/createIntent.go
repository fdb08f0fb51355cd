package createIntent

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
)

type IntentRequest struct {
	HeadCount int    `json:"head_count" validate:"required,min=1"`
	BookingID string `json:"booking_id"`
}

type IntentResponse struct {
	response.Response
	ClientSecret string `json:"client_secret"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=IntentCreator
type IntentCreator interface {
	CreateIntent(amountYen int64, bookingID, ownerID string) (string, error)
}

func New(log *slog.Logger, gateway IntentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.createIntent.New"

		log = log.With(slog.String("op", op))

		principalID, ok := mwauth.PrincipalID(r.Context())
		if !ok {
			log.Error("no principal in context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		var req IntentRequest

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

		clientSecret, err := gateway.CreateIntent(models.AmountYenFor(req.HeadCount), req.BookingID, principalID)
		if err != nil {
			log.Error("failed to create payment intent", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("failed to create payment"))
			return
		}

		log.Info("payment intent created", slog.Int("head_count", req.HeadCount))

		render.JSON(w, r, IntentResponse{
			Response:     response.OK(),
			ClientSecret: clientSecret,
		})
	}
}
