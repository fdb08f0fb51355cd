package getSchedule

import (
	"log/slog"
	"net/http"

	"tablebooker/internal/lib/api/response"
	"tablebooker/internal/lib/logger/sl"
	"tablebooker/internal/models"

	"github.com/go-chi/render"
)

type ScheduleResponse struct {
	response.Response
	Slots []models.Slot `json:"slots"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ScheduleProvider
type ScheduleProvider interface {
	ListPaidBookings(resourceType string) ([]models.Booking, error)
}

func New(log *slog.Logger, store ScheduleProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.getSchedule.New"

		log = log.With(slog.String("op", op))

		resourceType := r.URL.Query().Get("resource_type")
		if resourceType == "" {
			resourceType = models.ResourceTypeBeerpong
		}

		bookings, err := store.ListPaidBookings(resourceType)
		if err != nil {
			log.Error("failed to list paid bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get schedule"))
			return
		}

		slots := make([]models.Slot, 0, len(bookings))
		for _, b := range bookings {
			if b.StartAt == nil || b.EndAt == nil {
				continue
			}
			slots = append(slots, models.Slot{StartAt: *b.StartAt, EndAt: *b.EndAt})
		}

		render.JSON(w, r, ScheduleResponse{
			Response: response.OK(),
			Slots:    slots,
		})
	}
}
