package wire

import (
	"padel-booking/internal/adaptor"
	"padel-booking/pkg/middleware"
	"padel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	signer *utils.CookieSigner,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(signer, config.Session, log))

		// GET / - Start (or resume) the booking wizard
		r.Get("/", bookingHandler.Index)

		r.Route("/booking", func(r chi.Router) {
			// GET /booking - Current wizard step
			r.Get("/", bookingHandler.Show)

			r.Post("/court", bookingHandler.SelectCourt)

			// GET /booking/time?date= - Load availability for another day
			r.Get("/time", bookingHandler.SelectDate)
			r.Post("/time", bookingHandler.SelectSlot)

			r.Post("/details", bookingHandler.SubmitDetails)

			// POST /booking/payment - Multipart form with the payment proof
			r.Post("/payment", bookingHandler.SubmitPayment)

			r.Post("/back", bookingHandler.Back)
			r.Post("/reset", bookingHandler.Reset)
		})

		// GET /api/booking - JSON snapshot of the wizard
		r.Get("/api/booking", bookingHandler.Snapshot)
	})
}
