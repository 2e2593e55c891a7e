package wire

import (
	"padel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// the stand-alone payment form does not use the wizard session
func wirePayment(r chi.Router, checkoutHandler *adaptor.CheckoutHandler) {
	r.Get("/payment", checkoutHandler.Show)
	r.Post("/payment", checkoutHandler.Submit)
}
