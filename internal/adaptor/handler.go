package adaptor

import (
	"net/http"
	"strings"

	"padel-booking/internal/usecase"
	"padel-booking/pkg/utils"

	"go.uber.org/zap"
)

const msgNotFound = "La página solicitada no existe"

type Handler struct {
	Booking  *BookingHandler
	Checkout *CheckoutHandler

	render *Renderer
}

func NewHandler(service *usecase.Service, renderer *Renderer, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Booking:  NewBookingHandler(service.Booking, renderer, config.Booking.ProofMaxBytes, log),
		Checkout: NewCheckoutHandler(service.Checkout, renderer, config.Booking.SimplePaymentAmount, log),
		render:   renderer,
	}
}

// NotFound answers unknown routes: JSON under /api/, an HTML page otherwise.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		utils.ResponseNotFound(w, "resource not found")
		return
	}
	h.render.ErrorPage(w, http.StatusNotFound, msgNotFound)
}
