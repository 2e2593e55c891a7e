package adaptor

import (
	"net/http"
	"strings"

	"padel-booking/internal/data/entity"
	"padel-booking/internal/dto/request"
	"padel-booking/internal/dto/response"
	"padel-booking/internal/usecase"
	"padel-booking/pkg/apiclient"
	"padel-booking/pkg/utils"

	"go.uber.org/zap"
)

const msgPaymentSuccess = "¡Pago procesado exitosamente!"

// CheckoutHandler serves the stand-alone payment form.
type CheckoutHandler struct {
	service usecase.CheckoutService
	render  *Renderer
	amount  string
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, render *Renderer, amount float64, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		render:  render,
		amount:  response.FormatMoney(entity.Amount(amount)),
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// Show handles GET /payment
func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, http.StatusOK, "checkout", h.page(utils.GenerateIdempotencyKey()))
}

// Submit handles POST /payment
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req := request.SimplePaymentRequest{
		PaymentType: r.FormValue("paymentType"),
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		Reference:   r.FormValue("reference"),
	}
	req.Normalize()

	key := strings.TrimSpace(r.FormValue("idempotency_key"))
	if key == "" || len(key) > 64 {
		key = utils.GenerateIdempotencyKey()
	}

	page := h.page(key)
	page.Form = map[string]string{
		"paymentType": req.PaymentType,
		"name":        req.Name,
		"email":       req.Email,
		"phone":       req.Phone,
		"reference":   req.Reference,
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		page.Errors = errs
		h.render.HTML(w, http.StatusUnprocessableEntity, "checkout", page)
		return
	}

	if _, err := h.service.Pay(r.Context(), req.ToEntity(), key); err != nil {
		f := classifyError(h.log, err, "simple payment")
		page.Banner = f.banner
		// the same key is resubmitted only while the outcome is unknown
		if !apiclient.IsTransient(err) {
			page.IdempotencyKey = utils.GenerateIdempotencyKey()
		}
		h.render.HTML(w, f.status, "checkout", page)
		return
	}

	done := h.page(utils.GenerateIdempotencyKey())
	done.Success = msgPaymentSuccess
	h.render.HTML(w, http.StatusOK, "checkout", done)
}

func (h *CheckoutHandler) page(key string) *response.CheckoutPage {
	return &response.CheckoutPage{
		Amount:         h.amount,
		Types:          response.CheckoutTypes,
		IdempotencyKey: key,
	}
}
