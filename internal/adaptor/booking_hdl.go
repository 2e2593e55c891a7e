package adaptor

import (
	"errors"
	"net/http"

	"padel-booking/internal/data/entity"
	"padel-booking/internal/dto/request"
	"padel-booking/internal/usecase"
	"padel-booking/pkg/utils"

	"go.uber.org/zap"
)

// multipart overhead allowed on top of the proof size
const formOverheadBytes = 1 << 20

type BookingHandler struct {
	service       usecase.BookingService
	render        *Renderer
	maxProofBytes int64
	log           *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, render *Renderer, maxProofBytes int64, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:       service,
		render:        render,
		maxProofBytes: maxProofBytes,
		log:           log.With(zap.String("handler", "booking")),
	}
}

// Index handles GET /
func (h *BookingHandler) Index(w http.ResponseWriter, r *http.Request) {
	utils.Redirect(w, r, "/booking")
}

// Show handles GET /booking
func (h *BookingHandler) Show(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())

	page, err := h.service.Page(r.Context(), sessionID)
	if err != nil {
		f := classifyError(h.log, err, "show booking")
		h.render.ErrorPage(w, f.status, f.banner)
		return
	}

	h.render.HTML(w, http.StatusOK, "booking", page)
}

// SelectCourt handles POST /booking/court
func (h *BookingHandler) SelectCourt(w http.ResponseWriter, r *http.Request) {
	req := request.SelectCourtRequest{CourtID: r.FormValue("court_id")}
	h.complete(w, r, "select court", nil,
		h.service.SelectCourt(r.Context(), h.sessionID(r), req))
}

// SelectDate handles GET /booking/time?date=YYYY-MM-DD
func (h *BookingHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	h.complete(w, r, "select date", nil,
		h.service.SelectDate(r.Context(), h.sessionID(r), r.URL.Query().Get("date")))
}

// SelectSlot handles POST /booking/time
func (h *BookingHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	req := request.SelectSlotRequest{
		Date:      r.FormValue("date"),
		StartTime: r.FormValue("start_time"),
		EndTime:   r.FormValue("end_time"),
	}
	h.complete(w, r, "select slot", nil,
		h.service.SelectSlot(r.Context(), h.sessionID(r), req))
}

// SubmitDetails handles POST /booking/details
func (h *BookingHandler) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	req := request.UserDetailsRequest{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
		Phone: r.FormValue("phone"),
	}
	form := map[string]string{"name": req.Name, "email": req.Email, "phone": req.Phone}

	h.complete(w, r, "submit details", form,
		h.service.SubmitDetails(r.Context(), h.sessionID(r), req))
}

// SubmitPayment handles POST /booking/payment (multipart)
func (h *BookingHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxProofBytes+formOverheadBytes)

	var req request.WizardPaymentRequest
	if err := r.ParseMultipartForm(h.maxProofBytes + formOverheadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			h.log.Warn("Invalid payment form", zap.Error(err))
			h.complete(w, r, "submit payment", nil, &usecase.ValidationError{
				Fields: map[string]string{"proof": utils.RequiredMessage("proof")},
			})
			return
		}
		req.ProofErr = utils.ErrFileTooLarge
	} else {
		req.Method = r.FormValue("method")
		req.Email = r.FormValue("email")
		req.Phone = r.FormValue("phone")
		req.Bank = r.FormValue("bank")
		req.Reference = r.FormValue("reference")
		req.Proof, req.ProofErr = h.readProof(r)
	}

	form := map[string]string{
		"method":    req.Method,
		"email":     req.Email,
		"phone":     req.Phone,
		"bank":      req.Bank,
		"reference": req.Reference,
	}

	h.complete(w, r, "submit payment", form,
		h.service.SubmitPayment(r.Context(), h.sessionID(r), req))
}

// Back handles POST /booking/back
func (h *BookingHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.complete(w, r, "step back", nil, h.service.Back(r.Context(), h.sessionID(r)))
}

// Reset handles POST /booking/reset
func (h *BookingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.complete(w, r, "reset booking", nil, h.service.Reset(r.Context(), h.sessionID(r)))
}

// Snapshot handles GET /api/booking
func (h *BookingHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Snapshot(r.Context(), h.sessionID(r))
	if err != nil {
		f := classifyError(h.log, err, "booking snapshot")
		utils.ResponseJSON(w, f.status, false, f.banner, nil, nil)
		return
	}

	utils.ResponseSuccess(w, "success", snapshot)
}

func (h *BookingHandler) sessionID(r *http.Request) string {
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())
	return sessionID
}

// complete redirects back to the wizard after a successful step operation
// and re-renders the current step with the error otherwise.
func (h *BookingHandler) complete(w http.ResponseWriter, r *http.Request, operation string, form map[string]string, err error) {
	if err == nil {
		utils.Redirect(w, r, "/booking")
		return
	}

	f := classifyError(h.log, err, operation)

	page, perr := h.service.Page(r.Context(), h.sessionID(r))
	if perr != nil {
		pf := classifyError(h.log, perr, "show booking")
		h.render.ErrorPage(w, pf.status, pf.banner)
		return
	}

	page.Errors = f.fields
	if f.banner != "" {
		page.Banner = f.banner
	}
	if len(form) > 0 {
		if page.Form == nil {
			page.Form = make(map[string]string, len(form))
		}
		for k, v := range form {
			page.Form[k] = v
		}
		if method := form["method"]; method != "" {
			page.SelectedMethod = method
		}
	}

	h.render.HTML(w, f.status, "booking", page)
}

func (h *BookingHandler) readProof(r *http.Request) (*entity.Attachment, error) {
	file, header, err := r.FormFile("proof")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, mimeType, err := utils.ValidateUpload(file, h.maxProofBytes, utils.ImageMimeTypes)
	if err != nil {
		return nil, err
	}

	return &entity.Attachment{
		Filename:    header.Filename,
		ContentType: mimeType,
		Data:        data,
	}, nil
}
