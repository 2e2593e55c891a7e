package usecase

import (
	"context"
	"fmt"
	"time"

	"padel-booking/internal/data/entity"
	"padel-booking/internal/data/repository"
	"padel-booking/internal/dto/request"
	"padel-booking/internal/dto/response"
	"padel-booking/internal/wizard"
	"padel-booking/pkg/apiclient"
	"padel-booking/pkg/metrics"
	"padel-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// BookingService drives the wizard of one browser session. Every call
// loads the session, applies one step operation and saves it back.
type BookingService interface {
	Page(ctx context.Context, sessionID string) (*response.BookingPage, error)
	Snapshot(ctx context.Context, sessionID string) (*response.BookingSnapshot, error)

	SelectCourt(ctx context.Context, sessionID string, req request.SelectCourtRequest) error
	SelectDate(ctx context.Context, sessionID, date string) error
	SelectSlot(ctx context.Context, sessionID string, req request.SelectSlotRequest) error
	SubmitDetails(ctx context.Context, sessionID string, req request.UserDetailsRequest) error
	SubmitPayment(ctx context.Context, sessionID string, req request.WizardPaymentRequest) error

	Back(ctx context.Context, sessionID string) error
	Reset(ctx context.Context, sessionID string) error
}

type bookingService struct {
	sessions      repository.SessionRepository
	courts        CourtService
	schedule      ScheduleService
	payments      PaymentService
	maxProofBytes int64
	metrics       *metrics.Metrics
	now           func() time.Time
	inflight      singleflight.Group
	log           *zap.Logger
}

func NewBookingService(
	sessions repository.SessionRepository,
	courts CourtService,
	schedule ScheduleService,
	payments PaymentService,
	config *utils.Config,
	m *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		sessions:      sessions,
		courts:        courts,
		schedule:      schedule,
		payments:      payments,
		maxProofBytes: config.Booking.ProofMaxBytes,
		metrics:       m,
		now:           time.Now,
		log:           log.With(zap.String("service", "booking")),
	}
}

// ==================== VIEWS ====================

func (s *bookingService) Page(ctx context.Context, sessionID string) (*response.BookingPage, error) {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ctrl := s.restore(sessionID, st)
	draft := ctrl.Draft()

	page := &response.BookingPage{Step: response.NewStepInfo(ctrl.Step())}

	switch ctrl.Step() {
	case wizard.StepCourt:
		courts, err := s.courts.GetCourts(ctx)
		if err != nil {
			page.Banner = repository.ErrLoadCourts.Error()
		} else {
			page.Courts = response.CourtsToView(courts)
		}

	case wizard.StepTime:
		if st.Time.SelectedDate == "" {
			st.Time.SelectedDate = s.today()
		}
		if !st.Time.Current() {
			if err := s.refreshSlots(ctx, sessionID, st); err != nil {
				return nil, err
			}
		}
		page.Days = response.DaysToView(s.schedule.Days(s.now()), st.Time.SelectedDate)
		page.SelectedDate = st.Time.SelectedDate
		page.SlotsLoaded = st.Time.Current() && st.Time.Error == ""
		if page.SlotsLoaded {
			page.Slots = response.SlotsToView(st.Time.Slots)
		}
		page.Banner = st.Time.Error

	case wizard.StepPayment:
		page.Methods = entity.WizardPaymentMethods
		page.Banks = entity.Banks
		page.SelectedMethod = string(entity.WizardPaymentMethods[0].ID)
		if draft.UserDetails != nil {
			page.Form = map[string]string{
				"email": draft.UserDetails.Email,
				"phone": draft.UserDetails.Phone,
			}
		}

	case wizard.StepSummary:
		page.Summary = response.NewSummary(draft, false)
	}

	if ctrl.Step().ShowsSidebar() {
		page.Summary = response.NewSummary(draft, true)
	}

	return page, nil
}

func (s *bookingService) Snapshot(ctx context.Context, sessionID string) (*response.BookingSnapshot, error) {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ctrl := s.restore(sessionID, st)

	return &response.BookingSnapshot{
		Step:    response.NewStepInfo(ctrl.Step()),
		Summary: response.NewSummary(ctrl.Draft(), !ctrl.Step().Terminal()),
	}, nil
}

// ==================== STEPS ====================

func (s *bookingService) SelectCourt(ctx context.Context, sessionID string, req request.SelectCourtRequest) error {
	if err := newValidationError(utils.ValidateStruct(req)); err != nil {
		return err
	}

	st, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	ctrl := s.restore(sessionID, st)
	if err := expectStep(ctrl, wizard.StepCourt, wizard.SliceCourt); err != nil {
		return err
	}

	courtID := utils.ParseInt64(req.CourtID, 0)
	if courtID == 0 {
		return newValidationError(map[string]string{"court_id": utils.RequiredMessage("court_id")})
	}

	court, err := s.courts.FindCourt(ctx, courtID)
	if err != nil {
		return err
	}

	if err := ctrl.Advance(wizard.CourtSlice{Court: *court}); err != nil {
		return err
	}
	st.sync(ctrl)
	st.Time.SelectedDate = s.today()

	return s.save(ctx, sessionID, st)
}

func (s *bookingService) SelectDate(ctx context.Context, sessionID, date string) error {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	ctrl := s.restore(sessionID, st)
	if err := expectStep(ctrl, wizard.StepTime, wizard.SliceSchedule); err != nil {
		return err
	}

	day, err := s.schedule.ParseDay(s.now(), date)
	if err != nil {
		return err
	}

	st.Time.SelectedDate = day.Format(wizard.DateLayout)
	return s.refreshSlots(ctx, sessionID, st)
}

func (s *bookingService) SelectSlot(ctx context.Context, sessionID string, req request.SelectSlotRequest) error {
	if err := newValidationError(utils.ValidateStruct(req)); err != nil {
		return err
	}

	st, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	ctrl := s.restore(sessionID, st)
	if err := expectStep(ctrl, wizard.StepTime, wizard.SliceSchedule); err != nil {
		return err
	}

	day, err := s.schedule.ParseDay(s.now(), req.Date)
	if err != nil {
		return err
	}

	draft := ctrl.Draft()
	date := day.Format(wizard.DateLayout)
	slot, err := s.schedule.FindSlot(ctx, draft.Court.ID, date, req.Slot())
	if err != nil {
		return err
	}

	if err := ctrl.Advance(wizard.ScheduleSlice{Date: day, Slot: *slot}); err != nil {
		return err
	}
	st.sync(ctrl)

	return s.save(ctx, sessionID, st)
}

func (s *bookingService) SubmitDetails(ctx context.Context, sessionID string, req request.UserDetailsRequest) error {
	req.Normalize()
	if err := newValidationError(utils.ValidateStruct(req)); err != nil {
		return err
	}

	st, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	ctrl := s.restore(sessionID, st)

	if err := ctrl.Advance(wizard.DetailsSlice{Details: req.ToEntity()}); err != nil {
		return err
	}
	st.sync(ctrl)

	return s.save(ctx, sessionID, st)
}

// SubmitPayment reserves the slot when needed and submits the payment.
// Concurrent submits of one session share a single backend attempt.
func (s *bookingService) SubmitPayment(ctx context.Context, sessionID string, req request.WizardPaymentRequest) error {
	req.Normalize()
	if err := newValidationError(req.Validate(s.maxProofBytes)); err != nil {
		return err
	}

	// The shared attempt outlives any single caller: one tab closing must
	// not abort the call the other submits are waiting on. The API client
	// timeout still bounds it.
	upstream := context.WithoutCancel(ctx)
	_, err, shared := s.inflight.Do(sessionID, func() (any, error) {
		return nil, s.pay(upstream, sessionID, req)
	})
	if shared {
		s.log.Info("Collapsed duplicate payment submit", zap.String("session_id", sessionID))
	}
	return err
}

func (s *bookingService) pay(ctx context.Context, sessionID string, req request.WizardPaymentRequest) error {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	ctrl := s.restore(sessionID, st)

	// an earlier submit already went through
	if ctrl.Step() == wizard.StepSummary {
		return nil
	}
	if err := expectStep(ctrl, wizard.StepPayment, wizard.SlicePayment); err != nil {
		return err
	}

	if st.Payment.IdempotencyKey == "" {
		st.Payment.IdempotencyKey = utils.GenerateIdempotencyKey()
	}
	key := st.Payment.IdempotencyKey

	if ctrl.Draft().ReservationID == 0 {
		reservation, err := s.payments.Reserve(ctx, ctrl.Draft(), key+":reservation")
		if err != nil {
			s.settleKey(st, err)
			return s.saveAfterFailure(ctx, sessionID, st, err)
		}
		if err := ctrl.AttachReservation(reservation.ID); err != nil {
			return err
		}
		st.sync(ctrl)
		if err := s.save(ctx, sessionID, st); err != nil {
			return err
		}
	}

	draft := ctrl.Draft()
	result, err := s.payments.Submit(ctx, req.ToSubmission(draft.ReservationID, key))
	if err != nil {
		s.settleKey(st, err)
		return s.saveAfterFailure(ctx, sessionID, st, err)
	}

	outcome := wizard.PaymentOutcome{
		Method:    entity.PaymentType(req.Method),
		Reference: req.Reference,
		PaymentID: result.PaymentID,
		Status:    result.Status,
	}
	if err := ctrl.Advance(wizard.PaymentSlice{Outcome: outcome}); err != nil {
		return err
	}
	if err := ctrl.ConfirmPayment(); err != nil {
		return err
	}
	st.sync(ctrl)

	return s.save(ctx, sessionID, st)
}

// settleKey rotates the idempotency key once the backend gave a definitive
// answer. After a timeout or network error the outcome is unknown and the
// retry must reuse the key.
func (s *bookingService) settleKey(st *SessionState, err error) {
	if apiclient.IsTransient(err) {
		return
	}
	st.Payment.IdempotencyKey = ""
}

func (s *bookingService) saveAfterFailure(ctx context.Context, sessionID string, st *SessionState, cause error) error {
	if err := s.save(ctx, sessionID, st); err != nil {
		s.log.Error("Failed to save session after payment failure", zap.Error(err), zap.String("session_id", sessionID))
	}
	return cause
}

func (s *bookingService) Back(ctx context.Context, sessionID string) error {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	ctrl := s.restore(sessionID, st)

	if err := ctrl.Back(); err != nil {
		return err
	}
	st.sync(ctrl)

	return s.save(ctx, sessionID, st)
}

func (s *bookingService) Reset(ctx context.Context, sessionID string) error {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	ctrl := s.restore(sessionID, st)
	ctrl.Reset()

	return s.sessions.Delete(ctx, sessionID)
}

// ==================== HELPERS ====================

// refreshSlots fetches availability for the selected date. The request is
// tagged before the call and the answer is stored only if the session
// still carries the same tag afterwards.
func (s *bookingService) refreshSlots(ctx context.Context, sessionID string, st *SessionState) error {
	st.Time.Seq++
	tag := availabilityTag{Seq: st.Time.Seq, Date: st.Time.SelectedDate, CourtID: st.Draft.Court.ID}
	if err := s.save(ctx, sessionID, st); err != nil {
		return err
	}

	slots, fetchErr := s.schedule.Availability(ctx, tag.CourtID, tag.Date)

	latest, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if !tag.matches(latest) {
		s.log.Info("Discarding stale availability",
			zap.String("session_id", sessionID),
			zap.String("date", tag.Date),
			zap.Uint64("seq", tag.Seq),
		)
		*st = *latest
		return nil
	}

	latest.Time.SlotsSeq = tag.Seq
	latest.Time.SlotsDate = tag.Date
	if fetchErr != nil {
		latest.Time.Slots = nil
		latest.Time.Error = repository.ErrLoadAvailability.Error()
	} else {
		latest.Time.Slots = slots
		latest.Time.Error = ""
	}

	*st = *latest
	return s.save(ctx, sessionID, st)
}

func (s *bookingService) load(ctx context.Context, sessionID string) (*SessionState, error) {
	st := newSessionState()
	found, err := s.sessions.Load(ctx, sessionID, st)
	if err != nil {
		return nil, err
	}
	if !found {
		return newSessionState(), nil
	}
	return st, nil
}

func (s *bookingService) save(ctx context.Context, sessionID string, st *SessionState) error {
	return s.sessions.Save(ctx, sessionID, st)
}

func (s *bookingService) restore(sessionID string, st *SessionState) *wizard.Controller {
	ctrl, ok := st.controller()
	if !ok {
		s.log.Warn("Discarding inconsistent session", zap.String("session_id", sessionID))
	}
	ctrl.OnTransition(func(from, to wizard.Step) {
		s.metrics.ObserveTransition(from.String(), to.String())
		s.log.Debug("Wizard transition",
			zap.String("session_id", sessionID),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	return ctrl
}

func (s *bookingService) today() string {
	return s.now().Format(wizard.DateLayout)
}

func expectStep(ctrl *wizard.Controller, step wizard.Step, kind wizard.SliceKind) error {
	if ctrl.Step() == step {
		return nil
	}
	if ctrl.Step().Terminal() {
		return wizard.ErrTerminal
	}
	return fmt.Errorf("%w: %s at step %s", wizard.ErrOutOfOrder, kind, ctrl.Step())
}
