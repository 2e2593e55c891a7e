package wizard

import (
	"fmt"
	"strings"
	"time"

	"padel-booking/internal/data/entity"
)

// SliceKind names the part of the draft a step emits on completion.
type SliceKind string

const (
	SliceCourt    SliceKind = "court"
	SliceSchedule SliceKind = "schedule"
	SliceDetails  SliceKind = "user_details"
	SlicePayment  SliceKind = "payment_method"
)

// Slice is the completed data of one step.
type Slice interface {
	Kind() SliceKind
	step() Step
	apply(d *Draft) error
}

type CourtSlice struct {
	Court entity.Court
}

func (CourtSlice) Kind() SliceKind { return SliceCourt }
func (CourtSlice) step() Step      { return StepCourt }

func (s CourtSlice) apply(d *Draft) error {
	if s.Court.ID == 0 {
		return fmt.Errorf("%w: court", ErrEmptySlice)
	}
	c := s.Court
	d.Court = &c
	return nil
}

// ScheduleSlice carries the date together with the slot, they are
// collected by the same step and merged at once.
type ScheduleSlice struct {
	Date time.Time
	Slot entity.Slot
}

func (ScheduleSlice) Kind() SliceKind { return SliceSchedule }
func (ScheduleSlice) step() Step      { return StepTime }

func (s ScheduleSlice) apply(d *Draft) error {
	if s.Date.IsZero() || s.Slot.StartTime == "" {
		return fmt.Errorf("%w: schedule", ErrEmptySlice)
	}
	date := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, s.Date.Location())
	slot := s.Slot
	d.Date = &date
	d.TimeSlot = &slot
	return nil
}

type DetailsSlice struct {
	Details entity.UserDetails
}

func (DetailsSlice) Kind() SliceKind { return SliceDetails }
func (DetailsSlice) step() Step      { return StepDetails }

func (s DetailsSlice) apply(d *Draft) error {
	u := s.Details
	if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Email) == "" || strings.TrimSpace(u.Phone) == "" {
		return fmt.Errorf("%w: user details", ErrEmptySlice)
	}
	d.UserDetails = &u
	return nil
}

// PaymentSlice records a payment the gateway accepted. Merging it does not
// advance the wizard; ConfirmPayment does.
type PaymentSlice struct {
	Outcome PaymentOutcome
}

func (PaymentSlice) Kind() SliceKind { return SlicePayment }
func (PaymentSlice) step() Step      { return StepPayment }

func (s PaymentSlice) apply(d *Draft) error {
	if s.Outcome.Method == "" {
		return fmt.Errorf("%w: payment", ErrEmptySlice)
	}
	p := s.Outcome
	d.Payment = &p
	return nil
}

var forward = map[Step]Step{
	StepCourt:   StepTime,
	StepTime:    StepDetails,
	StepDetails: StepPayment,
	StepPayment: StepSummary,
}

// TransitionFunc observes every step change.
type TransitionFunc func(from, to Step)

// Controller owns the current step and the booking draft. It is not safe
// for concurrent use; one request owns it at a time.
type Controller struct {
	step         Step
	draft        Draft
	onTransition TransitionFunc
}

func New() *Controller {
	return &Controller{step: StepCourt}
}

// Restore rebuilds a controller from a stored snapshot.
func Restore(step Step, draft Draft) (*Controller, error) {
	if !step.Valid() {
		return nil, fmt.Errorf("wizard: invalid step %d", int(step))
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	switch {
	case step == StepSummary:
		if draft.Payment == nil {
			return nil, fmt.Errorf("%w: summary without payment", ErrBrokenDraft)
		}
	case step != draft.reachedStep():
		return nil, fmt.Errorf("%w: step %s does not match draft", ErrBrokenDraft, step)
	case draft.Payment != nil:
		return nil, fmt.Errorf("%w: payment recorded before summary", ErrBrokenDraft)
	}

	return &Controller{step: step, draft: draft.Clone()}, nil
}

// OnTransition registers fn to be called after each step change.
func (c *Controller) OnTransition(fn TransitionFunc) {
	c.onTransition = fn
}

func (c *Controller) Step() Step {
	return c.step
}

// Draft returns a snapshot of the draft.
func (c *Controller) Draft() Draft {
	return c.draft.Clone()
}

// Advance merges slice into the draft and moves to the next step, except
// for payment slices whose advance waits for ConfirmPayment.
func (c *Controller) Advance(slice Slice) error {
	if c.step.Terminal() {
		return ErrTerminal
	}
	if slice.step() != c.step {
		return outOfOrder(slice.Kind(), c.step)
	}

	next := c.draft.Clone()
	if err := slice.apply(&next); err != nil {
		return err
	}
	c.draft = next

	if slice.Kind() == SlicePayment {
		return nil
	}
	c.moveTo(forward[c.step])
	return nil
}

// AttachReservation stores the reservation created for the payment.
func (c *Controller) AttachReservation(id int64) error {
	if c.step.Terminal() {
		return ErrTerminal
	}
	if c.step != StepPayment {
		return outOfOrder(SlicePayment, c.step)
	}
	c.draft.ReservationID = id
	return nil
}

// ConfirmPayment performs the payment to summary transition once the
// gateway accepted the payment.
func (c *Controller) ConfirmPayment() error {
	if c.step.Terminal() {
		return ErrTerminal
	}
	if c.step != StepPayment {
		return outOfOrder(SlicePayment, c.step)
	}
	if c.draft.Payment == nil {
		return ErrNoPayment
	}
	c.moveTo(StepSummary)
	return nil
}

// Back returns to the previous step and clears what that step and the
// following ones collected.
func (c *Controller) Back() error {
	if c.step.Terminal() {
		return ErrTerminal
	}
	if c.step == StepCourt {
		return ErrCannotGoBack
	}

	target := c.step - 1
	c.draft = clearFrom(c.draft, target)
	c.moveTo(target)
	return nil
}

// Reset abandons the draft and starts over.
func (c *Controller) Reset() {
	c.draft = Draft{}
	c.moveTo(StepCourt)
}

func (c *Controller) moveTo(to Step) {
	from := c.step
	c.step = to
	if c.onTransition != nil && from != to {
		c.onTransition(from, to)
	}
}

func clearFrom(d Draft, step Step) Draft {
	out := d.Clone()
	switch step {
	case StepCourt:
		return Draft{}
	case StepTime:
		out.Date = nil
		out.TimeSlot = nil
		fallthrough
	case StepDetails:
		out.UserDetails = nil
		fallthrough
	case StepPayment:
		out.ReservationID = 0
		out.Payment = nil
	}
	return out
}
