package wizard

import (
	"time"

	"padel-booking/internal/data/entity"
)

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

// PaymentOutcome records a payment confirmed by the payment API.
type PaymentOutcome struct {
	Method    entity.PaymentType `json:"method"`
	Reference string             `json:"reference,omitempty"`
	PaymentID int64              `json:"payment_id,omitempty"`
	Status    string             `json:"status,omitempty"`
}

// Draft is the booking record accumulated across the wizard steps.
type Draft struct {
	Court         *entity.Court       `json:"court,omitempty"`
	Date          *time.Time          `json:"date,omitempty"`
	TimeSlot      *entity.Slot        `json:"time_slot,omitempty"`
	UserDetails   *entity.UserDetails `json:"user_details,omitempty"`
	ReservationID int64               `json:"reservation_id,omitempty"`
	Payment       *PaymentOutcome     `json:"payment,omitempty"`
}

// Clone returns a deep copy so callers never share pointers with the
// controller's draft.
func (d Draft) Clone() Draft {
	out := Draft{ReservationID: d.ReservationID}
	if d.Court != nil {
		c := *d.Court
		out.Court = &c
	}
	if d.Date != nil {
		t := *d.Date
		out.Date = &t
	}
	if d.TimeSlot != nil {
		s := *d.TimeSlot
		out.TimeSlot = &s
	}
	if d.UserDetails != nil {
		u := *d.UserDetails
		out.UserDetails = &u
	}
	if d.Payment != nil {
		p := *d.Payment
		out.Payment = &p
	}
	return out
}

// DateString returns the draft date as YYYY-MM-DD, empty when unset.
func (d Draft) DateString() string {
	if d.Date == nil {
		return ""
	}
	return d.Date.Format(DateLayout)
}

// Validate checks that fields were populated in dependency order.
func (d Draft) Validate() error {
	if (d.Date != nil || d.TimeSlot != nil) && d.Court == nil {
		return ErrBrokenDraft
	}
	if (d.Date == nil) != (d.TimeSlot == nil) {
		return ErrBrokenDraft
	}
	if d.UserDetails != nil && d.TimeSlot == nil {
		return ErrBrokenDraft
	}
	if (d.Payment != nil || d.ReservationID != 0) && d.UserDetails == nil {
		return ErrBrokenDraft
	}
	return nil
}

// reachedStep is the first step whose slice is still missing.
func (d Draft) reachedStep() Step {
	switch {
	case d.Court == nil:
		return StepCourt
	case d.TimeSlot == nil:
		return StepTime
	case d.UserDetails == nil:
		return StepDetails
	default:
		return StepPayment
	}
}
