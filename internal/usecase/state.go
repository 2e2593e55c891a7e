package usecase

import (
	"padel-booking/internal/data/entity"
	"padel-booking/internal/wizard"
)

// SessionState is what a browser session keeps between requests: the
// controller snapshot plus the local state of the steps that need one.
type SessionState struct {
	Step    wizard.Step      `json:"step"`
	Draft   wizard.Draft     `json:"draft"`
	Time    TimeStepState    `json:"time"`
	Payment PaymentStepState `json:"payment"`
}

// TimeStepState tracks the date strip. Seq and Date tag the latest
// availability request; an answer for an older tag is dropped.
type TimeStepState struct {
	SelectedDate string        `json:"selected_date,omitempty"`
	Seq          uint64        `json:"seq"`
	Slots        []entity.Slot `json:"slots,omitempty"`
	SlotsDate    string        `json:"slots_date,omitempty"`
	SlotsSeq     uint64        `json:"slots_seq,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// Current reports whether the stored slots answer the latest request.
func (t TimeStepState) Current() bool {
	return t.SlotsSeq == t.Seq && t.SlotsDate == t.SelectedDate && t.SelectedDate != ""
}

type availabilityTag struct {
	Seq     uint64
	Date    string
	CourtID int64
}

func (t availabilityTag) matches(st *SessionState) bool {
	return st.Step == wizard.StepTime &&
		st.Draft.Court != nil && st.Draft.Court.ID == t.CourtID &&
		st.Time.Seq == t.Seq && st.Time.SelectedDate == t.Date
}

// PaymentStepState keeps the idempotency key of the pending attempt. The
// key survives transport failures so a retry cannot charge twice.
type PaymentStepState struct {
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

func newSessionState() *SessionState {
	return &SessionState{Step: wizard.StepCourt}
}

// controller restores the wizard of st. A snapshot that no longer holds
// together starts over.
func (st *SessionState) controller() (*wizard.Controller, bool) {
	ctrl, err := wizard.Restore(st.Step, st.Draft)
	if err != nil {
		*st = *newSessionState()
		return wizard.New(), false
	}
	return ctrl, true
}

// sync copies the controller back and drops step state the wizard has
// moved away from.
func (st *SessionState) sync(ctrl *wizard.Controller) {
	st.Step = ctrl.Step()
	st.Draft = ctrl.Draft()

	if st.Step < wizard.StepTime {
		// Seq stays monotonic so answers tagged before a court change
		// cannot match again.
		st.Time = TimeStepState{Seq: st.Time.Seq}
	}
	if st.Step != wizard.StepPayment {
		st.Payment = PaymentStepState{}
	}
}
