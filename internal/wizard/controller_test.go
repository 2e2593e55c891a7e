package wizard

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-booking/internal/data/entity"
)

var (
	testCourt   = entity.Court{ID: 3, Name: "Cancha Central", PricePerHour: 25}
	testDate    = time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)
	testSlot    = entity.Slot{StartTime: "09:00", EndTime: "10:00"}
	testDetails = entity.UserDetails{Name: "Juan Pérez", Email: "juan@email.com", Phone: "+58 414 1234567"}
	testPayment = PaymentOutcome{Method: entity.PaymentTypeZelle, Reference: "REF-1"}
)

func walkToPayment(t *testing.T) *Controller {
	t.Helper()
	c := New()
	require.NoError(t, c.Advance(CourtSlice{Court: testCourt}))
	require.NoError(t, c.Advance(ScheduleSlice{Date: testDate, Slot: testSlot}))
	require.NoError(t, c.Advance(DetailsSlice{Details: testDetails}))
	require.Equal(t, StepPayment, c.Step())
	return c
}

func TestController_ForwardWalk(t *testing.T) {
	c := New()
	assert.Equal(t, StepCourt, c.Step())

	require.NoError(t, c.Advance(CourtSlice{Court: testCourt}))
	assert.Equal(t, StepTime, c.Step())

	require.NoError(t, c.Advance(ScheduleSlice{Date: testDate, Slot: testSlot}))
	assert.Equal(t, StepDetails, c.Step())
	d := c.Draft()
	require.NotNil(t, d.Date)
	assert.Equal(t, "2026-10-19", d.DateString())
	assert.Equal(t, 0, d.Date.Hour(), "date is truncated to the day")

	require.NoError(t, c.Advance(DetailsSlice{Details: testDetails}))
	assert.Equal(t, StepPayment, c.Step())

	require.NoError(t, c.Advance(PaymentSlice{Outcome: testPayment}))
	assert.Equal(t, StepPayment, c.Step(), "payment slice does not advance on its own")

	require.NoError(t, c.ConfirmPayment())
	assert.Equal(t, StepSummary, c.Step())
	assert.NoError(t, c.Draft().Validate())
}

func TestController_RejectsOutOfOrderSlices(t *testing.T) {
	c := New()

	err := c.Advance(ScheduleSlice{Date: testDate, Slot: testSlot})
	assert.ErrorIs(t, err, ErrOutOfOrder)
	err = c.Advance(DetailsSlice{Details: testDetails})
	assert.ErrorIs(t, err, ErrOutOfOrder)
	err = c.Advance(PaymentSlice{Outcome: testPayment})
	assert.ErrorIs(t, err, ErrOutOfOrder)

	assert.Equal(t, StepCourt, c.Step())
	assert.Equal(t, Draft{}, c.Draft())

	require.NoError(t, c.Advance(CourtSlice{Court: testCourt}))
	err = c.Advance(CourtSlice{Court: testCourt})
	assert.ErrorIs(t, err, ErrOutOfOrder, "a step cannot be replayed")
}

func TestController_ConfirmPaymentRequiresPayment(t *testing.T) {
	c := walkToPayment(t)

	assert.ErrorIs(t, c.ConfirmPayment(), ErrNoPayment)
	assert.Equal(t, StepPayment, c.Step())

	early := New()
	assert.ErrorIs(t, early.ConfirmPayment(), ErrOutOfOrder)
}

func TestController_SummaryIsTerminal(t *testing.T) {
	c := walkToPayment(t)
	require.NoError(t, c.Advance(PaymentSlice{Outcome: testPayment}))
	require.NoError(t, c.ConfirmPayment())

	assert.ErrorIs(t, c.Advance(CourtSlice{Court: testCourt}), ErrTerminal)
	assert.ErrorIs(t, c.ConfirmPayment(), ErrTerminal)
	assert.ErrorIs(t, c.Back(), ErrTerminal)
	assert.ErrorIs(t, c.AttachReservation(9), ErrTerminal)
	assert.Equal(t, StepSummary, c.Step())
}

func TestController_EmptySlicesAreRejected(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.Advance(CourtSlice{}), ErrEmptySlice)
	assert.Equal(t, StepCourt, c.Step())

	require.NoError(t, c.Advance(CourtSlice{Court: testCourt}))
	assert.ErrorIs(t, c.Advance(ScheduleSlice{Slot: testSlot}), ErrEmptySlice)

	require.NoError(t, c.Advance(ScheduleSlice{Date: testDate, Slot: testSlot}))
	assert.ErrorIs(t, c.Advance(DetailsSlice{Details: entity.UserDetails{Name: "x"}}), ErrEmptySlice)
	assert.Nil(t, c.Draft().UserDetails)
}

func TestController_BackClearsLaterSlices(t *testing.T) {
	c := walkToPayment(t)
	require.NoError(t, c.AttachReservation(42))

	require.NoError(t, c.Back())
	assert.Equal(t, StepDetails, c.Step())
	d := c.Draft()
	assert.Nil(t, d.UserDetails)
	assert.Zero(t, d.ReservationID)
	assert.NotNil(t, d.TimeSlot)

	require.NoError(t, c.Back())
	assert.Equal(t, StepTime, c.Step())
	d = c.Draft()
	assert.Nil(t, d.Date)
	assert.Nil(t, d.TimeSlot)
	assert.NotNil(t, d.Court)

	require.NoError(t, c.Back())
	assert.Equal(t, StepCourt, c.Step())
	assert.Equal(t, Draft{}, c.Draft())

	assert.ErrorIs(t, c.Back(), ErrCannotGoBack)
}

func TestController_ResetStartsOver(t *testing.T) {
	c := walkToPayment(t)
	c.Reset()
	assert.Equal(t, StepCourt, c.Step())
	assert.Equal(t, Draft{}, c.Draft())
}

func TestController_TransitionsAreReported(t *testing.T) {
	type move struct{ from, to Step }
	var moves []move

	c := New()
	c.OnTransition(func(from, to Step) { moves = append(moves, move{from, to}) })

	require.NoError(t, c.Advance(CourtSlice{Court: testCourt}))
	require.NoError(t, c.Back())

	assert.Equal(t, []move{{StepCourt, StepTime}, {StepTime, StepCourt}}, moves)
}

func TestController_DraftSnapshotIsDetached(t *testing.T) {
	c := New()
	require.NoError(t, c.Advance(CourtSlice{Court: testCourt}))

	snap := c.Draft()
	snap.Court.Name = "mutated"

	assert.Equal(t, "Cancha Central", c.Draft().Court.Name)
}

func TestRestore(t *testing.T) {
	c := walkToPayment(t)

	restored, err := Restore(c.Step(), c.Draft())
	require.NoError(t, err)
	assert.Equal(t, StepPayment, restored.Step())
	assert.Equal(t, c.Draft(), restored.Draft())

	_, err = Restore(StepSummary, c.Draft())
	assert.ErrorIs(t, err, ErrBrokenDraft, "summary needs a payment")

	_, err = Restore(StepTime, c.Draft())
	assert.ErrorIs(t, err, ErrBrokenDraft, "step must match the draft")

	_, err = Restore(Step(9), Draft{})
	assert.Error(t, err)

	slot := testSlot
	_, err = Restore(StepDetails, Draft{TimeSlot: &slot})
	assert.ErrorIs(t, err, ErrBrokenDraft)
}

// Random operation sequences never produce a draft that breaks the
// dependency order, and the step never skips forward.
func TestController_RandomWalkKeepsInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	ops := []func(c *Controller) error{
		func(c *Controller) error { return c.Advance(CourtSlice{Court: testCourt}) },
		func(c *Controller) error { return c.Advance(ScheduleSlice{Date: testDate, Slot: testSlot}) },
		func(c *Controller) error { return c.Advance(DetailsSlice{Details: testDetails}) },
		func(c *Controller) error { return c.Advance(PaymentSlice{Outcome: testPayment}) },
		func(c *Controller) error { return c.ConfirmPayment() },
		func(c *Controller) error { return c.AttachReservation(5) },
		func(c *Controller) error { return c.Back() },
	}

	for run := 0; run < 200; run++ {
		c := New()
		for i := 0; i < 30; i++ {
			before := c.Step()
			_ = ops[rng.Intn(len(ops))](c)
			after := c.Step()

			require.NoError(t, c.Draft().Validate())
			assert.LessOrEqual(t, int(after), int(before)+1, "step skipped from %s to %s", before, after)

			d := c.Draft()
			if d.TimeSlot != nil {
				require.NotNil(t, d.Court)
				require.NotNil(t, d.Date)
			}
			if d.Payment != nil {
				require.NotNil(t, d.UserDetails)
			}
		}
	}
}

func TestStep_Progress(t *testing.T) {
	assert.Equal(t, 25, StepCourt.Progress())
	assert.Equal(t, 75, StepDetails.Progress())
	assert.Equal(t, 100, StepPayment.Progress())
	assert.Equal(t, 100, StepSummary.Progress())
	assert.False(t, StepCourt.ShowsSidebar())
	assert.True(t, StepTime.ShowsSidebar())
	assert.False(t, StepSummary.ShowsSidebar())
}
