package response

import (
	"testing"
	"time"

	"padel-booking/internal/data/entity"
	"padel-booking/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullDraft() wizard.Draft {
	date := time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC)
	return wizard.Draft{
		Court:       &entity.Court{ID: 1, Name: "Cancha Central", PricePerHour: 25},
		Date:        &date,
		TimeSlot:    &entity.Slot{StartTime: "09:00:00", EndTime: "10:00:00"},
		UserDetails: &entity.UserDetails{Name: "Ana", Email: "ana@mail.com", Phone: "04141234567"},
	}
}

func TestNewSummaryWithoutCourt(t *testing.T) {
	assert.Nil(t, NewSummary(wizard.Draft{}, false))
	assert.Nil(t, NewSummary(wizard.Draft{}, true))
}

func TestNewSummaryPartialDraft(t *testing.T) {
	s := NewSummary(wizard.Draft{Court: &entity.Court{ID: 1, Name: "Cancha 2", PricePerHour: 30}}, false)
	require.NotNil(t, s)

	assert.Equal(t, "Cancha 2", s.CourtName)
	assert.Equal(t, "$30.00", s.PricePerHour)
	assert.Equal(t, "$30.00", s.Total)
	assert.Empty(t, s.Date)
	assert.Empty(t, s.TimeRange)
	assert.Nil(t, s.User)
}

func TestNewSummaryFull(t *testing.T) {
	s := NewSummary(fullDraft(), false)
	require.NotNil(t, s)

	assert.Equal(t, "lunes 6 de octubre", s.Date)
	assert.Equal(t, "09:00 - 10:00", s.TimeRange)
	require.NotNil(t, s.User)
	assert.Equal(t, "ana@mail.com", s.User.Email)
	assert.False(t, s.Compact)
}

func TestNewSummaryCompactOmitsUser(t *testing.T) {
	s := NewSummary(fullDraft(), true)
	require.NotNil(t, s)

	assert.True(t, s.Compact)
	assert.Nil(t, s.User)
	assert.Equal(t, "Cancha Central", s.CourtName)
}

func TestNewSummaryIsPure(t *testing.T) {
	draft := fullDraft()
	before := draft.Clone()

	first := NewSummary(draft, false)
	second := NewSummary(draft, false)

	assert.Equal(t, first, second)
	assert.Equal(t, before, draft)
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "domingo 5 de octubre", FormatLongDate(time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "miércoles 1 de enero", FormatLongDate(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "mié 1", FormatShortDay(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPaymentMethodName(t *testing.T) {
	assert.Equal(t, "Zelle", PaymentMethodName(entity.PaymentTypeZelle))
	assert.Equal(t, "Pago Móvil", PaymentMethodName(entity.PaymentTypePagoMovil))
	assert.Equal(t, "Tarjeta", PaymentMethodName(entity.PaymentTypeStripe))
}
