package response

import (
	"fmt"
	"time"

	"padel-booking/internal/data/entity"
	"padel-booking/internal/wizard"
)

var (
	weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	months   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
		"agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

type SummaryUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type SummaryPayment struct {
	Method    string `json:"method"`
	Reference string `json:"reference,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Summary is the read-only projection of a booking draft. Empty strings
// and nil blocks mean the draft does not have that part yet.
type Summary struct {
	Compact       bool            `json:"compact"`
	CourtName     string          `json:"court_name"`
	PricePerHour  string          `json:"price_per_hour"`
	Date          string          `json:"date,omitempty"`
	TimeRange     string          `json:"time_range,omitempty"`
	User          *SummaryUser    `json:"user,omitempty"`
	Total         string          `json:"total"`
	ReservationID int64           `json:"reservation_id,omitempty"`
	Payment       *SummaryPayment `json:"payment,omitempty"`
}

// NewSummary projects draft for display. It returns nil when no court is
// selected. Compact summaries leave out the contact block.
func NewSummary(draft wizard.Draft, compact bool) *Summary {
	if draft.Court == nil {
		return nil
	}

	s := &Summary{
		Compact:       compact,
		CourtName:     draft.Court.Name,
		PricePerHour:  FormatMoney(draft.Court.PricePerHour),
		Total:         FormatMoney(draft.Court.PricePerHour),
		ReservationID: draft.ReservationID,
	}

	if draft.Date != nil {
		s.Date = FormatLongDate(*draft.Date)
	}
	if draft.TimeSlot != nil {
		s.TimeRange = draft.TimeSlot.Label()
	}
	if draft.UserDetails != nil && !compact {
		s.User = &SummaryUser{
			Name:  draft.UserDetails.Name,
			Email: draft.UserDetails.Email,
			Phone: draft.UserDetails.Phone,
		}
	}
	if draft.Payment != nil && !compact {
		s.Payment = &SummaryPayment{
			Method:    PaymentMethodName(draft.Payment.Method),
			Reference: draft.Payment.Reference,
			Status:    draft.Payment.Status,
		}
	}

	return s
}

// FormatLongDate renders t as "lunes 5 de octubre".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s %d de %s", weekdays[t.Weekday()], t.Day(), months[t.Month()-1])
}

// FormatShortDay renders the date strip label, e.g. "lun 5".
func FormatShortDay(t time.Time) string {
	return fmt.Sprintf("%.3s %d", weekdays[t.Weekday()], t.Day())
}

func FormatMoney(a entity.Amount) string {
	return "$" + a.String()
}

func PaymentMethodName(id entity.PaymentType) string {
	if m, ok := entity.FindWizardPaymentMethod(id); ok {
		return m.Name
	}
	switch id {
	case entity.PaymentTypeStripe:
		return "Tarjeta"
	default:
		return string(id)
	}
}
