package response

import (
	"padel-booking/internal/data/entity"
)

// BookingPage is everything the wizard template needs for one render.
type BookingPage struct {
	Step StepInfo
	// Summary is compact on steps 2 to 4 and full on the confirmation.
	Summary *Summary

	Courts []CourtView

	Days         []DayView
	SelectedDate string
	Slots        []SlotView
	SlotsLoaded  bool

	Methods        []entity.PaymentMethod
	SelectedMethod string
	Banks          []entity.Bank

	// Form echoes submitted values back into the inputs.
	Form   map[string]string
	Errors map[string]string
	// Banner is a page-level error such as a backend failure.
	Banner string
}

// Value returns the echoed value of a form field.
func (p *BookingPage) Value(field string) string {
	if p == nil || p.Form == nil {
		return ""
	}
	return p.Form[field]
}

// Error returns the inline error of a form field.
func (p *BookingPage) Error(field string) string {
	if p == nil || p.Errors == nil {
		return ""
	}
	return p.Errors[field]
}

// CheckoutPage is the stand-alone payment form.
type CheckoutPage struct {
	Amount         string
	Types          []CheckoutType
	IdempotencyKey string
	Form           map[string]string
	Errors         map[string]string
	Success        string
	Banner         string
}

type CheckoutType struct {
	ID   entity.PaymentType
	Name string
}

var CheckoutTypes = []CheckoutType{
	{ID: entity.PaymentTypeStripe, Name: "Tarjeta (Stripe)"},
	{ID: entity.PaymentTypeZelle, Name: "Zelle"},
	{ID: entity.PaymentTypePagoMovil, Name: "Pago Móvil"},
}

func (p *CheckoutPage) Value(field string) string {
	if p == nil || p.Form == nil {
		return ""
	}
	return p.Form[field]
}

func (p *CheckoutPage) Error(field string) string {
	if p == nil || p.Errors == nil {
		return ""
	}
	return p.Errors[field]
}
