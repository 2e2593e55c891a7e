package request

import (
	"errors"
	"fmt"
	"strings"

	"padel-booking/internal/data/entity"
	"padel-booking/pkg/utils"
)

// WizardPaymentRequest is the payment step form. Which contact field is
// required depends on the method.
type WizardPaymentRequest struct {
	Method    string `form:"method" validate:"required,oneof=ZELLE PAGO_MOVIL"`
	Email     string `form:"email" validate:"required_if=Method ZELLE,omitempty,contact_email"`
	Phone     string `form:"phone" validate:"required_if=Method PAGO_MOVIL,omitempty,phone"`
	Bank      string `form:"bank" validate:"required_if=Method PAGO_MOVIL,omitempty,oneof=BANCO1 BANCO2 BANCO3"`
	Reference string `form:"reference" validate:"required,max=64"`

	Proof *entity.Attachment `form:"-" validate:"-"`
	// ProofErr is the upload error found while reading the file, if any.
	ProofErr error `form:"-" validate:"-"`
}

func (r *WizardPaymentRequest) Normalize() {
	r.Method = strings.TrimSpace(r.Method)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Bank = strings.TrimSpace(r.Bank)
	r.Reference = strings.TrimSpace(r.Reference)

	// fields the chosen method does not collect are dropped
	if method, ok := entity.FindWizardPaymentMethod(entity.PaymentType(r.Method)); ok {
		if !method.Has(entity.PaymentFieldEmail) {
			r.Email = ""
		}
		if !method.Has(entity.PaymentFieldPhone) {
			r.Phone = ""
		}
		if !method.Has(entity.PaymentFieldBank) {
			r.Bank = ""
		}
	}
}

// Validate runs the field rules plus the proof-of-payment checks.
func (r WizardPaymentRequest) Validate(maxProofBytes int64) map[string]string {
	errs := utils.ValidateStruct(r)

	switch {
	case r.ProofErr != nil:
		errs = utils.MergeErrors(errs, map[string]string{"proof": proofMessage(r.ProofErr, maxProofBytes)})
	case r.Proof == nil || len(r.Proof.Data) == 0:
		errs = utils.MergeErrors(errs, map[string]string{"proof": utils.RequiredMessage("proof")})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r WizardPaymentRequest) ToSubmission(reservationID int64, idempotencyKey string) entity.PaymentSubmission {
	return entity.PaymentSubmission{
		Method:         entity.PaymentType(r.Method),
		ReservationID:  reservationID,
		Email:          r.Email,
		Phone:          utils.NormalizePhone(r.Phone),
		Bank:           r.Bank,
		Reference:      r.Reference,
		Proof:          r.Proof,
		IdempotencyKey: idempotencyKey,
	}
}

func proofMessage(err error, maxBytes int64) string {
	switch {
	case errors.Is(err, utils.ErrFileTooLarge):
		return fmt.Sprintf("El comprobante no debe superar %d MB", maxBytes>>20)
	case errors.Is(err, utils.ErrInvalidMimeType):
		return "El comprobante debe ser una imagen"
	case errors.Is(err, utils.ErrEmptyFile):
		return utils.RequiredMessage("proof")
	default:
		return "No se pudo leer el comprobante"
	}
}

// SimplePaymentRequest is the stand-alone payment form. The reference is
// optional for card payments.
type SimplePaymentRequest struct {
	PaymentType string `form:"paymentType" json:"paymentType" validate:"required,oneof=STRIPE ZELLE PAGO_MOVIL"`
	Name        string `form:"name" json:"name" validate:"required,max=100"`
	Email       string `form:"email" json:"email" validate:"required,contact_email"`
	Phone       string `form:"phone" json:"phone" validate:"required,phone"`
	Reference   string `form:"reference" json:"reference" validate:"required_unless=PaymentType STRIPE,max=64"`
}

func (r *SimplePaymentRequest) Normalize() {
	r.PaymentType = strings.TrimSpace(r.PaymentType)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Reference = strings.TrimSpace(r.Reference)
}

func (r SimplePaymentRequest) ToEntity() entity.SimplePayment {
	return entity.SimplePayment{
		PaymentType: entity.PaymentType(r.PaymentType),
		Email:       r.Email,
		Name:        r.Name,
		Phone:       utils.NormalizePhone(r.Phone),
		Reference:   r.Reference,
	}
}
