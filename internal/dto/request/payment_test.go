package request

import (
	"testing"

	"padel-booking/internal/data/entity"
	"padel-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
)

var proof = &entity.Attachment{Filename: "p.png", ContentType: "image/png", Data: []byte("x")}

func TestWizardPaymentZelleRequiresEmail(t *testing.T) {
	req := WizardPaymentRequest{Method: "ZELLE", Reference: "123", Proof: proof}
	errs := req.Validate(5 << 20)

	assert.Equal(t, map[string]string{"email": "El email es requerido"}, errs)
}

func TestWizardPaymentPagoMovilRequiresPhoneAndBank(t *testing.T) {
	req := WizardPaymentRequest{Method: "PAGO_MOVIL", Reference: "123", Proof: proof}
	errs := req.Validate(5 << 20)

	assert.Equal(t, "El teléfono es requerido", errs["phone"])
	assert.Equal(t, "Seleccione un banco", errs["bank"])
	assert.NotContains(t, errs, "email")
}

func TestWizardPaymentReferenceAlwaysRequired(t *testing.T) {
	req := WizardPaymentRequest{Method: "ZELLE", Email: "a@b.com", Proof: proof}
	errs := req.Validate(5 << 20)

	assert.Equal(t, map[string]string{"reference": "El número de referencia es requerido"}, errs)
}

func TestWizardPaymentProof(t *testing.T) {
	req := WizardPaymentRequest{Method: "ZELLE", Email: "a@b.com", Reference: "1"}
	assert.Equal(t, "El comprobante de pago es requerido", req.Validate(5<<20)["proof"])

	req.ProofErr = utils.ErrInvalidMimeType
	assert.Equal(t, "El comprobante debe ser una imagen", req.Validate(5<<20)["proof"])

	req.ProofErr = utils.ErrFileTooLarge
	assert.Equal(t, "El comprobante no debe superar 5 MB", req.Validate(5<<20)["proof"])

	req.ProofErr = nil
	req.Proof = proof
	assert.Nil(t, req.Validate(5<<20))
}

func TestWizardPaymentNormalizeDropsForeignFields(t *testing.T) {
	req := WizardPaymentRequest{Method: " ZELLE ", Email: "a@b.com", Phone: "0414", Bank: "BANCO1", Reference: " 9 "}
	req.Normalize()

	assert.Equal(t, "ZELLE", req.Method)
	assert.Empty(t, req.Phone)
	assert.Empty(t, req.Bank)
	assert.Equal(t, "9", req.Reference)
}

func TestSimplePaymentReferenceOptionalForStripe(t *testing.T) {
	req := SimplePaymentRequest{PaymentType: "STRIPE", Name: "Ana", Email: "a@b.com", Phone: "04141234567"}
	assert.Nil(t, utils.ValidateStruct(req))

	req.PaymentType = "ZELLE"
	assert.Equal(t, map[string]string{"reference": "El número de referencia es requerido"}, utils.ValidateStruct(req))
}

func TestUserDetailsValidation(t *testing.T) {
	req := UserDetailsRequest{Name: "  ", Email: "abc", Phone: "123"}
	req.Normalize()
	errs := utils.ValidateStruct(req)

	assert.Equal(t, "El nombre es requerido", errs["name"])
	assert.Equal(t, "Email inválido", errs["email"])
	assert.Equal(t, "Teléfono inválido", errs["phone"])

	ok := UserDetailsRequest{Name: "Ana", Email: "a@b.com", Phone: "+58 414 1234567"}
	assert.Nil(t, utils.ValidateStruct(ok))
	assert.Equal(t, "+584141234567", ok.ToEntity().Phone)
}
