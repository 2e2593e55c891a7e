package entity

type PaymentType string

const (
	PaymentTypeStripe    PaymentType = "STRIPE"
	PaymentTypeZelle     PaymentType = "ZELLE"
	PaymentTypePagoMovil PaymentType = "PAGO_MOVIL"
)

// Field names a payment method can declare in its form.
const (
	PaymentFieldEmail     = "email"
	PaymentFieldPhone     = "phone"
	PaymentFieldBank      = "bank"
	PaymentFieldReference = "reference"
)

// PaymentMethod describes one method offered by the booking wizard and the
// fields its form collects.
type PaymentMethod struct {
	ID     PaymentType
	Name   string
	Icon   string
	Fields []string
}

func (m PaymentMethod) Has(field string) bool {
	for _, f := range m.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// WizardPaymentMethods are the manual-transfer methods of the booking wizard.
var WizardPaymentMethods = []PaymentMethod{
	{
		ID:     PaymentTypeZelle,
		Name:   "Zelle",
		Icon:   "💳",
		Fields: []string{PaymentFieldEmail, PaymentFieldReference},
	},
	{
		ID:     PaymentTypePagoMovil,
		Name:   "Pago Móvil",
		Icon:   "📱",
		Fields: []string{PaymentFieldPhone, PaymentFieldBank, PaymentFieldReference},
	},
}

// FindWizardPaymentMethod returns the wizard method with the given id.
func FindWizardPaymentMethod(id PaymentType) (PaymentMethod, bool) {
	for _, m := range WizardPaymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

type Bank struct {
	Code string
	Name string
}

var Banks = []Bank{
	{Code: "BANCO1", Name: "Banco 1"},
	{Code: "BANCO2", Name: "Banco 2"},
	{Code: "BANCO3", Name: "Banco 3"},
}

// Attachment is an uploaded proof of payment.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PaymentSubmission is sent as multipart form to the payments endpoint.
type PaymentSubmission struct {
	Method         PaymentType
	ReservationID  int64
	Email          string
	Phone          string
	Bank           string
	Reference      string
	Proof          *Attachment
	IdempotencyKey string
}

// SimplePayment is the JSON body of the stand-alone payment form.
type SimplePayment struct {
	PaymentType PaymentType `json:"paymentType"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Reference   string      `json:"reference,omitempty"`
}

// PaymentResult is the verdict returned by the payment API.
type PaymentResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	PaymentID int64  `json:"payment_id,omitempty"`
	Status    string `json:"status,omitempty"`
}
