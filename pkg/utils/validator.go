package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()

	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,12}$`)
)

// Messages shown when a required field is missing, keyed by form field.
var requiredMessages = map[string]string{
	"court_id":    "Seleccione una cancha",
	"date":        "Seleccione una fecha",
	"start_time":  "Seleccione un horario",
	"name":        "El nombre es requerido",
	"email":       "El email es requerido",
	"phone":       "El teléfono es requerido",
	"bank":        "Seleccione un banco",
	"reference":   "El número de referencia es requerido",
	"method":      "Seleccione un método de pago",
	"paymentType": "Seleccione un método de pago",
	"proof":       "El comprobante de pago es requerido",
}

func newValidator() *validator.Validate {
	v := validator.New()

	// error keys are the form field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	mustRegister(v, "contact_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// IsValidEmail checks the simple local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// NormalizePhone drops every whitespace character.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
}

// IsValidPhone accepts 10 to 12 digits with an optional leading "+",
// once whitespace is removed.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

// ValidateStruct returns field errors keyed by form field name, nil when
// the struct is valid.
func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			if _, seen := errors[err.Field()]; seen {
				continue
			}
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to user-facing messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "required_if", "required_unless":
		return RequiredMessage(err.Field())
	case "contact_email", "email":
		return "Email inválido"
	case "phone":
		return "Teléfono inválido"
	case "oneof":
		if err.Field() == "bank" {
			return "Seleccione un banco válido"
		}
		if err.Field() == "method" || err.Field() == "paymentType" {
			return "Método de pago inválido"
		}
		return fmt.Sprintf("Debe ser uno de: %s", strings.ReplaceAll(err.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("Máximo %s caracteres", err.Param())
	case "datetime":
		return "Formato inválido"
	default:
		return fmt.Sprintf("Valor inválido para %s", err.Field())
	}
}

// RequiredMessage is the message for a missing field.
func RequiredMessage(field string) string {
	if msg, ok := requiredMessages[field]; ok {
		return msg
	}
	return fmt.Sprintf("El campo %s es requerido", field)
}

// MergeErrors adds extra field errors without overriding existing ones.
func MergeErrors(errors map[string]string, extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return errors
	}
	if errors == nil {
		errors = make(map[string]string, len(extra))
	}
	for field, msg := range extra {
		if _, ok := errors[field]; !ok {
			errors[field] = msg
		}
	}
	return errors
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
