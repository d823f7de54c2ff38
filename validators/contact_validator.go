package validators

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vikas-mobiles/be/models"
)

// Optional leading +, then 7 to 15 digits that may be grouped by spaces or dashes.
var phonePattern = regexp.MustCompile(`^\+?[0-9](?:[ -]?[0-9]){6,14}$`)

// ValidatePhoneFormat reports whether phone looks like a dialable number.
func ValidatePhoneFormat(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// ContactValidator checks order-form contact details using the `validate`
// struct tags on models.ContactDetails.
type ContactValidator struct {
	validate *validator.Validate
}

func NewContactValidator() *ContactValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidatePhoneFormat(fl.Field().String())
	})
	return &ContactValidator{validate: v}
}

// Validate returns a *models.ValidationError naming the first bad field, or nil.
func (v *ContactValidator) Validate(contact models.ContactDetails) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Address = strings.TrimSpace(contact.Address)

	err := v.validate.Struct(contact)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &models.ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	return &models.ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}
