package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterForm is validated before the registration request fires.
type RegisterForm struct {
	Name            string `validate:"required,min=5"`
	Email           string `validate:"required,email"`
	Mobile          string `validate:"omitempty,len=10,numeric"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// PasswordChangeForm is validated before the password change request fires.
type PasswordChangeForm struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,min=8,nefield=CurrentPassword"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword"`
}

// EmailChangeForm guards the email change request.
type EmailChangeForm struct {
	NewEmail string `validate:"required,email"`
}

// Check validates a form and returns field-keyed error messages, empty on
// success. Nothing is sent to the backend when this is non-empty.
func Check(form interface{}) map[string]string {
	errs := make(map[string]string)
	err := validate.Struct(form)
	if err == nil {
		return errs
	}
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "Invalid input!"
		return errs
	}
	for _, fe := range invalid {
		errs[strings.ToLower(fe.Field())] = messageFor(fe)
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required!"
	case "email":
		return "Invalid email!"
	case "min":
		return "Must be at least " + fe.Param() + " characters long!"
	case "len":
		return "Must be exactly " + fe.Param() + " characters!"
	case "numeric":
		return "Must contain only digits!"
	case "eqfield":
		return "Passwords do not match!"
	case "nefield":
		return "New password must differ from the current one!"
	default:
		return "Invalid value!"
	}
}
