package request

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/tuitionlk/portal/core"
)

var (
	statusTag  = "requeststatus"
	statusText = "status must be approved or rejected"
)

// InitValidators registers the profile-request validators and their
// translations. It must be called once at app start-up, after core.InitValidators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

// statusValidation only admits the two terminal verdicts an admin may set.
func statusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).Terminal()
}
