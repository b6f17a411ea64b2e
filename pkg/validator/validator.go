package validator

import (
	"html"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

const dateLayout = "2006-01-02"

var sanitizer = bluemonday.StrictPolicy()

// Init registers the custom tags on gin's binding engine.
func Init() {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("moment", validateMoment)
	v.RegisterValidation("period_type", validatePeriodType)
	v.RegisterValidation("kpi_date", validateDate)
}

// SanitizeString strips every tag from s and trims the result. Entities
// escaped by the policy are decoded again since the value is stored as text.
func SanitizeString(s string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(s)))
}

func IsMoment(value string) bool {
	switch value {
	case "debut", "fin":
		return true
	}
	return false
}

func IsPeriodType(value string) bool {
	switch value {
	case "week", "month":
		return true
	}
	return false
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(value))
}

func validateMoment(fl validator.FieldLevel) bool {
	return IsMoment(fl.Field().String())
}

func validatePeriodType(fl validator.FieldLevel) bool {
	return IsPeriodType(fl.Field().String())
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}
