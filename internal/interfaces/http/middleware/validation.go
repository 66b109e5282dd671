package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/medsupply/backend/internal/domain/inventory"
)

// SetupValidator registers custom validation tags and JSON field naming on
// gin's binding validator. Call once at startup before serving requests.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report JSON field names in validation errors instead of Go names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("movementtype", validateMovementType)
}

// validateMovementType accepts only the closed set of ledger movement types
func validateMovementType(fl validator.FieldLevel) bool {
	return inventory.MovementType(fl.Field().String()).IsValid()
}
