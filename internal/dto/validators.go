package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rostech/erp-backend/internal/core/domain"
)

// RegisterCustomValidators wires domain-specific rules into gin's binding
// validator. Call once at startup before routes are registered.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	// saleterm: the installment term must come from the fixed term menu.
	return v.RegisterValidation("saleterm", func(fl validator.FieldLevel) bool {
		return domain.IsAllowedTerm(int(fl.Field().Int()))
	})
}
