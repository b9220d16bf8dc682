package roster

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/madarasa/gradebook/core"
)

var (
	finiteTag  = "finite"
	finiteText = "must be a finite number"
)

func init() {
	// register validators
	_ = core.Validate.RegisterValidation(finiteTag, finiteValidation)
	core.RegisterCustomTranslation(finiteTag, finiteText)
}

// finiteValidation rejects NaN and ±Inf grades.
func finiteValidation(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
