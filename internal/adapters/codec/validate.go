package codec

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/okian/trustscore/internal/domain/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// NaN and ±Inf can arrive from YAML (.nan, .inf) and would poison the
	// cohort bounds.
	_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			v := f.Float()
			return !math.IsNaN(v) && !math.IsInf(v, 0)
		default:
			return true
		}
	})
}

// Validate checks every wallet's field constraints and reports the first
// violation with the wallet's position in the cohort.
func Validate(cohort []model.WalletMetrics) error {
	for i := range cohort {
		if err := validate.Struct(&cohort[i]); err != nil {
			return fmt.Errorf("%w: wallet[%d] %q: %s", ErrInvalidCohort, i, cohort[i].WalletAddress, describe(err))
		}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "finite":
		return fmt.Sprintf("%s must be a finite number", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
