package ordering

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"restaurant_ordering/model"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return IsPaymentMethod(model.PaymentMethod(fl.Field().String()))
	})
	_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		return IsOrderStatus(model.OrderStatus(fl.Field().String()))
	})
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateStruct runs the tag rules on v and returns a *ValidationError.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe)] = describe(fe)
	}
	return out
}

// fieldPath drops the root struct name: "OrderRequest.reservation.time" -> "reservation.time".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "eqfield":
		return "must match " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "paymentmethod":
		return "is not a recognized payment method"
	case "orderstatus":
		return "is not a recognized status"
	case "timeofday":
		return "must be HH:MM"
	default:
		return "is invalid"
	}
}

func IsPaymentMethod(m model.PaymentMethod) bool {
	for _, known := range model.PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

func IsOrderStatus(s model.OrderStatus) bool {
	for _, known := range model.OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS and returns the normalised HH:MM form.
func ParseTimeOfDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", ErrInvalidTimeFormat
}
