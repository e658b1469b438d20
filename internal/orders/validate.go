package orders

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
	"github.com/tgshop/miniapp-backend/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks req at the relay boundary. Absent fields yield one
// MISSING_FIELD error; a malformed cart line yields VALIDATION_ERROR. Details
// map field paths such as "user.id" or "cart[0].quantity" to messages.
func Validate(req types.OrderRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order")
	}
	code, message := pkgerrors.CodeMissingField, "missing required fields"
	details := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		path := fieldPath(fieldErr)
		details[path] = validationMessage(fieldErr)
		if !isPresenceFailure(path, fieldErr) {
			code, message = pkgerrors.CodeValidation, "invalid order"
		}
	}
	return pkgerrors.New(code, message).WithDetails(details)
}

// isPresenceFailure reports whether fe is a top-level field that is absent or
// empty, as opposed to a value that is present but malformed.
func isPresenceFailure(path string, fe validator.FieldError) bool {
	if strings.HasPrefix(path, "cart[") {
		return false
	}
	switch fe.Tag() {
	case "required":
		return true
	case "min":
		return fe.Kind() == reflect.Slice
	}
	return false
}

// fieldPath drops the root struct name: "OrderRequest.user.id" -> "user.id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must not be empty"
		}
		return "must be at least " + fe.Param()
	case "gte":
		return "must not be negative"
	}
	return "is invalid"
}
