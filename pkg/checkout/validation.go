package checkout

import (
	"strings"

	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
)

// Contact is the validated name/phone pair collected at checkout.
type Contact struct {
	Name  string
	Phone string
}

// ValidateContact trims and checks the checkout form fields in order: name,
// then phone presence, then phone digits.
func ValidateContact(name, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Contact{}, fieldError("name", "name required")
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Contact{}, fieldError("phone", "phone required")
	}
	if !IsDigits(phone) {
		return Contact{}, fieldError("phone", "phone must be numeric")
	}
	return Contact{Name: name, Phone: phone}, nil
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func fieldError(field, msg string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]string{"field": field})
}
