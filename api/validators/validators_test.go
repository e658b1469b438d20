package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
)

type sample struct {
	Phone string `json:"phone"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"123","extra":true}`))
	var dest sample
	if err := DecodeJSONBody(httptest.NewRecorder(), req, &dest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dest.Phone != "123" {
		t.Fatalf("unexpected phone %q", dest.Phone)
	}
}

func TestDecodeJSONBodyRejectsBadInput(t *testing.T) {
	for _, body := range []string{``, `{"phone":`, `{"phone":"1"} {"phone":"2"}`, strings.Repeat("a", int(maxBodyBytes)+10)} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var dest sample
		err := DecodeJSONBody(httptest.NewRecorder(), req, &dest)
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("body %.20q: expected validation error, got %v", body, err)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 0, "hello"},
		{"abcdef", 3, "abc"},
		{"Ann\x00\x1b\n", 0, "Ann"},
		{"   ", 32, "   "},
		{"Зоя Ивановна", 3, "Зоя"},
	}
	for _, tt := range tests {
		if got := SanitizeString(tt.in, tt.maxLen); got != tt.want {
			t.Fatalf("SanitizeString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
