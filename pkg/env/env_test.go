package env

import "testing"

func TestGetFallsBackOnBlank(t *testing.T) {
	t.Setenv("TGSHOP_ENV_TEST", "   ")
	if got := Get("TGSHOP_ENV_TEST", "json"); got != "json" {
		t.Fatalf("expected fallback for blank value, got %q", got)
	}
	t.Setenv("TGSHOP_ENV_TEST", " console ")
	if got := Get("TGSHOP_ENV_TEST", "json"); got != "console" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}
