package validator

import "testing"

type stayRange struct {
	Checkin  string `validate:"required,staydate"`
	Checkout string `validate:"required,staydate"`
}

func TestStayDate_AcceptsProviderFormat(t *testing.T) {
	val := New()
	if err := val.Struct(stayRange{Checkin: "2026-10-01", Checkout: "2026-10-05"}); err != nil {
		t.Fatalf("expected valid dates, got %v", err)
	}
}

func TestStayDate_RejectsOtherFormats(t *testing.T) {
	val := New()
	for _, bad := range []string{"01-10-2026", "2026/10/01", "tomorrow", ""} {
		if err := val.Struct(stayRange{Checkin: bad, Checkout: "2026-10-05"}); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
