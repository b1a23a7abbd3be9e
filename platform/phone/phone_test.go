package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(212) 555-0123", "+12125550123"},
		{"+31 6 12345678", "+31612345678"},
		{"  +12125550123  ", "+12125550123"},
		{"not a number", "not a number"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeE164(tc.in); got != tc.want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
