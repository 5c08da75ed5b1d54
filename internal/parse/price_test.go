package parse

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"1,200,000₫", f(1200000)},
		{"299000", f(299000)},
		{"0", f(0)},
		{"Free", nil},
		{"", nil},
		{"1.99", nil},         // decimal point survives cleaning, not all digits
		{" 123", nil},         // leading space is not cleaned away
		{"12,50₫0", f(12500)}, // separators stripped wherever they sit
	}

	for _, tc := range cases {
		got := ParsePrice(tc.in)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("ParsePrice(%q) = %v, want nil", tc.in, *got)
		case tc.want != nil && got == nil:
			t.Errorf("ParsePrice(%q) = nil, want %v", tc.in, *tc.want)
		case tc.want != nil && got != nil && *got != *tc.want:
			t.Errorf("ParsePrice(%q) = %v, want %v", tc.in, *got, *tc.want)
		}
	}
}

func f(v float64) *float64 { return &v }
