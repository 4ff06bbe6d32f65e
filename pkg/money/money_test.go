package money

import "testing"

func TestParseAndString(t *testing.T) {
	cases := map[string]string{
		"10.00": "10.00",
		"7.5":   "7.50",
		"0.05":  "0.05",
		"3":     "3.00",
	}
	for in, want := range cases {
		a, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got := a.String(); got != want {
			t.Errorf("Parse(%q).String() = %q, want %q", in, got, want)
		}
	}
}

func TestParseRejectsTooManyFractionalDigits(t *testing.T) {
	if _, err := Parse("10.123"); err == nil {
		t.Fatal("expected error for three fractional digits")
	}
}

func TestParseRejectsNegative(t *testing.T) {
	if _, err := Parse("-5.00"); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestMulQuantityAndSum(t *testing.T) {
	price := MustParse("10.00")
	line := price.MulQuantity(2)
	if line.String() != "20.00" {
		t.Fatalf("got %s, want 20.00", line)
	}

	other := MustParse("7.50")
	total := Sum([]Amount{line, other})
	if total.String() != "27.50" {
		t.Fatalf("got %s, want 27.50", total)
	}
}

func TestEqual(t *testing.T) {
	a := MustParse("5.00")
	b := FromCents(500)
	if !a.Equal(b) {
		t.Fatal("expected equal amounts")
	}
}
