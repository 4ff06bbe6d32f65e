package recoverycodes

import "testing"

func TestGenerateProducesBatchSizeUniqueCodes(t *testing.T) {
	codes, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	if len(codes) != BatchSize {
		t.Fatalf("expected %d codes, got %d", BatchSize, len(codes))
	}

	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if _, dup := seen[c]; dup {
			t.Fatalf("duplicate code generated: %s", c)
		}
		seen[c] = struct{}{}
	}
}

func TestHashAndMatchesRoundTrip(t *testing.T) {
	codes, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	code := codes[0]

	hash, err := Hash(code)
	if err != nil {
		t.Fatal(err)
	}

	if !Matches(hash, code) {
		t.Fatal("expected generated code to match its own hash")
	}
	if !Matches(hash, strings_ToLowerDashless(code)) {
		t.Fatal("expected matching to be case-insensitive and separator-insensitive")
	}
}

func TestMatchesRejectsWrongCode(t *testing.T) {
	hash, err := Hash("ABCD-EFGH")
	if err != nil {
		t.Fatal(err)
	}
	if Matches(hash, "WXYZ-1234") {
		t.Fatal("expected mismatched code to fail")
	}
}

func strings_ToLowerDashless(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '-' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		out = append(out, r)
	}
	return string(out)
}
